// =================================================================================
//
//			mx-alias - https://www.foxhollow.cc/projects/mx-alias/
//
//		 mx-alias reads the card routing of a digital mixing console and
//	  names the matching audio interface ports on the recording host
//
//		 Copyright (c) 2024 Steve Cross <flip@foxhollow.cc>
//
//			Licensed under the Apache License, Version 2.0 (the "License");
//			you may not use this file except in compliance with the License.
//			You may obtain a copy of the License at
//
//			     http://www.apache.org/licenses/LICENSE-2.0
//
//			Unless required by applicable law or agreed to in writing, software
//			distributed under the License is distributed on an "AS IS" BASIS,
//			WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//			See the License for the specific language governing permissions and
//			limitations under the License.
//
// =================================================================================
package reaper

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReapRunsCallbacksNewestFirstOnce(t *testing.T) {
	reaper := New()
	order := make([]string, 0)

	reaper.Callback("console", func() { order = append(order, "console") })
	reaper.Callback("jack", func() { order = append(order, "jack") })
	reaper.Callback("tui", func() { order = append(order, "tui") })

	assert.False(t, reaper.Reaped())

	reaper.Reap()
	reaper.Reap()

	assert.True(t, reaper.Reaped())
	assert.Equal(t, []string{"tui", "jack", "console"}, order)
}

func TestReapFromManyGoroutines(t *testing.T) {
	reaper := New()
	calls := 0
	reaper.Callback("count", func() { calls++ })

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			reaper.Reap()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
}

func TestWaitBlocksUntilRegistrationsAreDone(t *testing.T) {
	reaper := New()
	reaper.Register("tui")
	reaper.Register("tui")

	finished := make(chan struct{})
	go func() {
		reaper.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		t.Fatal("Wait returned while tui was still registered")
	case <-time.After(20 * time.Millisecond):
	}

	reaper.Done("tui")
	reaper.Done("tui")

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return")
	}
}
