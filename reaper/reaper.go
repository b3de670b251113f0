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
	"log/slog"
	"slices"
	"sync"
)

// Reaper runs cleanup callbacks once, newest first, and tracks long running
// goroutines that must finish before the process exits.
type Reaper struct {
	mu            sync.Mutex
	reaped        bool
	callbacks     []callback
	registrations []string
	waitgroup     sync.WaitGroup
}

type callback struct {
	name         string
	callbackFunc func()
}

var std = New()

func New() *Reaper {
	return &Reaper{
		callbacks:     make([]callback, 0),
		registrations: make([]string, 0),
	}
}

func Reaped() bool                              { return std.Reaped() }
func Reap()                                     { std.Reap() }
func Callback(name string, callbackFunc func()) { std.Callback(name, callbackFunc) }
func Register(name string)                      { std.Register(name) }
func Done(name string)                          { std.Done(name) }
func Wait()                                     { std.Wait() }

func (reaper *Reaper) Reaped() bool {
	reaper.mu.Lock()
	defer reaper.mu.Unlock()

	return reaper.reaped
}

func (reaper *Reaper) Reap() {
	reaper.mu.Lock()
	if reaper.reaped {
		reaper.mu.Unlock()
		return
	}

	reaper.reaped = true
	callbacksReversed := slices.Clone(reaper.callbacks)
	reaper.mu.Unlock()

	slices.Reverse(callbacksReversed)

	for _, callback := range callbacksReversed {
		slog.Debug("reaper: calling reap callback for '" + callback.name + "'")
		callback.callbackFunc()
	}
}

// Callback adds a cleanup step. Steps added after Reap never run.
func (reaper *Reaper) Callback(name string, callbackFunc func()) {
	reaper.mu.Lock()
	defer reaper.mu.Unlock()

	reaper.callbacks = append(reaper.callbacks, callback{
		name:         name,
		callbackFunc: callbackFunc,
	})
}

func (reaper *Reaper) Register(name string) {
	reaper.mu.Lock()
	defer reaper.mu.Unlock()

	if slices.Contains(reaper.registrations, name) {
		slog.Warn("reaper: already registered '" + name + "'")
		return
	}

	reaper.registrations = append(reaper.registrations, name)
	reaper.waitgroup.Add(1)
	slog.Debug("reaper: registered '" + name + "'")
}

func (reaper *Reaper) Done(name string) {
	reaper.mu.Lock()
	defer reaper.mu.Unlock()

	if !slices.Contains(reaper.registrations, name) {
		slog.Warn("reaper: already done or doesn't exist: '" + name + "'")
		return
	}

	reaper.registrations = slices.DeleteFunc(reaper.registrations, func(test string) bool {
		return test == name
	})

	slog.Debug("reaper: done: '" + name + "'")
	reaper.waitgroup.Done()
}

func (reaper *Reaper) Wait() {
	reaper.waitgroup.Wait()
}
