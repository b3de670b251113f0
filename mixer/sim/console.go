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

// Package sim provides an in-memory console for simulation runs and tests.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v2"

	"mx-alias/mixer"
)

// Write is a parameter write recorded by the simulated console.
type Write struct {
	Node  mixer.Node
	Value mixer.Value
}

// Console is a mixer.Dispatcher backed by a map of parameter values.
type Console struct {
	mu sync.Mutex

	values   map[mixer.Node]mixer.Value
	failures map[mixer.Node]error

	writes        []Write
	subscriptions map[mixer.Subscription]map[mixer.Node]bool
	removals      map[mixer.Subscription]int
	queries       int
	closed        bool
}

func New() *Console {
	return &Console{
		values:        make(map[mixer.Node]mixer.Value),
		failures:      make(map[mixer.Node]error),
		writes:        make([]Write, 0),
		subscriptions: make(map[mixer.Subscription]map[mixer.Node]bool),
		removals:      make(map[mixer.Subscription]int),
	}
}

// LoadFixture reads a YAML map of OSC address to value.
func LoadFixture(path string) (*Console, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	fixture := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}

	console := New()
	for address, raw := range fixture {
		value := mixer.ValueOf(raw)
		if value.IsAbsent() {
			slog.Warn(fmt.Sprintf("Fixture value for %s has unsupported type %T, ignoring", address, raw))
			continue
		}

		console.Put(mixer.Node(address), value)
	}

	slog.Info(fmt.Sprintf("Loaded %d simulated parameters from %s", len(console.values), path))

	return console, nil
}

//
// fixture setup
//

func (console *Console) Put(node mixer.Node, value mixer.Value) *Console {
	console.mu.Lock()
	defer console.mu.Unlock()

	console.values[node] = value
	return console
}

func (console *Console) PutInt(node mixer.Node, value int) *Console {
	return console.Put(node, mixer.IntValue(value))
}

func (console *Console) PutString(node mixer.Node, value string) *Console {
	return console.Put(node, mixer.StringValue(value))
}

// Fail makes every query touching node return err.
func (console *Console) Fail(node mixer.Node, err error) *Console {
	console.mu.Lock()
	defer console.mu.Unlock()

	console.failures[node] = err
	return console
}

//
// mixer.Dispatcher
//

func (console *Console) Query(ctx context.Context, nodes ...mixer.Node) ([]mixer.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	console.mu.Lock()
	defer console.mu.Unlock()

	console.queries++

	values := make([]mixer.Value, len(nodes))
	for i, node := range nodes {
		if err, ok := console.failures[node]; ok {
			return nil, err
		}

		values[i] = console.values[node]
	}

	return values, nil
}

func (console *Console) AddAndQuery(ctx context.Context, sub mixer.Subscription, nodes ...mixer.Node) ([]mixer.Value, error) {
	console.mu.Lock()
	held, ok := console.subscriptions[sub]
	if !ok {
		held = make(map[mixer.Node]bool)
		console.subscriptions[sub] = held
	}
	for _, node := range nodes {
		held[node] = true
	}
	console.mu.Unlock()

	return console.Query(ctx, nodes...)
}

func (console *Console) Remove(sub mixer.Subscription, nodes ...mixer.Node) {
	console.mu.Lock()
	defer console.mu.Unlock()

	console.removals[sub]++

	held, ok := console.subscriptions[sub]
	if !ok {
		return
	}

	for _, node := range nodes {
		delete(held, node)
	}

	if len(held) == 0 {
		delete(console.subscriptions, sub)
	}
}

func (console *Console) Set(node mixer.Node, value mixer.Value) error {
	console.mu.Lock()
	defer console.mu.Unlock()

	console.writes = append(console.writes, Write{Node: node, Value: value})
	console.values[node] = value

	return nil
}

// Close marks the simulated connection closed.
func (console *Console) Close() error {
	console.mu.Lock()
	defer console.mu.Unlock()

	console.closed = true
	return nil
}

//
// inspection
//

func (console *Console) Writes() []Write {
	console.mu.Lock()
	defer console.mu.Unlock()

	writes := make([]Write, len(console.writes))
	copy(writes, console.writes)
	return writes
}

// ActiveSubscriptions counts subscriptions still holding nodes.
func (console *Console) ActiveSubscriptions() int {
	console.mu.Lock()
	defer console.mu.Unlock()

	return len(console.subscriptions)
}

// Removals returns how many times Remove was called, summed over all subscriptions.
func (console *Console) Removals() int {
	console.mu.Lock()
	defer console.mu.Unlock()

	total := 0
	for _, count := range console.removals {
		total += count
	}
	return total
}

func (console *Console) Queries() int {
	console.mu.Lock()
	defer console.mu.Unlock()

	return console.queries
}

func (console *Console) Closed() bool {
	console.mu.Lock()
	defer console.mu.Unlock()

	return console.closed
}
