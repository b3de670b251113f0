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
package mixer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Node is the OSC address of a single console parameter, e.g. "/ch/01/config/name".
type Node string

// Nodef builds a node address with fmt.Sprintf.
func Nodef(format string, args ...any) Node {
	return Node(fmt.Sprintf(format, args...))
}

// Subscription identifies a set of nodes kept live by a dispatcher until removed.
type Subscription uuid.UUID

// NewSubscription creates a fresh subscription handle. One is created per scan.
func NewSubscription() Subscription {
	return Subscription(uuid.New())
}

func (sub Subscription) String() string {
	return uuid.UUID(sub).String()
}

// Dispatcher resolves console parameters to values. Implementations must be
// safe for concurrent use, the scanners issue sibling queries in parallel.
type Dispatcher interface {
	// Query returns one value per node, in order. A parameter the console
	// reports no value for comes back as an absent Value, not an error.
	Query(ctx context.Context, nodes ...Node) ([]Value, error)

	// AddAndQuery behaves like Query and keeps the nodes live under sub
	// until Remove is called.
	AddAndQuery(ctx context.Context, sub Subscription, nodes ...Node) ([]Value, error)

	// Remove releases nodes held by sub. Removing twice is harmless.
	Remove(sub Subscription, nodes ...Node)

	// Set writes a parameter. No reply is awaited.
	Set(node Node, value Value) error
}

//
// values
//

// Value is a single parameter reading. The zero Value is absent.
type Value struct {
	raw any
}

// Absent is the value of a parameter the console did not report.
var Absent = Value{}

func IntValue(i int) Value {
	return Value{raw: i}
}

func FloatValue(f float64) Value {
	return Value{raw: f}
}

func StringValue(s string) Value {
	return Value{raw: s}
}

// ValueOf converts a decoded OSC argument. Unsupported types are absent.
func ValueOf(arg any) Value {
	switch v := arg.(type) {
	case int32:
		return IntValue(int(v))
	case int64:
		return IntValue(int(v))
	case int:
		return IntValue(v)
	case float32:
		return FloatValue(float64(v))
	case float64:
		return FloatValue(v)
	case string:
		return StringValue(v)
	}

	return Absent
}

func (v Value) IsAbsent() bool {
	return v.raw == nil
}

// Int returns the value as an enum or integer code.
func (v Value) Int() (int, bool) {
	switch raw := v.raw.(type) {
	case int:
		return raw, true
	case float64:
		return int(raw), true
	}

	return 0, false
}

func (v Value) Str() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok
}

// Arg is the value as an OSC argument, nil when absent.
func (v Value) Arg() any {
	switch raw := v.raw.(type) {
	case int:
		return int32(raw)
	case float64:
		return float32(raw)
	}

	return v.raw
}

func (v Value) String() string {
	if v.IsAbsent() {
		return "<absent>"
	}

	return fmt.Sprint(v.raw)
}
