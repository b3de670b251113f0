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
	"log/slog"
)

// RequiredClockRate is the rate the recording host expects, in Hz.
const RequiredClockRate = 44100

// ClockPolicy describes how one console family exposes its clock.
type ClockPolicy struct {
	// Source is the clock source node. Empty when the family has no source concept.
	Source Node
	// Internal is the Source code meaning the console generates its own clock.
	Internal int
	// Rate is the clock rate node, Required the code for RequiredClockRate.
	Rate     Node
	Required int
}

// EnforceClockRate reads the clock under a scan-scoped subscription and
// writes the required rate when the console owns the clock and runs at
// another rate. The subscription is removed on every return path.
func EnforceClockRate(ctx context.Context, dispatcher Dispatcher, policy ClockPolicy) error {
	nodes := []Node{policy.Rate}
	if policy.Source != "" {
		nodes = append(nodes, policy.Source)
	}

	sub := NewSubscription()
	defer dispatcher.Remove(sub, nodes...)

	values, err := dispatcher.AddAndQuery(ctx, sub, nodes...)
	if err != nil {
		return err
	}

	if policy.Source != "" {
		source, ok := values[1].Int()
		if !ok || source != policy.Internal {
			slog.Debug(fmt.Sprintf("Clock source is %s, leaving rate alone", values[1]))
			return nil
		}
	}

	if rate, ok := values[0].Int(); ok && rate == policy.Required {
		slog.Debug("Clock rate already set to required rate")
		return nil
	}

	slog.Info(fmt.Sprintf("Switching console clock rate from %s to %d Hz", values[0], RequiredClockRate))
	return dispatcher.Set(policy.Rate, IntValue(policy.Required))
}
