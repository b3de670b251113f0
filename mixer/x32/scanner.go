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
package x32

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"mx-alias/mixer"
)

// SlotCount is the number of card outputs an X32 routes to the host.
const SlotCount = 32

const blockSize = 8

type Scanner struct {
	dispatcher mixer.Dispatcher
	conn       io.Closer
}

// NewScanner builds a scanner over a connected dispatcher. conn is closed by
// Terminate and may be nil when the caller owns the connection.
func NewScanner(dispatcher mixer.Dispatcher, conn io.Closer) *Scanner {
	return &Scanner{
		dispatcher: dispatcher,
		conn:       conn,
	}
}

func (scanner *Scanner) EnsureSampleRate(ctx context.Context) error {
	return mixer.EnforceClockRate(ctx, scanner.dispatcher, mixer.ClockPolicy{
		Source:   nodeClockSource,
		Internal: int(ClockInternal),
		Rate:     nodeClockRate,
		Required: int(ClockRate44k1),
	})
}

func (scanner *Scanner) ScanCardRouting(ctx context.Context) ([]mixer.Label, error) {
	blocks, err := scanner.dispatcher.Query(ctx, cardBlockNodes...)
	if err != nil {
		return nil, err
	}

	slog.Debug(fmt.Sprintf("Card routing blocks: %v", blocks))

	names, err := mixer.Resolve(ctx, len(blocks), func(ctx context.Context, i int) ([]mixer.Label, error) {
		return scanner.resolveBlockRouting(ctx, blocks[i])
	})
	if err != nil {
		return nil, err
	}

	return mixer.Flatten(names), nil
}

func (scanner *Scanner) Terminate() error {
	if scanner.conn == nil {
		return nil
	}

	return scanner.conn.Close()
}

// named resolves a custom name node with a generated fallback.
func (scanner *Scanner) named(ctx context.Context, node mixer.Node, fallback string) (mixer.Label, error) {
	name, err := mixer.ResolveName(ctx, scanner.dispatcher, node, fallback)
	if err != nil {
		return mixer.Label{}, err
	}

	return mixer.Named(name), nil
}

// side is the stereo suffix of an offset into an L/R pair.
func side(offset int) string {
	if offset%2 == 0 {
		return "L"
	}
	return "R"
}
