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

	"mx-alias/mixer"
)

type sourceKind int

const (
	sourceOff sourceKind = iota
	sourceMain
	sourceMC
	sourceBus
	sourceMatrix
	sourceChannel
	sourceAux
	sourceFX
	sourceMonitor
	sourceTalkback
)

var outputSourceBands = mixer.NewBands([]mixer.Band[sourceKind]{
	{Upper: int(SourceOff), Kind: sourceOff},
	{Upper: int(SourceMainR), Kind: sourceMain},
	{Upper: int(SourceMC), Kind: sourceMC},
	{Upper: int(SourceMixBus16), Kind: sourceBus},
	{Upper: int(SourceMatrix6), Kind: sourceMatrix},
	{Upper: int(SourceDirectOutCh32), Kind: sourceChannel},
	{Upper: int(SourceDirectOutAux8), Kind: sourceAux},
	{Upper: int(SourceDirectOutFX4R), Kind: sourceFX},
	{Upper: int(SourceMonitorR), Kind: sourceMonitor},
	{Upper: int(SourceTalkback), Kind: sourceTalkback},
}...)

func (scanner *Scanner) resolveOutputBlock(ctx context.Context, bank outputBank, base int, size int) ([]mixer.Label, error) {
	return mixer.Resolve(ctx, size, func(ctx context.Context, i int) (mixer.Label, error) {
		return scanner.resolveSingleOutput(ctx, bank, base+i)
	})
}

func (scanner *Scanner) resolveSingleOutput(ctx context.Context, bank outputBank, index int) (mixer.Label, error) {
	src, pos := bank.nodes(index)

	values, err := scanner.dispatcher.Query(ctx, src, pos)
	if err != nil {
		return mixer.Label{}, err
	}

	return scanner.resolveOutput(ctx, values[0], values[1])
}

// resolveOutput renders "<source> (<tap>)". Either part missing makes the whole label absent.
func (scanner *Scanner) resolveOutput(ctx context.Context, source mixer.Value, tap mixer.Value) (mixer.Label, error) {
	code, ok := source.Int()
	if !ok {
		return mixer.Label{}, nil
	}

	tapIndex, ok := tap.Int()
	if !ok {
		return mixer.Label{}, nil
	}

	if _, ok := mixer.TapLabel(tapIndex); !ok {
		return mixer.Label{}, nil
	}

	name, err := scanner.resolveOutputSource(ctx, OutputSource(code))
	if err != nil {
		return mixer.Label{}, err
	}

	return mixer.WithTap(name, tap), nil
}

func (scanner *Scanner) resolveOutputSource(ctx context.Context, source OutputSource) (mixer.Label, error) {
	kind, offset, ok := outputSourceBands.Classify(int(source))
	if !ok {
		return mixer.Label{}, nil
	}

	switch kind {
	case sourceOff:
		return mixer.Named("Off"), nil
	case sourceMain:
		name, err := mixer.ResolveName(ctx, scanner.dispatcher, nodeMainStName, "Main")
		if err != nil {
			return mixer.Label{}, err
		}
		return mixer.Namef("%s %s", name, side(offset)), nil
	case sourceMC:
		return scanner.named(ctx, nodeMainMName, "M/C")
	case sourceBus:
		return scanner.named(ctx, busName(offset), fmt.Sprintf("Bus %d", offset+1))
	case sourceMatrix:
		return scanner.named(ctx, matrixName(offset), fmt.Sprintf("Matrix %d", offset+1))
	case sourceChannel:
		return scanner.named(ctx, channelName(offset), fmt.Sprintf("Ch %d", offset+1))
	case sourceAux:
		return scanner.named(ctx, auxInName(offset), fmt.Sprintf("Aux %d", offset+1))
	case sourceFX:
		// each of the 8 returns has its own name, the default pairs them as FX 1L/1R .. 4L/4R
		return scanner.named(ctx, fxReturnName(offset), fmt.Sprintf("FX %d%s", offset/2+1, side(offset)))
	case sourceMonitor:
		return mixer.Namef("Monitor %s", side(offset)), nil
	case sourceTalkback:
		return mixer.Named("Talkback"), nil
	}

	return mixer.Label{}, nil
}
