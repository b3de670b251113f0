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
	"log/slog"

	"mx-alias/mixer"
)

type blockKind int

const (
	blockLocal blockKind = iota
	blockAES50A
	blockAES50B
	blockCard
	blockOut
	blockP16
	blockAux
	blockAuxIn
	blockUserOut
	blockUserIn
)

var patchBlockBands = mixer.NewBands([]mixer.Band[blockKind]{
	{Upper: int(Local25_32), Kind: blockLocal},
	{Upper: int(A41_48), Kind: blockAES50A},
	{Upper: int(B41_48), Kind: blockAES50B},
	{Upper: int(Card25_32), Kind: blockCard},
	{Upper: int(Out9_16), Kind: blockOut},
	{Upper: int(P16_9_16), Kind: blockP16},
	{Upper: int(Aux1_6Mon), Kind: blockAux},
	{Upper: int(AuxIn1_6TB), Kind: blockAuxIn},
	{Upper: int(UserOut41_48), Kind: blockUserOut},
	{Upper: int(UserIn25_32), Kind: blockUserIn},
}...)

type userInKind int

const (
	userInOff userInKind = iota
	userInLocal
	userInAES50A
	userInAES50B
	userInCard
	userInAux
	userInTBInternal
	userInTBExternal
)

var userInBands = mixer.NewBands([]mixer.Band[userInKind]{
	{Upper: int(UserInOff), Kind: userInOff},
	{Upper: int(UserInLocal32), Kind: userInLocal},
	{Upper: int(UserInA48), Kind: userInAES50A},
	{Upper: int(UserInB48), Kind: userInAES50B},
	{Upper: int(UserInCard32), Kind: userInCard},
	{Upper: int(UserInAux6), Kind: userInAux},
	{Upper: int(UserInTBInternal), Kind: userInTBInternal},
	{Upper: int(UserInTBExternal), Kind: userInTBExternal},
}...)

type userOutKind int

const (
	userOutInput userOutKind = iota
	userOutMain
	userOutP16
	userOutAux
	userOutMonitor
)

var userOutBands = mixer.NewBands([]mixer.Band[userOutKind]{
	{Upper: int(UserOutTBExternal), Kind: userOutInput},
	{Upper: int(UserOutOutput16), Kind: userOutMain},
	{Upper: int(UserOutP16_16), Kind: userOutP16},
	{Upper: int(UserOutAux6), Kind: userOutAux},
	{Upper: int(UserOutMonitorR), Kind: userOutMonitor},
}...)

// auxInRemap describes an aux input patch that overrides the first count
// aux inputs with a physical input range.
type auxInRemap struct {
	label string
	count int
}

var auxInRemaps = map[AuxInPatch]auxInRemap{
	AuxInAux1_4:   {"", 0},
	AuxInLocal1_2: {"Local", 2},
	AuxInLocal1_4: {"Local", 4},
	AuxInLocal1_6: {"Local", 6},
	AuxInA1_2:     {"Aes50 A", 2},
	AuxInA1_4:     {"Aes50 A", 4},
	AuxInA1_6:     {"Aes50 A", 6},
	AuxInB1_2:     {"Aes50 B", 2},
	AuxInB1_4:     {"Aes50 B", 4},
	AuxInB1_6:     {"Aes50 B", 6},
}

// auxInUserRemaps are the patches taking their prefix from user input block 1.
var auxInUserRemaps = map[AuxInPatch]int{
	AuxInUserIn1_2: 2,
	AuxInUserIn1_4: 4,
	AuxInUserIn1_6: 6,
}

const auxInCount = 6

func (scanner *Scanner) resolveBlockRouting(ctx context.Context, value mixer.Value) ([]mixer.Label, error) {
	code, ok := value.Int()
	if !ok {
		return mixer.AbsentLabels(blockSize), nil
	}

	kind, offset, ok := patchBlockBands.Classify(code)
	if !ok {
		slog.Warn(fmt.Sprintf("Unknown card routing block %d", code))
		return mixer.AbsentLabels(blockSize), nil
	}

	switch kind {
	case blockLocal:
		return mixer.NumberedLabels("Local", offset*blockSize+1, blockSize), nil
	case blockAES50A:
		return mixer.NumberedLabels("Aes50 A", offset*blockSize+1, blockSize), nil
	case blockAES50B:
		return mixer.NumberedLabels("Aes50 B", offset*blockSize+1, blockSize), nil
	case blockCard:
		return mixer.NumberedLabels("Card", offset*blockSize+1, blockSize), nil
	case blockOut:
		return scanner.resolveOutputBlock(ctx, bankMain, offset*blockSize, blockSize)
	case blockP16:
		return scanner.resolveOutputBlock(ctx, bankP16, offset*blockSize, blockSize)
	case blockAux:
		auxOuts, err := scanner.resolveOutputBlock(ctx, bankAux, 0, 6)
		if err != nil {
			return nil, err
		}
		return append(auxOuts, mixer.Labels("Monitor L", "Monitor R")...), nil
	case blockAuxIn:
		auxIns, err := scanner.resolveAuxInRemap(ctx)
		if err != nil {
			return nil, err
		}
		return append(auxIns, mixer.Labels("Talkback Int", "Talkback Ext")...), nil
	case blockUserOut:
		return scanner.resolveUserOutBlock(ctx, offset)
	case blockUserIn:
		return scanner.resolveUserInBlock(ctx, offset)
	}

	return mixer.AbsentLabels(blockSize), nil
}

func (scanner *Scanner) resolveAuxInRemap(ctx context.Context) ([]mixer.Label, error) {
	values, err := scanner.dispatcher.Query(ctx, nodeAuxInPatch)
	if err != nil {
		return nil, err
	}

	code, ok := values[0].Int()
	if !ok {
		return mixer.AbsentLabels(auxInCount), nil
	}

	patch := AuxInPatch(code)

	if remap, ok := auxInRemaps[patch]; ok {
		return padAuxIns(mixer.NumberedLabels(remap.label, 1, remap.count)), nil
	}

	count, ok := auxInUserRemaps[patch]
	if !ok {
		slog.Warn(fmt.Sprintf("Unknown aux input patch %d", code))
		return mixer.AbsentLabels(auxInCount), nil
	}

	userIns, err := scanner.resolveUserInBlock(ctx, 0)
	if err != nil {
		return nil, err
	}

	return padAuxIns(userIns[:count]), nil
}

// padAuxIns fills the slots after the remapped prefix with the fixed aux inputs.
func padAuxIns(prefix []mixer.Label) []mixer.Label {
	labels := make([]mixer.Label, 0, auxInCount)
	labels = append(labels, prefix...)

	return append(labels, mixer.NumberedLabels("Aux In", len(prefix)+1, auxInCount-len(prefix))...)
}

func (scanner *Scanner) resolveUserInBlock(ctx context.Context, block int) ([]mixer.Label, error) {
	nodes := make([]mixer.Node, blockSize)
	for i := range nodes {
		nodes[i] = userInNode(block*blockSize + i)
	}

	sources, err := scanner.dispatcher.Query(ctx, nodes...)
	if err != nil {
		return nil, err
	}

	labels := make([]mixer.Label, len(sources))
	for i, source := range sources {
		labels[i] = resolveUserIn(source)
	}

	return labels, nil
}

// resolveUserIn labels a physical input code. Unknown codes are absent.
func resolveUserIn(source mixer.Value) mixer.Label {
	code, ok := source.Int()
	if !ok {
		return mixer.Label{}
	}

	kind, offset, ok := userInBands.Classify(code)
	if !ok {
		return mixer.Label{}
	}

	switch kind {
	case userInOff:
		return mixer.Named("Off")
	case userInLocal:
		return mixer.Namef("Local %d", offset+1)
	case userInAES50A:
		return mixer.Namef("Aes50 A %d", offset+1)
	case userInAES50B:
		return mixer.Namef("Aes50 B %d", offset+1)
	case userInCard:
		return mixer.Namef("Card %d", offset+1)
	case userInAux:
		return mixer.Namef("Aux In %d", offset+1)
	case userInTBInternal:
		return mixer.Named("Talkback Int")
	case userInTBExternal:
		return mixer.Named("Talkback Ext")
	}

	return mixer.Label{}
}

func (scanner *Scanner) resolveUserOutBlock(ctx context.Context, block int) ([]mixer.Label, error) {
	nodes := make([]mixer.Node, blockSize)
	for i := range nodes {
		nodes[i] = userOutNode(block*blockSize + i)
	}

	dests, err := scanner.dispatcher.Query(ctx, nodes...)
	if err != nil {
		return nil, err
	}

	return mixer.Resolve(ctx, len(dests), func(ctx context.Context, i int) (mixer.Label, error) {
		return scanner.resolveUserOut(ctx, dests[i])
	})
}

func (scanner *Scanner) resolveUserOut(ctx context.Context, dest mixer.Value) (mixer.Label, error) {
	code, ok := dest.Int()
	if !ok {
		return mixer.Label{}, nil
	}

	kind, offset, ok := userOutBands.Classify(code)
	if !ok {
		return mixer.Label{}, nil
	}

	switch kind {
	case userOutInput:
		return resolveUserIn(dest), nil
	case userOutMain:
		return scanner.resolveSingleOutput(ctx, bankMain, offset)
	case userOutP16:
		return scanner.resolveSingleOutput(ctx, bankP16, offset)
	case userOutAux:
		return scanner.resolveSingleOutput(ctx, bankAux, offset)
	case userOutMonitor:
		return mixer.Namef("Monitor %s", side(offset)), nil
	}

	return mixer.Label{}, nil
}
