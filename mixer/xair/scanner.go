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
package xair

import (
	"context"
	"fmt"
	"io"

	"mx-alias/mixer"
)

// Port is the UDP port an XAir family console listens on.
const Port = 10024

// SlotCount is the number of USB sends an XAir routes to the host.
const SlotCount = 18

const (
	nodeClockRate  mixer.Node = "/-prefs/clockrate"
	nodeAuxRtnName mixer.Node = "/rtn/aux/config/name"
	nodeMainName   mixer.Node = "/lr/config/name"
)

type sourceKind int

const (
	sourceChannel sourceKind = iota
	sourceAux
	sourceFX
	sourceBus
	sourceSend
	sourceMain
)

var usbSourceBands = mixer.NewBands([]mixer.Band[sourceKind]{
	{Upper: int(UsbCh16), Kind: sourceChannel},
	{Upper: int(UsbAuxR), Kind: sourceAux},
	{Upper: int(UsbFx4R), Kind: sourceFX},
	{Upper: int(UsbBus6), Kind: sourceBus},
	{Upper: int(UsbSend4), Kind: sourceSend},
	{Upper: int(UsbR), Kind: sourceMain},
}...)

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

// EnsureSampleRate corrects the rate whenever it differs, XAir consoles have
// no external clock source.
func (scanner *Scanner) EnsureSampleRate(ctx context.Context) error {
	return mixer.EnforceClockRate(ctx, scanner.dispatcher, mixer.ClockPolicy{
		Rate:     nodeClockRate,
		Required: int(ClockRate44k1),
	})
}

func (scanner *Scanner) ScanCardRouting(ctx context.Context) ([]mixer.Label, error) {
	return mixer.Resolve(ctx, SlotCount, scanner.resolveSinglePatchPoint)
}

func (scanner *Scanner) Terminate() error {
	if scanner.conn == nil {
		return nil
	}

	return scanner.conn.Close()
}

func (scanner *Scanner) resolveSinglePatchPoint(ctx context.Context, index int) (mixer.Label, error) {
	values, err := scanner.dispatcher.Query(ctx,
		mixer.Nodef("/routing/usb/%02d/src", index+1),
		mixer.Nodef("/routing/usb/%02d/pos", index+1),
	)
	if err != nil {
		return mixer.Label{}, err
	}

	tap, ok := values[1].Int()
	if _, valid := mixer.TapLabel(tap); !ok || !valid {
		return mixer.Label{}, nil
	}

	name, err := scanner.resolveUsbSource(ctx, values[0])
	if err != nil {
		return mixer.Label{}, err
	}

	return mixer.WithTap(name, values[1]), nil
}

func (scanner *Scanner) resolveUsbSource(ctx context.Context, source mixer.Value) (mixer.Label, error) {
	code, ok := source.Int()
	if !ok {
		return mixer.Label{}, nil
	}

	kind, offset, ok := usbSourceBands.Classify(code)
	if !ok {
		return mixer.Label{}, nil
	}

	switch kind {
	case sourceChannel:
		return scanner.named(ctx, mixer.Nodef("/ch/%02d/config/name", offset+1), fmt.Sprintf("Ch %d", offset+1), "")
	case sourceAux:
		return scanner.named(ctx, nodeAuxRtnName, "Aux", " "+side(offset))
	case sourceFX:
		fx := offset / 2
		name, err := mixer.ResolveName(ctx, scanner.dispatcher, mixer.Nodef("/rtn/%d/config/name", fx+1), fmt.Sprintf("FX %d", fx+1))
		if err != nil {
			return mixer.Label{}, err
		}
		return mixer.Named(joinSide(name, side(offset))), nil
	case sourceBus:
		return scanner.named(ctx, mixer.Nodef("/bus/%d/config/name", offset+1), fmt.Sprintf("Bus %d", offset+1), "")
	case sourceSend:
		return scanner.named(ctx, mixer.Nodef("/fxsend/%d/config/name", offset+1), fmt.Sprintf("FxSend %d", offset+1), "")
	case sourceMain:
		return scanner.named(ctx, nodeMainName, "Main", " "+side(offset))
	}

	return mixer.Label{}, nil
}

func (scanner *Scanner) named(ctx context.Context, node mixer.Node, fallback string, suffix string) (mixer.Label, error) {
	name, err := mixer.ResolveName(ctx, scanner.dispatcher, node, fallback)
	if err != nil {
		return mixer.Label{}, err
	}

	return mixer.Named(name + suffix), nil
}

// joinSide appends the L/R suffix, without a space when the name already
// ends in an ASCII digit ("Reverb2" becomes "Reverb2R", "FX 1" becomes "FX 1L").
func joinSide(name string, side string) string {
	if last := len(name) - 1; last >= 0 && name[last] >= '0' && name[last] <= '9' {
		return name + side
	}

	return name + " " + side
}

func side(offset int) string {
	if offset%2 == 0 {
		return "L"
	}
	return "R"
}
