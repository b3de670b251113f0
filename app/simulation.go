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
package app

import (
	"fmt"
	"path/filepath"

	"mx-alias/discovery"
	"mx-alias/mixer"
	"mx-alias/mixer/sim"
	"mx-alias/mixer/x32"
	"mx-alias/mixer/xair"
	"mx-alias/model"
	"mx-alias/util"
)

const simulatedAddress = "simulation"

// XAir tap codes match the X32 output positions.
const (
	xairTapIn   = int(x32.PosIn)
	xairTapPost = int(x32.PosPost)
)

// simulatedMixer describes the console a simulation run pretends to talk to.
func simulatedMixer(options *model.SimulationOptions) discovery.Mixer {
	name := "demo"
	if options.Fixture != "" {
		name = filepath.Base(options.Fixture)
	}

	return discovery.Mixer{
		Address: simulatedAddress,
		Name:    name,
		Model:   "simulated",
		Family:  mixer.FamilyMap[options.Family],
	}
}

// openSimulation returns a scanner over an in-memory console loaded from the
// fixture, or over a small demo routing when no fixture is set.
func openSimulation(options *model.SimulationOptions) (mixer.Scanner, *sim.Console, error) {
	family := mixer.FamilyMap[options.Family]

	var console *sim.Console

	if options.Fixture != "" {
		path, err := util.FindYamlFile(options.Fixture)
		if err != nil {
			return nil, nil, fmt.Errorf("simulation fixture: %w", err)
		}

		console, err = sim.LoadFixture(path)
		if err != nil {
			return nil, nil, err
		}
	} else if family == mixer.FamilyXAir {
		console = demoXAir()
	} else {
		console = demoX32()
	}

	switch family {
	case mixer.FamilyX32:
		return x32.NewScanner(console, console), console, nil
	case mixer.FamilyXAir:
		return xair.NewScanner(console, console), console, nil
	}

	return nil, nil, fmt.Errorf("unsupported simulation family %s", family)
}

// demoX32 is a stage box on the first 16 slots, AES50 A on the next 8 and
// the main outputs on the last block.
func demoX32() *sim.Console {
	console := sim.New().
		PutInt("/-prefs/clocksource", int(x32.ClockInternal)).
		PutInt("/-prefs/clockrate", int(x32.ClockRate48k)).
		PutInt("/config/routing/CARD/1-8", int(x32.Local1_8)).
		PutInt("/config/routing/CARD/9-16", int(x32.Local9_16)).
		PutInt("/config/routing/CARD/17-24", int(x32.A1_8)).
		PutInt("/config/routing/CARD/25-32", int(x32.Out1_8)).
		PutInt("/outputs/main/01/src", int(x32.SourceMainL)).
		PutInt("/outputs/main/01/pos", int(x32.PosPost)).
		PutInt("/outputs/main/02/src", int(x32.SourceMainR)).
		PutInt("/outputs/main/02/pos", int(x32.PosPost)).
		PutString("/main/st/config/name", "PA")

	wedges := []string{"Wedge DS", "Wedge SL", "Wedge SR", "Drums", "Keys", "IEM"}
	for i, name := range wedges {
		console.
			PutInt(mixer.Nodef("/outputs/main/%02d/src", i+3), int(x32.SourceMixBus01)+i).
			PutInt(mixer.Nodef("/outputs/main/%02d/pos", i+3), int(x32.PosPre)).
			PutString(mixer.Nodef("/bus/%02d/config/name", i+1), name)
	}

	return console
}

// demoXAir sends the 16 channels at their inputs and the main mix.
func demoXAir() *sim.Console {
	console := sim.New().
		PutInt("/-prefs/clockrate", int(xair.ClockRate48k)).
		PutInt("/routing/usb/17/src", int(xair.UsbL)).
		PutInt("/routing/usb/17/pos", xairTapPost).
		PutInt("/routing/usb/18/src", int(xair.UsbR)).
		PutInt("/routing/usb/18/pos", xairTapPost)

	channels := []string{"Kick", "Snare", "Hat", "Tom 1", "Tom 2", "OH L", "OH R", "Bass"}
	for i := range 16 {
		console.
			PutInt(mixer.Nodef("/routing/usb/%02d/src", i+1), int(xair.UsbCh01)+i).
			PutInt(mixer.Nodef("/routing/usb/%02d/pos", i+1), xairTapIn)

		if i < len(channels) {
			console.PutString(mixer.Nodef("/ch/%02d/config/name", i+1), channels[i])
		}
	}

	return console
}
