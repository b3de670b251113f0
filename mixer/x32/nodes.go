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

import "mx-alias/mixer"

// Port is the UDP port an X32 family console listens on.
const Port = 10023

const (
	nodeClockSource mixer.Node = "/-prefs/clocksource"
	nodeClockRate   mixer.Node = "/-prefs/clockrate"
	nodeAuxInPatch  mixer.Node = "/config/routing/IN/AUX"
	nodeMainStName  mixer.Node = "/main/st/config/name"
	nodeMainMName   mixer.Node = "/main/m/config/name"
)

// cardBlockNodes are the four selectors feeding card outputs 1-32.
var cardBlockNodes = []mixer.Node{
	"/config/routing/CARD/1-8",
	"/config/routing/CARD/9-16",
	"/config/routing/CARD/17-24",
	"/config/routing/CARD/25-32",
}

// outputBank is a collection of physical outputs sharing a /outputs/<bank> prefix.
type outputBank string

const (
	bankMain outputBank = "main"
	bankP16  outputBank = "p16"
	bankAux  outputBank = "aux"
)

// nodes returns the source and tap nodes of a zero based output index.
func (bank outputBank) nodes(index int) (mixer.Node, mixer.Node) {
	return mixer.Nodef("/outputs/%s/%02d/src", bank, index+1),
		mixer.Nodef("/outputs/%s/%02d/pos", bank, index+1)
}

func userInNode(index int) mixer.Node {
	return mixer.Nodef("/config/userrout/in/%02d", index+1)
}

func userOutNode(index int) mixer.Node {
	return mixer.Nodef("/config/userrout/out/%02d", index+1)
}

func channelName(index int) mixer.Node {
	return mixer.Nodef("/ch/%02d/config/name", index+1)
}

func busName(index int) mixer.Node {
	return mixer.Nodef("/bus/%02d/config/name", index+1)
}

func matrixName(index int) mixer.Node {
	return mixer.Nodef("/mtx/%02d/config/name", index+1)
}

func auxInName(index int) mixer.Node {
	return mixer.Nodef("/auxin/%02d/config/name", index+1)
}

func fxReturnName(index int) mixer.Node {
	return mixer.Nodef("/fxrtn/%02d/config/name", index+1)
}
