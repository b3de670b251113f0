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

// PatchBlock is the value of a /config/routing/CARD/<n> selector: one group
// of 8 routing slots.
type PatchBlock int

const (
	Local1_8 PatchBlock = iota
	Local9_16
	Local17_24
	Local25_32
	A1_8
	A9_16
	A17_24
	A25_32
	A33_40
	A41_48
	B1_8
	B9_16
	B17_24
	B25_32
	B33_40
	B41_48
	Card1_8
	Card9_16
	Card17_24
	Card25_32
	Out1_8
	Out9_16
	P16_1_8
	P16_9_16
	Aux1_6Mon
	AuxIn1_6TB
	UserOut1_8
	UserOut9_16
	UserOut17_24
	UserOut25_32
	UserOut33_40
	UserOut41_48
	UserIn1_8
	UserIn9_16
	UserIn17_24
	UserIn25_32
)

// OutputSource is the value of /outputs/<bank>/<nn>/src.
type OutputSource int

const (
	SourceOff OutputSource = iota
	SourceMainL
	SourceMainR
	SourceMC
	SourceMixBus01
	SourceMixBus16 = SourceMixBus01 + 15
	SourceMatrix1  = SourceMixBus16 + 1
	SourceMatrix6  = SourceMatrix1 + 5

	SourceDirectOutCh01 = SourceMatrix6 + 1
	SourceDirectOutCh32 = SourceDirectOutCh01 + 31

	SourceDirectOutAux1 = SourceDirectOutCh32 + 1
	SourceDirectOutAux8 = SourceDirectOutAux1 + 7

	SourceDirectOutFX1L = SourceDirectOutAux8 + 1
	SourceDirectOutFX4R = SourceDirectOutFX1L + 7

	SourceMonitorL = SourceDirectOutFX4R + 1
	SourceMonitorR = SourceMonitorL + 1
	SourceTalkback = SourceMonitorR + 1
)

// OutputPos is the tap point of an output, /outputs/<bank>/<nn>/pos.
type OutputPos int

const (
	PosIn OutputPos = iota
	PosInM
	PosPreEQ
	PosPreEQM
	PosPostEQ
	PosPostEQM
	PosPre
	PosPreM
	PosPost
)

// UserInSource is the value of /config/userrout/in/<nn>.
type UserInSource int

const (
	UserInOff UserInSource = iota
	UserInLocal1
	UserInLocal32 = UserInLocal1 + 31
	UserInA1      = UserInLocal32 + 1
	UserInA48     = UserInA1 + 47
	UserInB1      = UserInA48 + 1
	UserInB48     = UserInB1 + 47
	UserInCard1   = UserInB48 + 1
	UserInCard32  = UserInCard1 + 31
	UserInAux1    = UserInCard32 + 1
	UserInAux6    = UserInAux1 + 5

	UserInTBInternal = UserInAux6 + 1
	UserInTBExternal = UserInTBInternal + 1
)

// UserOutDest is the value of /config/userrout/out/<nn>. Codes up to
// UserOutTBExternal share the UserInSource code space.
type UserOutDest int

const (
	UserOutTBExternal = UserOutDest(UserInTBExternal)

	UserOutOutput1  = UserOutTBExternal + 1
	UserOutOutput16 = UserOutOutput1 + 15
	UserOutP16_1    = UserOutOutput16 + 1
	UserOutP16_16   = UserOutP16_1 + 15
	UserOutAux1     = UserOutP16_16 + 1
	UserOutAux6     = UserOutAux1 + 5
	UserOutMonitorL = UserOutAux6 + 1
	UserOutMonitorR = UserOutMonitorL + 1
)

// AuxInPatch is the value of /config/routing/IN/AUX: where aux inputs 1-6 come from.
type AuxInPatch int

const (
	AuxInAux1_4 AuxInPatch = iota
	AuxInLocal1_2
	AuxInLocal1_4
	AuxInLocal1_6
	AuxInA1_2
	AuxInA1_4
	AuxInA1_6
	AuxInB1_2
	AuxInB1_4
	AuxInB1_6
	AuxInUserIn1_2
	AuxInUserIn1_4
	AuxInUserIn1_6
)

// ClockSource is the value of /-prefs/clocksource.
type ClockSource int

const (
	ClockInternal ClockSource = iota
	ClockAES50A
	ClockAES50B
	ClockCard
)

// ClockRate is the value of /-prefs/clockrate.
type ClockRate int

const (
	ClockRate48k ClockRate = iota
	ClockRate44k1
)
