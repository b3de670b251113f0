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
package theme

import (
	"github.com/gdamore/tcell/v2"
)

const (
	Blue      = tcell.ColorBlue
	Green     = tcell.Color71
	Red       = tcell.Color124
	RedRGB    = "AF0000"
	SoftGreen = tcell.Color72
	Yellow    = tcell.Color142
	YellowRGB = "AFAF00"
	Gray      = tcell.ColorGray
	GrayRGB   = "808080"

	BorderColor = tcell.Color243

	AlternateRowBackgroundColor = tcell.Color233
	AbsentSlotColor             = tcell.Color242
	SlotNumberColor             = tcell.Color243
)

const (
	RuneAssigned = rune(10004) // ✔
	RuneAbsent   = rune(9932)  // ⛌
)
