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
package display

import (
	"github.com/gdamore/tcell/v2"

	"mx-alias/display/theme"
)

type Status int

const (
	StatusSearching Status = iota
	StatusConnecting
	StatusClock
	StatusScanning
	StatusApplying
	StatusDone
	StatusFailed
)

var statusNames = map[Status]string{
	StatusSearching:  "Searching for console",
	StatusConnecting: "Connecting",
	StatusClock:      "Checking sample rate",
	StatusScanning:   "Scanning routing",
	StatusApplying:   "Renaming host ports",
	StatusDone:       "Done, press q to quit",
	StatusFailed:     "Failed, press q to quit",
}

func (status Status) String() string {
	if name, ok := statusNames[status]; ok {
		return name
	}
	return "unknown"
}

func (status Status) color() tcell.Color {
	switch status {
	case StatusDone:
		return theme.Green
	case StatusFailed:
		return theme.Red
	}
	return theme.Yellow
}
