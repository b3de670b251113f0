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
package model

import (
	"mx-alias/mixer"
)

type ConsoleInfo struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
	Model   string `json:"model,omitempty"`
	Version string `json:"version,omitempty"`
	Family  string `json:"family"`
}

// ScanReport is everything one run learned about the console routing.
type ScanReport struct {
	Console ConsoleInfo   `json:"console"`
	Slots   []mixer.Label `json:"slots"`
}

// AssignedCount is the number of slots with a source patched to them.
func (report ScanReport) AssignedCount() int {
	count := 0
	for _, slot := range report.Slots {
		if slot.Valid() {
			count++
		}
	}
	return count
}
