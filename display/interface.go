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
	"io"

	"mx-alias/model"
)

// UI renders the result of a routing scan.
type UI interface {
	ShowConsole(console model.ConsoleInfo) error
	ShowResult(report model.ScanReport) error
}

// New returns the non interactive renderer for outputType. The TUI is built
// with NewTui, its lifecycle spans the whole run.
func New(outputType model.OutputType, output io.Writer) UI {
	if outputType == model.OutputJSON {
		return NewJsonUI(output)
	}

	return NewTextUI(output)
}
