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
	"encoding/json"
	"fmt"
	"io"

	"mx-alias/model"
)

type JsonUI struct {
	output io.Writer
}

func NewJsonUI(output io.Writer) *JsonUI {
	return &JsonUI{
		output: output,
	}
}

// ShowResult prints the report as one indented JSON document, absent slots
// have a null label.
func (j *JsonUI) ShowConsole(console model.ConsoleInfo) error {
	return j.write(JsonConsole{
		MessageType: "console",
		Console:     console,
	})
}

func (j *JsonUI) ShowResult(report model.ScanReport) error {
	jsonReport := JsonReport{
		MessageType: "scan",

		Console:  report.Console,
		Assigned: report.AssignedCount(),
		Slots:    make([]JsonSlot, len(report.Slots)),
	}

	for i, slot := range report.Slots {
		jsonReport.Slots[i].Slot = i + 1
		jsonReport.Slots[i].Label = slot
	}

	return j.write(jsonReport)
}

func (j *JsonUI) write(message any) error {
	jsonBytes, err := json.MarshalIndent(message, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling to JSON: %w", err)
	}

	_, err = fmt.Fprintln(j.output, string(jsonBytes))
	return err
}
