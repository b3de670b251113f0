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
	"fmt"
	"io"
	"text/tabwriter"

	"mx-alias/model"
)

type TextUI struct {
	output io.Writer
}

func NewTextUI(output io.Writer) *TextUI {
	return &TextUI{
		output: output,
	}
}

// ShowResult prints one line per slot, "-" marks a slot with nothing patched.
func (t *TextUI) ShowConsole(console model.ConsoleInfo) error {
	_, err := fmt.Fprintln(t.output, describeConsole(console))
	return err
}

func (t *TextUI) ShowResult(report model.ScanReport) error {
	writer := tabwriter.NewWriter(t.output, 0, 4, 2, ' ', 0)

	fmt.Fprintf(writer, "# %s\n", describeConsole(report.Console))

	for i, slot := range report.Slots {
		label := "-"
		if slot.Valid() {
			label = slot.String()
		}

		fmt.Fprintf(writer, "%d\t%s\n", i+1, label)
	}

	return writer.Flush()
}

func describeConsole(console model.ConsoleInfo) string {
	if console.Name == "" {
		return fmt.Sprintf("%s at %s", console.Family, console.Address)
	}

	return fmt.Sprintf("%s '%s' (%s) at %s", console.Family, console.Name, console.Model, console.Address)
}
