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
package custom

import (
	"fmt"

	"code.rocketnine.space/tslocum/cview"
	"github.com/gdamore/tcell/v2"
)

// StatusField is a right aligned "Header: " label followed by a value.
type StatusField struct {
	grid       *cview.Grid
	headerView *cview.TextView
	valueView  *cview.TextView
}

func NewStatusField(headerWidth int, header string, initialValue string) *StatusField {
	field := StatusField{
		grid: cview.NewGrid(),
	}

	field.grid.SetPadding(0, 0, 0, 0)
	field.grid.SetColumns(headerWidth, -1)
	field.grid.SetRows(1)

	field.headerView = cview.NewTextView()
	field.headerView.SetTextAlign(cview.AlignRight)
	field.headerView.Write([]byte(fmt.Sprintf("%s: ", header)))
	field.grid.AddItem(field.headerView, 0, 0, 1, 1, 0, 0, false)

	field.valueView = cview.NewTextView()
	field.grid.AddItem(field.valueView, 0, 1, 1, 1, 0, 0, false)

	field.SetValue(initialValue)

	return &field
}

func (field *StatusField) SetValue(value string) {
	field.valueView.Clear()
	field.valueView.Write([]byte(value))
}

func (field *StatusField) SetColor(color tcell.Color) {
	field.valueView.SetTextColor(color)
}

func (field *StatusField) GetGrid() *cview.Grid {
	return field.grid
}
