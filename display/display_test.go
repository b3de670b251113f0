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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mx-alias/mixer"
	"mx-alias/model"
)

func testReport() model.ScanReport {
	return model.ScanReport{
		Console: model.ConsoleInfo{
			Address: "10.0.0.5:10023",
			Name:    "FOH",
			Model:   "X32",
			Family:  "X32",
		},
		Slots: []mixer.Label{
			mixer.Named("Local 1"),
			{},
			mixer.Named("Main L (PRE)"),
		},
	}
}

func TestTextUI(t *testing.T) {
	var buffer bytes.Buffer

	require.NoError(t, New(model.OutputText, &buffer).ShowResult(testReport()))

	expected := "# X32 'FOH' (X32) at 10.0.0.5:10023\n" +
		"1  Local 1\n" +
		"2  -\n" +
		"3  Main L (PRE)\n"
	assert.Equal(t, expected, buffer.String())
}

func TestJsonUI(t *testing.T) {
	var buffer bytes.Buffer

	require.NoError(t, New(model.OutputJSON, &buffer).ShowResult(testReport()))

	assert.JSONEq(t, `{
		"message_type": "scan",
		"console": {"address": "10.0.0.5:10023", "name": "FOH", "model": "X32", "family": "X32"},
		"assigned": 2,
		"slots": [
			{"slot": 1, "label": "Local 1"},
			{"slot": 2, "label": null},
			{"slot": 3, "label": "Main L (PRE)"}
		]
	}`, buffer.String())
}

func TestShowConsole(t *testing.T) {
	console := model.ConsoleInfo{Address: "10.0.0.9:10024", Family: "XAir"}

	var text bytes.Buffer
	require.NoError(t, New(model.OutputText, &text).ShowConsole(console))
	assert.Equal(t, "XAir at 10.0.0.9:10024\n", text.String())

	var json bytes.Buffer
	require.NoError(t, New(model.OutputJSON, &json).ShowConsole(console))
	assert.JSONEq(t, `{
		"message_type": "console",
		"console": {"address": "10.0.0.9:10024", "family": "XAir"}
	}`, json.String())
}

func TestStatusNames(t *testing.T) {
	assert.Equal(t, "Scanning routing", StatusScanning.String())
	assert.Equal(t, "unknown", Status(99).String())
}
