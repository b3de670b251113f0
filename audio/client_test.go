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
package audio

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mx-alias/mixer"
)

func TestParseCapturePortsOrdersByNumber(t *testing.T) {
	names := []string{
		"system:capture_10",
		"system:capture_2",
		"system:playback_1",
		"system:capture_1",
		"REAPER:in1",
		"system:capture_x",
	}

	ports := parseCapturePorts(names, regexp.MustCompile(DefaultPortPattern))
	require.Len(t, ports, 3)

	assert.Equal(t, 1, ports[0].Number())
	assert.Equal(t, "system:capture_2", ports[1].JackName())
	assert.Equal(t, 10, ports[2].Number())
}

func TestNewJackClientValidatesPattern(t *testing.T) {
	_, err := NewJackClient("mx-alias", "/usr/bin/jack_alias", "system:capture_\\d+")
	assert.Error(t, err)

	_, err = NewJackClient("mx-alias", "/usr/bin/jack_alias", "([")
	assert.Error(t, err)

	client, err := NewJackClient("mx-alias", "/usr/bin/jack_alias", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultPortPattern, client.portPattern.String())
}

type call struct {
	name string
	args []string
}

func TestSetAliasesSkipsAbsentLabels(t *testing.T) {
	client, err := NewJackClient("mx-alias", "/usr/bin/jack_alias", "")
	require.NoError(t, err)

	calls := make([]call, 0)
	client.runCommand = func(name string, args ...string) ([]byte, error) {
		calls = append(calls, call{name, args})
		return nil, nil
	}

	ports := []*Port{
		newPort(1, "system:capture_1"),
		newPort(2, "system:capture_2"),
		newPort(3, "system:capture_3"),
	}
	labels := []mixer.Label{mixer.Named("Kick (PRE)"), {}}

	require.NoError(t, client.SetAliases(ports, labels))

	require.Len(t, calls, 1)
	assert.Equal(t, "/usr/bin/jack_alias", calls[0].name)
	assert.Equal(t, []string{"system:capture_1", "Kick (PRE)"}, calls[0].args)
}

func TestSetAliasesContinuesPastFailures(t *testing.T) {
	client, err := NewJackClient("mx-alias", "/usr/bin/jack_alias", "")
	require.NoError(t, err)

	boom := errors.New("exit status 1")
	attempts := 0
	client.runCommand = func(name string, args ...string) ([]byte, error) {
		attempts++
		if args[0] == "system:capture_1" {
			return []byte("cannot find port\n"), boom
		}
		return nil, nil
	}

	ports := []*Port{newPort(1, "system:capture_1"), newPort(2, "system:capture_2")}
	err = client.SetAliases(ports, mixer.Labels("Local 1", "Local 2"))

	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "cannot find port")
	assert.Equal(t, 2, attempts)
}

func TestCapturePortsNeedsConnection(t *testing.T) {
	client, err := NewJackClient("mx-alias", "/usr/bin/jack_alias", "")
	require.NoError(t, err)

	_, err = client.CapturePorts()
	assert.Error(t, err)
}
