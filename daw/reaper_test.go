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
package daw

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"

	"mx-alias/mixer"
)

const reaperConfig = `[REAPER]
audiodriver=7
jack_client=REAPER

[alias_in_JackIn]
map_size=4
name0=old
name3=stale
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "reaper.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestSetPortAliases(t *testing.T) {
	path := writeConfig(t, reaperConfig)

	labels := []mixer.Label{
		mixer.Named("Kick (PRE)"),
		{},
		mixer.Named("Vox"),
	}

	now := time.Date(2024, 9, 27, 20, 50, 56, 0, time.UTC)
	require.NoError(t, setPortAliases(path, labels, "%Y%m%d-%H%M%S.bak", now))

	config, err := ini.Load(path)
	require.NoError(t, err)

	section := config.Section(sectionAliasIn)
	assert.Equal(t, "Kick (PRE)", section.Key("name0").String())
	assert.Equal(t, "", section.Key("name1").String())
	assert.Equal(t, "Vox", section.Key("name2").String())
	assert.Equal(t, "", section.Key("name3").String())
	assert.False(t, section.HasKey("name4"))
	assert.Equal(t, "4", section.Key(keyMapSize).String())

	assert.Equal(t, "REAPER", config.Section("REAPER").Key("jack_client").String())

	original, err := os.ReadFile(path + ".20240927-205056.bak")
	require.NoError(t, err)
	assert.Equal(t, reaperConfig, string(original))
}

func TestSetPortAliasesWithoutBackup(t *testing.T) {
	path := writeConfig(t, reaperConfig)

	require.NoError(t, SetPortAliases(path, []mixer.Label{mixer.Named("Local 1")}, ""))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSetPortAliasesNeedsAliasMap(t *testing.T) {
	configs := []string{
		"[REAPER]\naudiodriver=7\n",
		"[alias_in_JackIn]\nname0=x\n",
		"[alias_in_JackIn]\nmap_size=lots\n",
	}

	for _, content := range configs {
		path := writeConfig(t, content)

		err := setPortAliases(path, nil, "%Y.bak", time.Now())
		assert.ErrorIs(t, err, ErrNoAliasSection, content)

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "no backup is written for a rejected config")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, content, string(data))
	}
}

func TestSetPortAliasesMissingFile(t *testing.T) {
	err := SetPortAliases(filepath.Join(t.TempDir(), "missing.ini"), nil, "")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoAliasSection)
}
