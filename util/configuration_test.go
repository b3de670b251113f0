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
package util

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mx-alias/model"
)

func writeYaml(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mx-alias.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	return path
}

func TestReadConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	config, err := ReadConfig(&model.CommandLineArgs{})
	require.NoError(t, err)

	assert.Equal(t, "auto", config.Family)
	assert.Equal(t, 1000, config.DiscoveryIntervalMs)
	assert.Equal(t, 10000, config.DiscoveryTimeoutMs)
	assert.Equal(t, 3, config.QueryRetries)
	assert.Equal(t, model.OutputText, config.OutputType)
	assert.Equal(t, model.TargetNone, config.Target)
	assert.Equal(t, int(slog.LevelInfo), config.LogLevel)
	assert.False(t, config.SimulationOptions.EnableSimulation)
}

func TestReadConfigLayering(t *testing.T) {
	path := writeYaml(t, `
mixer_address: 10.0.0.5
family: x32
query_retries: 0
output_type: json
target: reaper
reaper_config: ~/.config/REAPER/reaper.ini
simulation:
  fixture: studio.yml
  family: xair
`)

	config, err := ReadConfig(&model.CommandLineArgs{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.5", config.MixerAddress)
	assert.Equal(t, "x32", config.Family)
	assert.Equal(t, 0, config.QueryRetries)
	assert.Equal(t, 500, config.QueryTimeoutMs)
	assert.Equal(t, model.OutputJSON, config.OutputType)
	assert.Equal(t, model.TargetReaper, config.Target)
	assert.Equal(t, "studio.yml", config.SimulationOptions.Fixture)
	assert.Equal(t, "xair", config.SimulationOptions.Family)

	config, err = ReadConfig(&model.CommandLineArgs{
		ConfigFile:   path,
		MixerAddress: "10.0.0.9",
		Family:       "XAir",
		OutputType:   "tui",
		Verbose:      true,
		Simulate:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.9", config.MixerAddress)
	assert.Equal(t, "xair", config.Family)
	assert.Equal(t, model.OutputTUI, config.OutputType)
	assert.Equal(t, int(slog.LevelDebug), config.LogLevel)
	assert.True(t, config.SimulationOptions.EnableSimulation)
}

func TestReadConfigRejectsBadValues(t *testing.T) {
	configs := []string{
		"output_type: pdf\n",
		"target: ardour\n",
		"family: m32\n",
		"log_format: xml\n",
		"target: reaper\n",
		"query_retries: -1\n",
	}

	for _, content := range configs {
		_, err := ReadConfig(&model.CommandLineArgs{ConfigFile: writeYaml(t, content)})
		assert.Error(t, err, content)
	}

	_, err := ReadConfig(&model.CommandLineArgs{OutputType: "pdf", ConfigFile: writeYaml(t, "")})
	assert.Error(t, err)
}

func TestReadConfigExplicitFileMustExist(t *testing.T) {
	_, err := ReadConfig(&model.CommandLineArgs{ConfigFile: filepath.Join(t.TempDir(), "missing.yml")})
	assert.ErrorIs(t, err, ErrNoYamlFile)
}

func TestFindYamlFileSearchesConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	configDir := filepath.Join(home, ".config", "mx-alias")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "studio.yml"), []byte("{}"), 0644))

	found, err := FindYamlFile("studio.yml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(configDir, "studio.yml"), found)

	found, err = FindYamlFile("~/.config/mx-alias/studio.yml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(configDir, "studio.yml"), found)

	_, err = FindYamlFile("other.yml")
	assert.ErrorIs(t, err, ErrNoYamlFile)
}

func TestResolveHomeDirPath(t *testing.T) {
	t.Setenv("HOME", "/home/engineer")

	resolved, err := ResolveHomeDirPath("~/reaper.ini")
	require.NoError(t, err)
	assert.Equal(t, "/home/engineer/reaper.ini", resolved)

	resolved, err = ResolveHomeDirPath("/etc/reaper.ini")
	require.NoError(t, err)
	assert.Equal(t, "/etc/reaper.ini", resolved)
}
