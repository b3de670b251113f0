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
package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mx-alias/mixer"
	"mx-alias/model"
)

func simulationConfig(family string) *model.Config {
	return &model.Config{
		Family:    "auto",
		LogFormat: "text",
		SimulationOptions: &model.SimulationOptions{
			EnableSimulation: true,
			Family:           family,
		},
	}
}

func TestReadRoutingFixesClock(t *testing.T) {
	for _, family := range []string{"x32", "xair"} {
		scanner, console, err := openSimulation(simulationConfig(family).SimulationOptions)
		require.NoError(t, err)

		engine := newEngine(simulationConfig(family), &bytes.Buffer{})
		labels, err := engine.readRouting(context.Background(), scanner)
		require.NoError(t, err)
		assert.NotEmpty(t, labels)

		writes := console.Writes()
		require.Len(t, writes, 1, family)
		assert.Equal(t, mixer.Node("/-prefs/clockrate"), writes[0].Node)
		assert.Equal(t, mixer.IntValue(1), writes[0].Value)
	}
}

func TestReadRoutingSkipsClock(t *testing.T) {
	config := simulationConfig("x32")
	config.SkipSampleRate = true

	scanner, console, err := openSimulation(config.SimulationOptions)
	require.NoError(t, err)

	labels, err := newEngine(config, &bytes.Buffer{}).readRouting(context.Background(), scanner)
	require.NoError(t, err)
	assert.Len(t, labels, 32)
	assert.Empty(t, console.Writes())
}

func TestScanSimulatedXAir(t *testing.T) {
	config := simulationConfig("xair")
	engine := newEngine(config, &bytes.Buffer{})

	labels, err := engine.scan(context.Background(), simulatedMixer(config.SimulationOptions))
	require.NoError(t, err)
	assert.Len(t, labels, 18)
}

func TestLocateManualAddress(t *testing.T) {
	config := simulationConfig("x32")
	config.SimulationOptions.EnableSimulation = false
	config.MixerAddress = "10.0.0.5"
	config.Family = "xair"

	found, err := newEngine(config, &bytes.Buffer{}).locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5:10024", found.Address)
	assert.Equal(t, mixer.FamilyXAir, found.Family)
}

func TestRunCancelled(t *testing.T) {
	config := simulationConfig("x32")
	var output bytes.Buffer

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newEngine(config, &output).run(ctx, modeScan)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, output.String())
}
