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
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"mx-alias/mixer"
	"mx-alias/model"
)

const DefaultConfigFile = "mx-alias.yml"

// ReadConfig layers the defaults, the yaml config file and the command line.
// A missing config file is only an error when one was asked for explicitly.
func ReadConfig(args *model.CommandLineArgs) (*model.Config, error) {
	config := &model.Config{
		MixerAddress:        "",
		Family:              "auto",
		DiscoveryIntervalMs: 1000,
		DiscoveryTimeoutMs:  10000,
		QueryTimeoutMs:      500,
		QueryRetries:        3,
		SkipSampleRate:      false,
		LogLevel:            int(slog.LevelInfo),
		LogFormat:           "pretty",
		OutputType:          model.OutputText,
		Target:              model.TargetNone,
		ReaperBackupFormat:  "%Y%m%d-%H%M%S.bak",
		JackClientName:      "mx-alias",
		JackAliasBinary:     "",
		JackPortPattern:     `^system:capture_(\d+)$`,
		SimulationOptions: &model.SimulationOptions{
			EnableSimulation: false,
			Fixture:          "",
			Family:           "x32",
		},
	}

	configFile := args.ConfigFile
	if configFile == "" {
		configFile = DefaultConfigFile
	}

	if err := ReadYamlFile(config, configFile); err != nil {
		if args.ConfigFile != "" || !errors.Is(err, ErrNoYamlFile) {
			return nil, err
		}

		slog.Debug("No config file found, using defaults")
	}

	// a yaml file with an empty simulation block leaves the pointer nil
	if config.SimulationOptions == nil {
		config.SimulationOptions = &model.SimulationOptions{Family: "x32"}
	}

	if args.MixerAddress != "" {
		config.MixerAddress = args.MixerAddress
	}

	if args.Family != "" {
		config.Family = args.Family
	}

	if args.OutputType != "" {
		outputType, err := model.ParseOutputType(args.OutputType)
		if err != nil {
			return nil, err
		}
		config.OutputType = outputType
	}

	if args.Target != "" {
		target, err := model.ParseTarget(args.Target)
		if err != nil {
			return nil, err
		}
		config.Target = target
	}

	if args.ReaperConfig != "" {
		config.ReaperConfig = args.ReaperConfig
	}

	if args.Verbose {
		config.LogLevel = int(slog.LevelDebug)
	}

	if args.SkipSampleRate {
		config.SkipSampleRate = true
	}

	if args.Simulate {
		config.SimulationOptions.EnableSimulation = true
	}

	if args.Fixture != "" {
		config.SimulationOptions.Fixture = args.Fixture
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

func validateConfig(config *model.Config) error {
	config.Family = strings.ToLower(config.Family)
	if _, ok := mixer.FamilyMap[config.Family]; !ok {
		return fmt.Errorf("invalid family specified: %s. Valid options: auto, x32, xair", config.Family)
	}

	config.SimulationOptions.Family = strings.ToLower(config.SimulationOptions.Family)
	if family := mixer.FamilyMap[config.SimulationOptions.Family]; family == mixer.FamilyUnknown {
		return fmt.Errorf("invalid simulation family specified: %s. Valid options: x32, xair", config.SimulationOptions.Family)
	}

	if !slices.Contains(model.LogFormats, strings.ToLower(config.LogFormat)) {
		return fmt.Errorf("invalid log format specified: %s. Valid options: %s", config.LogFormat, strings.Join(model.LogFormats, ", "))
	}

	if config.Target == model.TargetReaper && config.ReaperConfig == "" {
		return errors.New("a REAPER config path is required for the reaper target")
	}

	if config.QueryRetries < 0 {
		return fmt.Errorf("query_retries must not be negative, got %d", config.QueryRetries)
	}

	return nil
}
