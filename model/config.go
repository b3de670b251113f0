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
package model

import (
	"fmt"
	"slices"
	"strings"
)

type OutputType int

const (
	OutputText OutputType = iota
	OutputJSON
	OutputTUI
)

var OutputTypeMap = map[string]OutputType{
	"text": OutputText,
	"json": OutputJSON,
	"tui":  OutputTUI,
}

// Target is where the scanned labels end up on the recording host.
type Target int

const (
	TargetNone Target = iota
	TargetReaper
	TargetJack
)

var TargetMap = map[string]Target{
	"none":   TargetNone,
	"reaper": TargetReaper,
	"jack":   TargetJack,
}

var LogFormats = []string{"pretty", "text", "json"}

type CommandLineArgs struct {
	ConfigFile     string
	MixerAddress   string
	Family         string
	OutputType     string
	Target         string
	ReaperConfig   string
	Verbose        bool
	SkipSampleRate bool

	Simulate bool
	Fixture  string
}

type Config struct {
	MixerAddress        string     `yaml:"mixer_address,omitempty"`
	Family              string     `yaml:"family,omitempty"`
	DiscoveryIntervalMs int        `yaml:"discovery_interval_ms,omitempty"`
	DiscoveryTimeoutMs  int        `yaml:"discovery_timeout_ms,omitempty"`
	QueryTimeoutMs      int        `yaml:"query_timeout_ms,omitempty"`
	QueryRetries        int        `yaml:"query_retries,omitempty"`
	SkipSampleRate      bool       `yaml:"skip_sample_rate,omitempty"`
	LogLevel            int        `yaml:"log_level,omitempty"`
	LogFormat           string     `yaml:"log_format,omitempty"`
	OutputType          OutputType `yaml:"output_type,omitempty"`
	Target              Target     `yaml:"target,omitempty"`

	ReaperConfig       string `yaml:"reaper_config,omitempty"`
	ReaperBackupFormat string `yaml:"reaper_backup_format,omitempty"`

	JackClientName  string `yaml:"jack_client_name,omitempty"`
	JackAliasBinary string `yaml:"jack_alias_binary,omitempty"`
	JackPortPattern string `yaml:"jack_port_pattern,omitempty"`

	SimulationOptions *SimulationOptions `yaml:"simulation"`
}

type SimulationOptions struct {
	EnableSimulation bool   `yaml:"enable,omitempty"`
	Fixture          string `yaml:"fixture,omitempty"`
	Family           string `yaml:"family,omitempty"`
}

func ParseOutputType(value string) (OutputType, error) {
	return parseName(OutputTypeMap, "output type", value)
}

func ParseTarget(value string) (Target, error) {
	return parseName(TargetMap, "target", value)
}

func (outputType *OutputType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var value string
	if err := unmarshal(&value); err != nil {
		return err
	}

	parsed, err := ParseOutputType(value)
	if err != nil {
		return err
	}

	*outputType = parsed
	return nil
}

func (target *Target) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var value string
	if err := unmarshal(&value); err != nil {
		return err
	}

	parsed, err := ParseTarget(value)
	if err != nil {
		return err
	}

	*target = parsed
	return nil
}

func parseName[T any](names map[string]T, what string, value string) (T, error) {
	if parsed, ok := names[strings.ToLower(value)]; ok {
		return parsed, nil
	}

	valid := make([]string, 0, len(names))
	for key := range names {
		valid = append(valid, key)
	}
	slices.Sort(valid)

	var zero T
	return zero, fmt.Errorf("invalid %s specified: %s. Valid options: %s", what, value, strings.Join(valid, ", "))
}
