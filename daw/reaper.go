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

// Package daw writes scan results into DAW configuration files.
package daw

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lestrrat-go/strftime"
	"gopkg.in/ini.v1"

	"mx-alias/mixer"
	"mx-alias/util"
)

var ErrNoAliasSection = errors.New("no JACK input alias map in config")

const (
	sectionAliasIn = "alias_in_JackIn"
	keyMapSize     = "map_size"
)

func init() {
	// REAPER writes key=value with no alignment
	ini.PrettyFormat = false
}

// SetPortAliases rewrites the JACK input alias map of a REAPER config so
// input i is called labels[i]. Inputs past the end of labels, and absent
// labels, get an empty name. When backupFormat is not empty a copy of the
// original file is saved first, named with the strftime pattern.
func SetPortAliases(configPath string, labels []mixer.Label, backupFormat string) error {
	return setPortAliases(configPath, labels, backupFormat, time.Now())
}

func setPortAliases(configPath string, labels []mixer.Label, backupFormat string, now time.Time) error {
	configPath, err := util.ResolveHomeDirPath(configPath)
	if err != nil {
		return err
	}

	configPath, err = filepath.Abs(configPath)
	if err != nil {
		return err
	}

	config, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		PreserveSurroundedQuote: true,
	}, configPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", configPath, err)
	}

	section, err := config.GetSection(sectionAliasIn)
	if err != nil {
		return fmt.Errorf("%s: %w", configPath, ErrNoAliasSection)
	}

	mapSize, err := section.Key(keyMapSize).Int()
	if err != nil {
		return fmt.Errorf("%s: bad %s: %w", configPath, keyMapSize, ErrNoAliasSection)
	}

	if backupFormat != "" {
		if err := backup(configPath, backupFormat, now); err != nil {
			return err
		}
	}

	for i := 0; i < mapSize; i++ {
		name := ""
		if i < len(labels) && labels[i].Valid() {
			name = labels[i].String()
		}

		section.Key(fmt.Sprintf("name%d", i)).SetValue(name)
		slog.Debug(fmt.Sprintf("REAPER input %d: '%s'", i+1, name))
	}

	if err := config.SaveTo(configPath); err != nil {
		return fmt.Errorf("write %s: %w", configPath, err)
	}

	slog.Info(fmt.Sprintf("Wrote %d input aliases to %s", mapSize, configPath))

	return nil
}

func backup(configPath string, backupFormat string, now time.Time) error {
	suffix, err := strftime.Format(backupFormat, now)
	if err != nil {
		return fmt.Errorf("backup name: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	backupPath := configPath + "." + suffix
	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return fmt.Errorf("backup %s: %w", configPath, err)
	}

	slog.Info("Saved backup of REAPER config to " + backupPath)

	return nil
}
