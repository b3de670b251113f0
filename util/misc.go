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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

var ErrNoYamlFile = errors.New("no yaml file found")

// LevelTrace sits below debug and is used for per-packet logging.
const LevelTrace = slog.Level(-10)

// configDirName is the directory under ~/.config searched for yaml files
const configDirName = "mx-alias"

func FileExists(path string) bool {
	// if an error occurred or its a directory, we throw up
	if stat, err := os.Stat(path); err != nil || stat.IsDir() {
		return false
	}

	return true
}

func ResolveHomeDirPath(testPath string) (string, error) {
	if strings.HasPrefix(testPath, "~/") {
		homeDir, err := os.UserHomeDir()

		if err != nil {
			return "", errors.New("could not find user home dir: " + err.Error())
		}

		return path.Join(homeDir, testPath[2:]), nil
	}

	return testPath, nil
}

// FindYamlFile resolves fileName the way every yaml file of the tool is
// located: absolute path, home relative path, next to the executable, the
// working directory, then ~/.config/mx-alias.
func FindYamlFile(fileName string) (string, error) {
	if path.IsAbs(fileName) {
		if !FileExists(fileName) {
			return "", fmt.Errorf("%w: %s", ErrNoYamlFile, fileName)
		}
		return fileName, nil
	}

	if strings.HasPrefix(fileName, "~/") {
		testFilePath, err := ResolveHomeDirPath(fileName)
		if err != nil {
			return "", err
		}

		if !FileExists(testFilePath) {
			return "", fmt.Errorf("%w: %s", ErrNoYamlFile, testFilePath)
		}
		return testFilePath, nil
	}

	candidates := make([]string, 0, 3)

	// check path where executable lives
	if binPath, err := os.Executable(); err == nil {
		candidates = append(candidates, path.Join(filepath.Dir(binPath), fileName))
	}

	// check working directory
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, path.Join(cwd, fileName))
	}

	// check user config directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, path.Join(homeDir, ".config", configDirName, fileName))
	}

	for _, candidate := range candidates {
		if FileExists(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNoYamlFile, fileName)
}

func ReadYamlFile(cfg interface{}, fileName string) error {
	filePath, err := FindYamlFile(fileName)
	if err != nil {
		return err
	}

	slog.Info("Reading yaml from " + filePath)

	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("parse %s: %w", filePath, err)
	}

	return nil
}

func TraceLog(message string, args ...any) {
	slog.Log(context.Background(), LevelTrace, message, args...)
}

func FindJackAliasBinary() string {
	possiblePaths := []string{
		"/usr/bin/jack_alias",
		"/usr/local/bin/jack_alias",
		"/opt/homebrew/bin/jack_alias",
	}

	for _, path := range possiblePaths {
		if FileExists(path) {
			return path
		}
	}

	if path, err := exec.LookPath("jack_alias"); err == nil {
		return path
	}

	return ""
}
