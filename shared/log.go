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
package shared

import (
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"

	"mx-alias/util"
)

// ConfigureLogger installs the default slog handler. Logs always go to
// stderr, stdout carries the scan output.
func ConfigureLogger(level slog.Level, format string) {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, level, format)))
}

func NewHandler(w io.Writer, level slog.Level, format string) slog.Handler {
	options := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: levelNames,
	}

	switch strings.ToLower(format) {
	case "json":
		return slog.NewJSONHandler(w, options)
	case "text":
		return slog.NewTextHandler(w, options)
	}

	return charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.Level(level),
		ReportTimestamp: true,
		TimeFormat:      "2006-01-02 15:04:05",
	})
}

func levelNames(groups []string, attr slog.Attr) slog.Attr {
	if attr.Key != slog.LevelKey {
		return attr
	}

	if level, ok := attr.Value.Any().(slog.Level); ok && level <= util.LevelTrace {
		attr.Value = slog.StringValue("TRACE")
	}

	return attr
}
