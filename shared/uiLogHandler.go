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
	"context"
	"log/slog"
)

// LogWriter is a display that can show log lines itself.
type LogWriter interface {
	WriteLevelLog(level slog.Level, message string)
}

// UiLogHandler routes log records into a full screen display, where writing
// to stderr would tear the screen.
type UiLogHandler struct {
	level         slog.Level
	ui            LogWriter
	errorCallback func(string)
}

func NewUiLogHandler(out LogWriter, level slog.Level, errorCallback func(string)) *UiLogHandler {
	h := &UiLogHandler{
		level:         level,
		ui:            out,
		errorCallback: errorCallback,
	}

	return h
}

func (h *UiLogHandler) Handle(ctx context.Context, r slog.Record) error {
	h.ui.WriteLevelLog(r.Level, r.Message)

	if r.Level >= slog.LevelError && h.errorCallback != nil {
		h.errorCallback(r.Message)
	}

	return nil
}

func (h *UiLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *UiLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *UiLogHandler) WithGroup(name string) slog.Handler {
	return h
}
