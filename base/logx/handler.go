// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"io"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

// NewHandler returns a text [slog.Handler] writing to w that only shows
// messages at or above [UserLevel]. Level names are colored when w
// is a terminal that supports it.
func NewHandler(w io.Writer) slog.Handler {
	out := termenv.NewOutput(w)
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: levelVar{},
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key != slog.LevelKey || len(groups) > 0 {
				return a
			}
			lvl, ok := a.Value.Any().(slog.Level)
			if !ok {
				return a
			}
			return slog.String(a.Key, LevelString(out, lvl))
		},
	})
}

// SetDefaultLogger sets the default logger to one that writes
// colored text to [os.Stderr] at [UserLevel].
func SetDefaultLogger() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr)))
}

// LevelString returns the name of the given level styled for the given
// termenv output: debug faint, info cyan, warn yellow, error bold red.
func LevelString(out *termenv.Output, lvl slog.Level) string {
	if out.Profile == termenv.Ascii {
		return lvl.String()
	}
	s := out.String(lvl.String())
	switch {
	case lvl >= slog.LevelError:
		s = s.Foreground(termenv.ANSIRed).Bold()
	case lvl >= slog.LevelWarn:
		s = s.Foreground(termenv.ANSIYellow)
	case lvl >= slog.LevelInfo:
		s = s.Foreground(termenv.ANSICyan)
	default:
		s = s.Faint()
	}
	return s.String()
}

// levelVar is a [slog.Leveler] that always reports the current [UserLevel],
// so changes to UserLevel apply to existing handlers.
type levelVar struct{}

func (levelVar) Level() slog.Level {
	return UserLevel
}
