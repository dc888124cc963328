// Package logging builds the JSON line logger shared by the server.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

func init() {
	zerolog.MessageFieldName = "msg"
}

// tsHook stamps every event with an RFC3339Nano "ts" in a fixed location.
type tsHook struct {
	loc *time.Location
}

func (h tsHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str("ts", time.Now().In(h.loc).Format(time.RFC3339Nano))
}

// New returns a logger writing one JSON object per line to w.
// Unknown levels fall back to info.
func New(w io.Writer, loc *time.Location, level string) zerolog.Logger {
	if loc == nil {
		loc = time.UTC
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).Hook(tsHook{loc: loc})
}
