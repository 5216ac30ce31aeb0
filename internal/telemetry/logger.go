// Package telemetry records what happens during a game: a structured log
// stream built on charmbracelet/log, and a per-game journal that can be saved
// and inspected later.
package telemetry

import (
	"io"
	"sort"

	"github.com/charmbracelet/log"
)

// Events logged at info level. Everything else is debug.
var infoEvents = map[string]bool{
	"new_game":       true,
	"game_over":      true,
	"state_restored": true,
	"corrupt_state":  true,
	"undo":           true,
}

// Logger writes game events to a charmbracelet/log logger.
type Logger struct {
	log *log.Logger
}

// NewLogger creates a logger writing to w.
func NewLogger(w io.Writer, prefix string) *Logger {
	return &Logger{log: log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})}
}

// FromLogger wraps an existing logger.
func FromLogger(l *log.Logger) *Logger {
	return &Logger{log: l}
}

// With returns a Logger that adds keyvals to every entry.
func (l *Logger) With(keyvals ...any) *Logger {
	return &Logger{log: l.log.With(keyvals...)}
}

// SetLevel changes the minimum level written.
func (l *Logger) SetLevel(level log.Level) {
	l.log.SetLevel(level)
}

// Base returns the underlying logger.
func (l *Logger) Base() *log.Logger {
	return l.log
}

// LogEvent implements session.Telemetry.
func (l *Logger) LogEvent(name string, fields map[string]any) {
	kv := keyvals(fields)
	if infoEvents[name] {
		l.log.Info(name, kv...)
		return
	}
	l.log.Debug(name, kv...)
}

// LogError implements session.Telemetry.
func (l *Logger) LogError(err error, fields map[string]any) {
	l.log.Error("game error", append([]any{"error", err}, keyvals(fields)...)...)
}

// keyvals flattens fields into sorted key/value pairs. Grids are left out;
// they are recorded in the journal instead.
func keyvals(fields map[string]any) []any {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == "grid" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		out = append(out, k, fields[k])
	}
	return out
}
