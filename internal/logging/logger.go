// Package logging provides leveled logging and relocation tracing.
// It offers two complementary outputs:
//   - A leveled slog.Logger for stderr (operational output), rendered by
//     charmbracelet/log
//   - A Trace for structured JSONL records of individual relocations
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"schelling/internal/sims/schelling"
)

// LevelTrace is a custom slog level below Debug for per-household output.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps a string level name to a slog.Level.
// Supported values: "info", "debug", "trace", "warn", "error"
// (case-insensitive). Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled slog.Logger writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	handler := log.NewWithOptions(w, log.Options{
		Level:           log.Level(ParseLevel(level)),
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "schelling",
	})
	return slog.New(handler)
}

// Trace writes committed relocations to a JSONL file, one line each. It is
// safe for concurrent use, and a nil Trace discards everything.
type Trace struct {
	mu  sync.Mutex
	enc *json.Encoder
	f   *os.File
	err error
}

// traceRecord is one line of the trace.
type traceRecord struct {
	Time string `json:"time"`
	schelling.Relocation
}

// OpenTrace creates (or truncates) the trace file at path. An empty path
// returns a nil Trace.
func OpenTrace(path string) (*Trace, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening trace file: %w", err)
	}
	return &Trace{enc: json.NewEncoder(f), f: f}, nil
}

// Log appends r with a UTC timestamp. The first write error is kept and
// reported by Close; later relocations are dropped.
func (t *Trace) Log(r schelling.Relocation) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.f == nil || t.err != nil {
		return
	}
	rec := traceRecord{Time: time.Now().UTC().Format(time.RFC3339Nano), Relocation: r}
	if err := t.enc.Encode(rec); err != nil {
		t.err = fmt.Errorf("writing trace: %w", err)
	}
}

// Close flushes the file and returns the first write or close error.
func (t *Trace) Close() error {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.f == nil {
		return t.err
	}
	err := t.f.Close()
	t.f = nil
	if t.err != nil {
		return t.err
	}
	return err
}
