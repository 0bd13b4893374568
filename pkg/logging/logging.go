// Package logging appends error and trace entries for menu operations to a
// single JSON lines file.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "facemenu.log"

// Level tells error entries from trace entries.
type Level string

const (
	LevelError Level = "error"
	LevelTrace Level = "trace"
)

// Entry is one line of the log.
type Entry struct {
	Time    time.Time `json:"time"`
	Level   Level     `json:"level"`
	Event   string    `json:"event"`
	Error   string    `json:"error,omitempty"`
	Payload any       `json:"payload,omitempty"`
}

// sink owns the process wide log file. It is opened on the first write and
// kept open until the destination changes or Close is called.
type sink struct {
	mu    sync.Mutex
	path  string
	trace bool
	file  io.WriteCloser
	enc   *json.Encoder
	now   func() time.Time

	// open is os.OpenFile in append mode, swapped in tests.
	open func(path string) (io.WriteCloser, error)
}

var std = &sink{
	path: defaultLogFile,
	now:  time.Now,
	open: func(path string) (io.WriteCloser, error) {
		return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	},
}

func (s *sink) write(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enc == nil {
		f, err := s.open(s.path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
			return
		}
		s.file, s.enc = f, json.NewEncoder(f)
	}
	e.Time = s.now().UTC()
	if err := s.enc.Encode(e); err != nil {
		fmt.Fprintf(os.Stderr, "log encoding failed: %v\n", err)
	}
}

// closeLocked releases the open file. s.mu must be held.
func (s *sink) closeLocked() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file, s.enc = nil, nil
	return err
}

// Error records err. Errors are written whether or not tracing is enabled.
func Error(err error) {
	if err == nil {
		return
	}
	std.write(Entry{Level: LevelError, Event: "error", Error: err.Error()})
}

// SetTraceEnabled toggles emission of trace entries.
func SetTraceEnabled(enabled bool) {
	std.mu.Lock()
	std.trace = enabled
	std.mu.Unlock()
}

// TraceEnabled reports whether Trace writes anything.
func TraceEnabled() bool {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.trace
}

// Trace records event with payload when tracing is enabled.
func Trace(event string, payload any) {
	if !TraceEnabled() {
		return
	}
	std.write(Entry{Level: LevelTrace, Event: event, Payload: payload})
}

// Configure sets the log destination and closes the file of the previous
// one. Empty values fall back to the default path. Missing directories are
// created.
func Configure(path string) {
	std.mu.Lock()
	defer std.mu.Unlock()
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultLogFile
	} else if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		path = defaultLogFile
	}
	if path == std.path && std.file != nil {
		return
	}
	_ = std.closeLocked()
	std.path = path
}

// Close flushes and closes the log file. A later write reopens it.
func Close() error {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.closeLocked()
}

// Path returns the current log destination.
func Path() string {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.path
}
