package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func readEntries(t *testing.T, path string) []Entry {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	var entries []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("decode %q: %v", sc.Text(), err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestTraceWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trace.log")
	Configure(path)
	defer Configure("")
	SetTraceEnabled(true)
	defer SetTraceEnabled(false)

	Trace("app.add-mode", map[string]string{"menu": "main"})
	Trace("app.remove-menu-item", nil)
	if err := Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	entries := readEntries(t, path)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if e := entries[0]; e.Event != "app.add-mode" || e.Level != LevelTrace || e.Time.IsZero() {
		t.Fatalf("unexpected entry %+v", e)
	}
}

func TestTraceDisabledWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")
	Configure(path)
	defer Configure("")
	SetTraceEnabled(false)

	Trace("ignored", nil)
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no log file, got %v", err)
	}
}

func TestErrorAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "error.log")
	Configure(path)
	defer Configure("")

	Error(nil)
	Error(errors.New("boom"))
	_ = Close()
	Error(errors.New("again"))
	_ = Close()

	entries := readEntries(t, path)
	if len(entries) != 2 || entries[0].Error != "boom" || entries[1].Error != "again" {
		t.Fatalf("unexpected log contents %+v", entries)
	}
	if entries[0].Level != LevelError {
		t.Fatalf("expected error level, got %q", entries[0].Level)
	}
	if Path() != path {
		t.Fatalf("expected path %q, got %q", path, Path())
	}
}

type countingFile struct {
	io.Writer
	closed int
}

func (c *countingFile) Close() error {
	c.closed++
	return nil
}

func TestSinkOpensOncePerDestination(t *testing.T) {
	opened := map[string]int{}
	files := map[string]*countingFile{}
	s := &sink{
		path: "a.log",
		now:  std.now,
		open: func(path string) (io.WriteCloser, error) {
			opened[path]++
			f := &countingFile{Writer: io.Discard}
			files[path] = f
			return f, nil
		},
	}

	for i := 0; i < 3; i++ {
		s.write(Entry{Level: LevelTrace, Event: "x"})
	}
	if opened["a.log"] != 1 {
		t.Fatalf("expected one open, got %d", opened["a.log"])
	}

	s.mu.Lock()
	_ = s.closeLocked()
	s.path = "b.log"
	s.mu.Unlock()
	s.write(Entry{Level: LevelError, Event: "error"})

	if files["a.log"].closed != 1 || opened["b.log"] != 1 {
		t.Fatalf("expected a.log closed and b.log opened, got %+v %v", files["a.log"], opened)
	}
}

func TestOpenFailureIsReported(t *testing.T) {
	s := &sink{
		path: "x.log",
		now:  std.now,
		open: func(string) (io.WriteCloser, error) { return nil, errors.New("denied") },
	}
	s.write(Entry{Event: "lost"})
	if s.enc != nil {
		t.Fatalf("expected no encoder after a failed open")
	}
}
