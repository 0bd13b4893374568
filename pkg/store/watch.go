package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/peterbourgon/diskv/v3"
)

// EventType describes the nature of a repository change notification.
type EventType int

const (
	// EventMenuChanged indicates the menu stored under Key was written or
	// erased.
	EventMenuChanged EventType = iota

	// EventMenusInvalidated signals that a change could not be attributed to
	// a single key and callers should reload everything they show.
	EventMenusInvalidated
)

func (t EventType) String() string {
	switch t {
	case EventMenuChanged:
		return "changed"
	case EventMenusInvalidated:
		return "invalidated"
	default:
		return "unknown"
	}
}

// Event is emitted by Repository.Watch when underlying storage changes.
type Event struct {
	Type EventType
	Key  string
}

// coalesceDelay is how long a burst of filesystem writes is collected before
// events are delivered.
const coalesceDelay = 100 * time.Millisecond

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel; events that do not fit its buffer are dropped. The channel
// is closed once ctx is done or the watcher fails.
func (r *repository) Watch(ctx context.Context) (<-chan Event, error) {
	if r.basePath == "" {
		return nil, errors.New("store: repository base path unknown")
	}
	menus := filepath.Join(r.basePath, menusDir)
	if err := os.MkdirAll(menus, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	for _, dir := range []string{r.basePath, menus} {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	w := &menuWatcher{
		repo:   r,
		fs:     fw,
		events: make(chan Event, 64),
	}
	w.pending = newCoalescer(coalesceDelay, w.send)
	go w.run(ctx)
	return w.events, nil
}

type menuWatcher struct {
	repo    *repository
	fs      *fsnotify.Watcher
	events  chan Event
	pending *coalescer

	mu     sync.Mutex
	closed bool
}

func (w *menuWatcher) run(ctx context.Context) {
	defer w.close()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.pending.add(Event{Type: EventMenusInvalidated})
		case evt, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev, ok := w.classify(evt); ok {
				w.pending.add(ev)
			}
		}
	}
}

// classify maps a filesystem event to a repository event. Writes inside the
// diskv temp directory are ignored.
func (w *menuWatcher) classify(evt fsnotify.Event) (Event, bool) {
	if w.repo.isTemp(evt.Name) {
		return Event{}, false
	}
	if key := w.repo.keyForPath(evt.Name); key != "" {
		return Event{Type: EventMenuChanged, Key: key}, true
	}
	return Event{Type: EventMenusInvalidated}, true
}

func (w *menuWatcher) send(ev Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.events <- ev:
	default:
	}
}

func (w *menuWatcher) close() {
	w.pending.stop()
	if err := w.fs.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
	}
	w.mu.Lock()
	w.closed = true
	close(w.events)
	w.mu.Unlock()
}

// keyForPath derives the menu key from a diskv file path.
func (r *repository) keyForPath(path string) string {
	rel, err := filepath.Rel(r.basePath, path)
	if err != nil {
		return ""
	}
	dir, file := filepath.Split(rel)
	if filepath.Clean(dir) != menusDir || file == "" {
		return ""
	}
	key, ok := fromDiskKey(pathToKeyTransform(&diskv.PathKey{Path: []string{menusDir}, FileName: file}))
	if !ok {
		return ""
	}
	return key
}

func (r *repository) isTemp(path string) bool {
	rel, err := filepath.Rel(r.basePath, path)
	if err != nil {
		return false
	}
	return rel == tmpDir || strings.HasPrefix(rel, tmpDir+string(os.PathSeparator))
}

// coalescer collects events for delay after the first one arrives and then
// delivers each distinct event once. Invalidations are delivered before
// per-key changes, keys in sorted order.
type coalescer struct {
	mu      sync.Mutex
	delay   time.Duration
	deliver func(Event)
	timer   *time.Timer
	reload  bool
	keys    map[string]struct{}
}

func newCoalescer(delay time.Duration, deliver func(Event)) *coalescer {
	return &coalescer{delay: delay, deliver: deliver, keys: map[string]struct{}{}}
}

func (c *coalescer) add(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ev.Type == EventMenusInvalidated {
		c.reload = true
	} else {
		c.keys[ev.Key] = struct{}{}
	}
	if c.timer == nil {
		c.timer = time.AfterFunc(c.delay, c.flush)
	}
}

func (c *coalescer) flush() {
	c.mu.Lock()
	reload, keys := c.reload, c.keys
	c.reload, c.keys, c.timer = false, map[string]struct{}{}, nil
	c.mu.Unlock()

	if reload {
		c.deliver(Event{Type: EventMenusInvalidated})
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)
	for _, k := range sorted {
		c.deliver(Event{Type: EventMenuChanged, Key: k})
	}
}

func (c *coalescer) stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
