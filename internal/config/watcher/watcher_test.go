package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func newWatcher(t *testing.T, opts ...Option) *Watcher {
	t.Helper()
	w, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

// collector records events delivered to a handler.
type collector struct {
	mu     sync.Mutex
	events []Event
	notify chan struct{}
}

func newCollector() *collector {
	return &collector{notify: make(chan struct{}, 100)}
}

func (c *collector) handle(e Event) {
	c.mu.Lock()
	c.events = append(c.events, e)
	c.mu.Unlock()
	c.notify <- struct{}{}
}

func (c *collector) wait(t *testing.T) {
	t.Helper()
	select {
	case <-c.notify:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func (c *collector) snapshot() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

func TestNew_WithOptions(t *testing.T) {
	w := newWatcher(t)
	if w.debounce != 100*time.Millisecond {
		t.Errorf("default debounce = %v, want 100ms", w.debounce)
	}

	w = newWatcher(t, WithDebounce(50*time.Millisecond))
	if w.debounce != 50*time.Millisecond {
		t.Errorf("debounce = %v, want 50ms", w.debounce)
	}
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestWatcher_WatchUnwatch(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")

	w := newWatcher(t)
	if err := w.Watch(a); err != nil {
		t.Fatalf("Watch(a) error = %v", err)
	}
	if err := w.Watch(b); err != nil {
		t.Fatalf("Watch(b) error = %v", err)
	}
	if err := w.Watch(a); err != nil {
		t.Fatalf("second Watch(a) error = %v", err)
	}

	files := w.WatchedFiles()
	if len(files) != 2 || files[0] != a || files[1] != b {
		t.Errorf("WatchedFiles() = %v", files)
	}
	if w.dirs[dir] != 2 {
		t.Errorf("dir refcount = %d, want 2", w.dirs[dir])
	}

	if err := w.Unwatch(a); err != nil {
		t.Fatalf("Unwatch(a) error = %v", err)
	}
	if err := w.Unwatch(b); err != nil {
		t.Fatalf("Unwatch(b) error = %v", err)
	}
	if len(w.WatchedFiles()) != 0 || len(w.dirs) != 0 {
		t.Error("watcher should be empty after unwatching everything")
	}
}

func TestWatcher_WatchMissingDir(t *testing.T) {
	w := newWatcher(t)
	if err := w.Watch(filepath.Join(t.TempDir(), "nope", "settings.json")); err == nil {
		t.Error("Watch should fail when the directory does not exist")
	}
}

func TestWatcher_DetectsCreateAndWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	other := filepath.Join(dir, "other.json")

	w := newWatcher(t, WithDebounce(0))
	c := newCollector()
	w.OnChange(c.handle)
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	w.Start()
	if !w.IsRunning() {
		t.Fatal("watcher should be running")
	}

	if err := os.WriteFile(other, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	c.wait(t)

	for _, e := range c.snapshot() {
		if e.Path != path {
			t.Errorf("got event for unwatched file %s", e.Path)
		}
	}
	if first := c.snapshot()[0]; first.Op != OpCreate {
		t.Errorf("first event = %v, want create", first.Op)
	}

	w.Stop()
	if w.IsRunning() {
		t.Error("watcher should be stopped")
	}
}

func TestWatcher_Debounce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := newWatcher(t, WithDebounce(100*time.Millisecond))
	c := newCollector()
	w.OnChange(c.handle)
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	w.Start()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte(`{"initialRows": 1}`), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	c.wait(t)
	time.Sleep(300 * time.Millisecond)

	events := c.snapshot()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1 coalesced event", len(events))
	}
	if events[0].Op != OpWrite {
		t.Errorf("Op = %v, want write", events[0].Op)
	}
}

func TestWatcher_QueueCoalescing(t *testing.T) {
	w := newWatcher(t)
	now := time.Now()

	w.queueEvent(Event{Path: "/a", Op: OpCreate, Time: now})
	w.queueEvent(Event{Path: "/a", Op: OpWrite, Time: now})
	w.queueEvent(Event{Path: "/b", Op: OpWrite, Time: now})
	w.queueEvent(Event{Path: "/b", Op: OpRemove, Time: now})
	w.queueEvent(Event{Path: "/c", Op: OpWrite, Time: now})
	w.queueEvent(Event{Path: "/c", Op: OpWrite, Time: now})

	want := map[string]Operation{"/a": OpCreate, "/b": OpRemove, "/c": OpWrite}
	for path, op := range want {
		if got := w.pendingFiles[path].Op; got != op {
			t.Errorf("%s: Op = %v, want %v", path, got, op)
		}
	}
}

func TestWatcher_HandlerPanic(t *testing.T) {
	w := newWatcher(t)
	c := newCollector()
	w.OnChange(func(Event) { panic("boom") })
	w.OnChange(c.handle)

	w.emitEvent(Event{Path: "/a", Op: OpWrite})
	if len(c.snapshot()) != 1 {
		t.Error("a panicking handler should not stop later handlers")
	}
}
