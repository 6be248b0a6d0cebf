// Package notify delivers settings change notifications.
//
// After a reload the old and new effective settings are compared key by
// key; each difference becomes a Change delivered to the observers that
// subscribed to all changes or to that key.
package notify

import (
	"sort"
	"strings"
	"sync"

	"github.com/dshills/termconf/internal/config/document"
)

// ChangeType represents the type of settings change.
type ChangeType int

const (
	// ChangeAdd indicates a key that was not set before.
	ChangeAdd ChangeType = iota

	// ChangeModify indicates a key whose value changed.
	ChangeModify

	// ChangeRemove indicates a key that is no longer set.
	ChangeRemove

	// ChangeReload indicates the settings were reloaded. It is sent once
	// per successful reload, after the individual changes.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeAdd:
		return "add"
	case ChangeModify:
		return "modify"
	case ChangeRemove:
		return "remove"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change represents a settings change event.
type Change struct {
	// Path is the dot-separated path to the changed setting.
	// Empty for reload events.
	Path string

	// Type is the type of change.
	Type ChangeType

	// OldValue is the previous value; null for additions.
	OldValue document.Document

	// NewValue is the new value; null for removals.
	NewValue document.Document

	// Source identifies what caused the change, e.g. a file path.
	Source string
}

// Diff returns the changes going from old to new, sorted by path.
func Diff(old, new document.Document, source string) []Change {
	added, modified, removed := document.Diff(old, new)
	oldFlat := document.Flatten(old)
	newFlat := document.Flatten(new)

	changes := make([]Change, 0, len(added)+len(modified)+len(removed))
	for _, p := range added {
		changes = append(changes, Change{Path: p, Type: ChangeAdd, NewValue: newFlat[p], Source: source})
	}
	for _, p := range modified {
		changes = append(changes, Change{Path: p, Type: ChangeModify, OldValue: oldFlat[p], NewValue: newFlat[p], Source: source})
	}
	for _, p := range removed {
		changes = append(changes, Change{Path: p, Type: ChangeRemove, OldValue: oldFlat[p], Source: source})
	}

	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].Path < changes[j].Path
	})
	return changes
}

// Observer is called when settings change.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	path     string
	notifier *Notifier
}

// Path returns the subscribed path, or "" for all changes.
func (s *Subscription) Path() string {
	return s.path
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

type subscriber struct {
	id       uint64
	path     string // "" receives everything
	observer Observer
}

// Notifier manages settings change subscriptions.
type Notifier struct {
	mu sync.RWMutex

	// Subscribers in subscription order
	subscribers []subscriber

	nextID uint64

	// Whether to notify synchronously or asynchronously
	async  bool
	buffer chan Change
	done   chan struct{}
	wg     sync.WaitGroup

	closed bool
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithAsync enables asynchronous notification delivery.
func WithAsync(bufferSize int) Option {
	return func(n *Notifier) {
		if bufferSize > 0 {
			n.async = true
			n.buffer = make(chan Change, bufferSize)
		}
	}
}

// New creates a new Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		done: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.async {
		n.wg.Add(1)
		go n.processAsync()
	}

	return n
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.SubscribePath("", observer)
}

// SubscribePath registers an observer for changes to a specific path.
// The observer is called for exact matches, for children of path and for
// reload events. Subscribing to "keybindings" receives a change to
// "keybindings" as a whole.
func (n *Notifier) SubscribePath(path string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.subscribers = append(n.subscribers, subscriber{id: id, path: path, observer: observer})

	return &Subscription{id: id, path: path, notifier: n}
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subscribers)
}

// Notify sends a change notification to all relevant observers.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	n.mu.RUnlock()

	if n.async {
		select {
		case n.buffer <- change:
		case <-n.done:
		}
		return
	}

	n.deliverChange(change)
}

// NotifyReload is a convenience method for reload events.
func (n *Notifier) NotifyReload(source string) {
	n.Notify(Change{Type: ChangeReload, Source: source})
}

// Close shuts down the notifier, delivering any buffered changes first.
// It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()

	close(n.done)
	n.wg.Wait()
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, s := range n.subscribers {
		if s.id == id {
			n.subscribers = append(n.subscribers[:i], n.subscribers[i+1:]...)
			return
		}
	}
}

// deliverChange sends a change to all matching observers, in subscription
// order.
func (n *Notifier) deliverChange(change Change) {
	n.mu.RLock()
	var observers []Observer
	for _, s := range n.subscribers {
		if matches(s.path, change) {
			observers = append(observers, s.observer)
		}
	}
	n.mu.RUnlock()

	// Call observers outside the lock
	for _, obs := range observers {
		obs(change)
	}
}

func matches(path string, change Change) bool {
	if path == "" || change.Type == ChangeReload {
		return true
	}
	return change.Path == path || isParentPath(path, change.Path)
}

// processAsync handles asynchronous notification delivery.
func (n *Notifier) processAsync() {
	defer n.wg.Done()

	for {
		select {
		case change := <-n.buffer:
			n.deliverChange(change)
		case <-n.done:
			// Drain remaining buffered changes
			for {
				select {
				case change := <-n.buffer:
					n.deliverChange(change)
				default:
					return
				}
			}
		}
	}
}

// isParentPath checks if parent is a parent path of child,
// e.g. "keybindings" is a parent of "keybindings.0".
func isParentPath(parent, child string) bool {
	return strings.HasPrefix(child, parent+".")
}

// Batch collects changes and delivers them as a group.
type Batch struct {
	notifier *Notifier
	changes  []Change
	mu       sync.Mutex
}

// NewBatch creates a new batch for collecting changes.
func (n *Notifier) NewBatch() *Batch {
	return &Batch{notifier: n}
}

// Add adds changes to the batch.
func (b *Batch) Add(changes ...Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.changes = append(b.changes, changes...)
}

// Commit sends all batched changes to observers.
func (b *Batch) Commit() {
	b.mu.Lock()
	changes := b.changes
	b.changes = nil
	b.mu.Unlock()

	for _, change := range changes {
		b.notifier.Notify(change)
	}
}

// Discard clears the batch without sending notifications.
func (b *Batch) Discard() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.changes = nil
}

// Len returns the number of pending changes.
func (b *Batch) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.changes)
}
