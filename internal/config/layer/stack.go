package layer

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dshills/termconf/internal/config/document"
)

// Layerer is anything settings documents can be layered onto.
type Layerer interface {
	LayerJSON(doc document.Document) error
}

// Stack holds layers sorted by priority.
type Stack struct {
	mu     sync.RWMutex
	layers []*Layer // ascending priority
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Add adds a layer, replacing any existing layer with the same name.
func (s *Stack) Add(l *Layer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(l.Name); i >= 0 {
		s.layers[i] = l
	} else {
		s.layers = append(s.layers, l)
	}
	// Stable so that equal priorities keep insertion order.
	sort.SliceStable(s.layers, func(i, j int) bool {
		return s.layers[i].Priority < s.layers[j].Priority
	})
}

// Remove removes a layer by name.
// Returns true if the layer was found and removed.
func (s *Stack) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(name)
	if i < 0 {
		return false
	}
	s.layers = append(s.layers[:i], s.layers[i+1:]...)
	return true
}

// Layer returns a layer by name, or nil.
func (s *Stack) Layer(name string) *Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.index(name); i >= 0 {
		return s.layers[i]
	}
	return nil
}

// Layers returns a copy of all layers sorted by ascending priority.
func (s *Stack) Layers() []*Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

// Len returns the number of layers.
func (s *Stack) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.layers)
}

// Apply layers every document onto dst, lowest priority first. A layer
// that fails does not stop the ones above it; the failures are returned
// joined, each prefixed with its layer name.
func (s *Stack) Apply(dst Layerer) error {
	var errs []error
	for _, l := range s.Layers() {
		if err := dst.LayerJSON(l.Doc); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", l.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Get returns the value of a dot-separated path from the highest priority
// layer that sets it, along with that layer.
func (s *Stack) Get(path string) (document.Document, *Layer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.layers) - 1; i >= 0; i-- {
		l := s.layers[i]
		if v, ok := lookupPath(l.Doc, path); ok {
			return v, l, true
		}
	}
	return document.Null(), nil, false
}

// WhichLayer returns the name of the layer that provides a value.
func (s *Stack) WhichLayer(path string) string {
	_, l, found := s.Get(path)
	if !found {
		return ""
	}
	return l.Name
}

// Merged returns all layers merged into one document.
func (s *Stack) Merged() document.Document {
	merged := document.NewObject(nil)
	for _, l := range s.Layers() {
		merged = document.Merge(merged, l.Doc)
	}
	return merged
}

// index finds a layer by name (must be called with lock held).
func (s *Stack) index(name string) int {
	for i, l := range s.layers {
		if l.Name == name {
			return i
		}
	}
	return -1
}

// lookupPath walks a dot-separated path through nested objects. Explicit
// nulls count as unset, so lower layers show through them.
func lookupPath(doc document.Document, path string) (document.Document, bool) {
	current := doc
	for _, part := range strings.Split(path, ".") {
		next, ok := current.Lookup(part)
		if !ok {
			return document.Null(), false
		}
		current = next
	}
	if current.IsNull() {
		return document.Null(), false
	}
	return current, true
}
