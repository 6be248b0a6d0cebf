package convert

import "github.com/dshills/termconf/internal/config/document"

// EnumPair associates a configuration literal with a value.
type EnumPair[T comparable] struct {
	Name  string
	Value T
}

// Pair is shorthand for building an EnumPair.
func Pair[T comparable](name string, value T) EnumPair[T] {
	return EnumPair[T]{Name: name, Value: value}
}

// EnumMapping converts string documents to values through an ordered table
// of literals. The first pair is the default: a string that matches no
// literal converts to it instead of failing.
type EnumMapping[T comparable] struct {
	pairs []EnumPair[T]
}

// NewEnumMapping builds a mapping whose default is def.
func NewEnumMapping[T comparable](def EnumPair[T], rest ...EnumPair[T]) *EnumMapping[T] {
	pairs := make([]EnumPair[T], 0, len(rest)+1)
	pairs = append(pairs, def)
	pairs = append(pairs, rest...)
	return &EnumMapping[T]{pairs: pairs}
}

// CanConvert implements Rule. Only strings are accepted.
func (m *EnumMapping[T]) CanConvert(d document.Document) bool {
	return d.Kind() == document.KindString
}

// FromDocument implements Rule. Matching is exact and case-sensitive;
// the first matching pair wins.
func (m *EnumMapping[T]) FromDocument(d document.Document) (T, error) {
	if v, ok := m.Lookup(d.String()); ok {
		return v, nil
	}
	return m.Default(), nil
}

// Lookup returns the value for name without falling back to the default.
func (m *EnumMapping[T]) Lookup(name string) (T, bool) {
	for _, p := range m.pairs {
		if p.Name == name {
			return p.Value, true
		}
	}
	var zero T
	return zero, false
}

// Default returns the value of the first pair.
func (m *EnumMapping[T]) Default() T {
	return m.pairs[0].Value
}

// Name returns the first literal mapped to v.
func (m *EnumMapping[T]) Name(v T) (string, bool) {
	for _, p := range m.pairs {
		if p.Value == v {
			return p.Name, true
		}
	}
	return "", false
}

// Names returns the literals in declaration order.
func (m *EnumMapping[T]) Names() []string {
	names := make([]string, len(m.pairs))
	for i, p := range m.pairs {
		names[i] = p.Name
	}
	return names
}
