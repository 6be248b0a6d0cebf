// Package convert maps generic configuration documents onto typed values.
//
// Every destination type has a Rule that recognizes which document shapes
// it accepts and how to turn them into a value. The Get* helpers drive the
// rules and implement the layering contract: a missing key leaves the
// destination untouched, a failed conversion leaves it untouched and
// reports a KeyedError, and a successful conversion replaces it.
package convert

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/termconf/internal/config/document"
)

// Rule converts documents into values of type T.
type Rule[T any] interface {
	// CanConvert reports whether the document's shape is acceptable.
	CanConvert(d document.Document) bool
	// FromDocument converts an acceptable document.
	FromDocument(d document.Document) (T, error)
}

// RuleFunc adapts a pair of functions into a Rule.
type RuleFunc[T any] struct {
	Accepts func(d document.Document) bool
	Convert func(d document.Document) (T, error)
}

// CanConvert implements Rule.
func (r RuleFunc[T]) CanConvert(d document.Document) bool { return r.Accepts(d) }

// FromDocument implements Rule.
func (r RuleFunc[T]) FromDocument(d document.Document) (T, error) { return r.Convert(d) }

// Built-in rules.
var (
	String  Rule[string]         = stringRule{}
	Bool    Rule[bool]           = boolRule{}
	Int     Rule[int]            = intRule{}
	Uint    Rule[uint]           = uintRule{}
	Float32 Rule[float32]        = float32Rule{}
	Float64 Rule[float64]        = float64Rule{}
	GUID    Rule[uuid.UUID]      = guidRule{}
	Color   Rule[colorful.Color] = colorRule{}
)

type stringRule struct{}

func (stringRule) CanConvert(d document.Document) bool { return d.Kind() == document.KindString }

func (stringRule) FromDocument(d document.Document) (string, error) { return d.String(), nil }

type boolRule struct{}

func (boolRule) CanConvert(d document.Document) bool { return d.Kind() == document.KindBool }

func (boolRule) FromDocument(d document.Document) (bool, error) { return d.Bool(), nil }

// intRule accepts whole numbers in the 32-bit signed range, including
// floats without a fractional part.
type intRule struct{}

func (intRule) CanConvert(d document.Document) bool {
	if !d.IsIntegral() {
		return false
	}
	f := d.Float()
	return f >= math.MinInt32 && f <= math.MaxInt32
}

func (intRule) FromDocument(d document.Document) (int, error) { return int(d.Int()), nil }

type uintRule struct{}

func (uintRule) CanConvert(d document.Document) bool {
	if !d.IsIntegral() {
		return false
	}
	f := d.Float()
	return f >= 0 && f <= math.MaxUint32
}

func (uintRule) FromDocument(d document.Document) (uint, error) { return uint(d.Int()), nil }

type float32Rule struct{}

func (float32Rule) CanConvert(d document.Document) bool { return d.IsNumber() }

func (float32Rule) FromDocument(d document.Document) (float32, error) {
	return float32(d.Float()), nil
}

type float64Rule struct{}

func (float64Rule) CanConvert(d document.Document) bool { return d.IsNumber() }

func (float64Rule) FromDocument(d document.Document) (float64, error) { return d.Float(), nil }

// guidRule parses the canonical form, with or without braces.
type guidRule struct{}

func (guidRule) CanConvert(d document.Document) bool { return d.Kind() == document.KindString }

func (guidRule) FromDocument(d document.Document) (uuid.UUID, error) {
	id, err := uuid.Parse(d.String())
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid GUID %q: %w", d.String(), err)
	}
	return id, nil
}

// colorRule parses "#RGB" and "#RRGGBB".
type colorRule struct{}

func (colorRule) CanConvert(d document.Document) bool { return d.Kind() == document.KindString }

func (colorRule) FromDocument(d document.Document) (colorful.Color, error) {
	c, err := colorful.Hex(d.String())
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q: %w", d.String(), err)
	}
	return c, nil
}

// Array returns a rule for arrays whose elements all convert with elem.
// Element failures are reported with their index.
func Array[T any](elem Rule[T]) Rule[[]T] {
	return RuleFunc[[]T]{
		Accepts: func(d document.Document) bool { return d.Kind() == document.KindArray },
		Convert: func(d document.Document) ([]T, error) {
			items := d.Items()
			out := make([]T, 0, len(items))
			for i, item := range items {
				if !elem.CanConvert(item) {
					return nil, fmt.Errorf("[%d]: %w", i, mismatch(fmt.Sprintf("%T", *new(T)), item))
				}
				v, err := elem.FromDocument(item)
				if err != nil {
					return nil, fmt.Errorf("[%d]: %w", i, err)
				}
				out = append(out, v)
			}
			return out, nil
		},
	}
}
