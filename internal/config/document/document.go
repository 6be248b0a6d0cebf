// Package document provides the generic configuration tree that every
// settings source is normalized into before typed conversion.
//
// A Document is immutable once built. Its zero value is a Null document,
// which the conversion layer treats the same as a missing value.
package document

import (
	"fmt"
	"math"
	"sort"
)

// Kind identifies the runtime shape of a Document.
type Kind uint8

const (
	// KindNull is an explicit null (or an absent value).
	KindNull Kind = iota
	// KindBool is a boolean.
	KindBool
	// KindInt is an integral number that fits in int64.
	KindInt
	// KindFloat is any other number.
	KindFloat
	// KindString is a string.
	KindString
	// KindArray is an ordered sequence of documents.
	KindArray
	// KindObject maps unique string keys to documents.
	KindObject
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Document is a node in a parsed configuration tree.
type Document struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Document
	obj  map[string]Document
}

// Null returns a null document.
func Null() Document { return Document{} }

// NewBool returns a boolean document.
func NewBool(b bool) Document { return Document{kind: KindBool, b: b} }

// NewInt returns an integer document.
func NewInt(i int64) Document { return Document{kind: KindInt, i: i} }

// NewFloat returns a floating point document.
func NewFloat(f float64) Document { return Document{kind: KindFloat, f: f} }

// NewString returns a string document.
func NewString(s string) Document { return Document{kind: KindString, s: s} }

// NewArray returns an array document holding copies of items.
func NewArray(items ...Document) Document {
	arr := make([]Document, len(items))
	copy(arr, items)
	return Document{kind: KindArray, arr: arr}
}

// NewObject returns an object document holding a copy of fields.
func NewObject(fields map[string]Document) Document {
	obj := make(map[string]Document, len(fields))
	for k, v := range fields {
		obj[k] = v
	}
	return Document{kind: KindObject, obj: obj}
}

// Kind returns the document's shape.
func (d Document) Kind() Kind { return d.kind }

// IsNull reports whether the document is null.
func (d Document) IsNull() bool { return d.kind == KindNull }

// IsNumber reports whether the document is an integer or a float.
func (d Document) IsNumber() bool { return d.kind == KindInt || d.kind == KindFloat }

// IsIntegral reports whether the document holds a whole number, either as
// an integer or as a float without a fractional part.
func (d Document) IsIntegral() bool {
	switch d.kind {
	case KindInt:
		return true
	case KindFloat:
		return !math.IsInf(d.f, 0) && !math.IsNaN(d.f) && d.f == math.Trunc(d.f)
	default:
		return false
	}
}

// Bool returns the boolean value, or false for other kinds.
func (d Document) Bool() bool { return d.kind == KindBool && d.b }

// Int returns the value as an int64. Floats are truncated.
func (d Document) Int() int64 {
	switch d.kind {
	case KindInt:
		return d.i
	case KindFloat:
		return int64(d.f)
	default:
		return 0
	}
}

// Float returns the value as a float64.
func (d Document) Float() float64 {
	switch d.kind {
	case KindInt:
		return float64(d.i)
	case KindFloat:
		return d.f
	default:
		return 0
	}
}

// String returns the string value, or "" for other kinds.
func (d Document) String() string {
	if d.kind != KindString {
		return ""
	}
	return d.s
}

// Len returns the number of elements of an array or fields of an object.
func (d Document) Len() int {
	switch d.kind {
	case KindArray:
		return len(d.arr)
	case KindObject:
		return len(d.obj)
	default:
		return 0
	}
}

// Index returns the i-th element of an array, or Null when out of range.
func (d Document) Index(i int) Document {
	if d.kind != KindArray || i < 0 || i >= len(d.arr) {
		return Document{}
	}
	return d.arr[i]
}

// Items returns the elements of an array document.
func (d Document) Items() []Document {
	if d.kind != KindArray {
		return nil
	}
	out := make([]Document, len(d.arr))
	copy(out, d.arr)
	return out
}

// Lookup returns the field stored under key in an object document.
// The boolean is false when d is not an object or the key is absent;
// a key explicitly set to null is reported as present.
func (d Document) Lookup(key string) (Document, bool) {
	if d.kind != KindObject {
		return Document{}, false
	}
	v, ok := d.obj[key]
	return v, ok
}

// Keys returns the sorted keys of an object document.
func (d Document) Keys() []string {
	if d.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(d.obj))
	for k := range d.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value converts the document back into plain Go values: nil, bool, int64,
// float64, string, []any and map[string]any.
func (d Document) Value() any {
	switch d.kind {
	case KindBool:
		return d.b
	case KindInt:
		return d.i
	case KindFloat:
		return d.f
	case KindString:
		return d.s
	case KindArray:
		out := make([]any, len(d.arr))
		for i, v := range d.arr {
			out[i] = v.Value()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(d.obj))
		for k, v := range d.obj {
			out[k] = v.Value()
		}
		return out
	default:
		return nil
	}
}

// GoString renders the document for debugging output.
func (d Document) GoString() string {
	return fmt.Sprintf("document.%s(%v)", d.kind, d.Value())
}
