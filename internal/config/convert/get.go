package convert

import (
	"errors"
	"fmt"

	"github.com/dshills/termconf/internal/config/document"
)

// GetValue converts d into target using rule.
//
// A null document reports false and leaves target unmodified. A document
// the rule cannot accept fails with a *TypeMismatchError. target is only
// assigned after a successful conversion.
func GetValue[T any](d document.Document, target *T, rule Rule[T]) (bool, error) {
	if d.IsNull() {
		return false, nil
	}
	if !rule.CanConvert(d) {
		return false, mismatch(fmt.Sprintf("%T", *target), d)
	}
	v, err := rule.FromDocument(d)
	if err != nil {
		return false, err
	}
	*target = v
	return true, nil
}

// GetOptionalValue converts d into an Optional target.
//
// Unlike GetValue, an explicit null is meaningful here: it clears target
// and reports true.
func GetOptionalValue[T any](d document.Document, target *Optional[T], rule Rule[T]) (bool, error) {
	if d.IsNull() {
		*target = None[T]()
		return true, nil
	}
	var local T
	ok, err := GetValue(d, &local, rule)
	if err != nil || !ok {
		return false, err
	}
	*target = Some(local)
	return true, nil
}

// GetValueForKey converts obj[key] into target. A missing key reports
// false. Conversion failures are wrapped in a *KeyedError naming key.
func GetValueForKey[T any](obj document.Document, key string, target *T, rule Rule[T]) (bool, error) {
	found, ok := obj.Lookup(key)
	if !ok {
		return false, nil
	}
	changed, err := GetValue(found, target, rule)
	if err != nil {
		return false, &KeyedError{Key: key, Err: err}
	}
	return changed, nil
}

// GetOptionalValueForKey is GetValueForKey for Optional targets. A key
// explicitly set to null clears target; a missing key leaves it alone.
func GetOptionalValueForKey[T any](obj document.Document, key string, target *Optional[T], rule Rule[T]) (bool, error) {
	found, ok := obj.Lookup(key)
	if !ok {
		return false, nil
	}
	changed, err := GetOptionalValue(found, target, rule)
	if err != nil {
		return false, &KeyedError{Key: key, Err: err}
	}
	return changed, nil
}

// GetRequiredValueForKey is GetValueForKey for fields without a sensible
// default. A missing (or null) key fails with ErrRequiredKeyMissing.
func GetRequiredValueForKey[T any](obj document.Document, key string, target *T, rule Rule[T]) error {
	ok, err := GetValueForKey(obj, key, target, rule)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrRequiredKeyMissing, key)
	}
	return nil
}

// Field binds a key to a destination for GetValuesForKeys.
type Field interface {
	// Key returns the object key read by this field.
	Key() string
	// Layer applies obj[Key()] to the destination.
	Layer(obj document.Document) (bool, error)
}

type field[T any] struct {
	key    string
	target *T
	rule   Rule[T]
}

func (f field[T]) Key() string { return f.key }

func (f field[T]) Layer(obj document.Document) (bool, error) {
	return GetValueForKey(obj, f.key, f.target, f.rule)
}

type optionalField[T any] struct {
	key    string
	target *Optional[T]
	rule   Rule[T]
}

func (f optionalField[T]) Key() string { return f.key }

func (f optionalField[T]) Layer(obj document.Document) (bool, error) {
	return GetOptionalValueForKey(obj, f.key, f.target, f.rule)
}

// Bind returns a Field reading key into target with rule.
func Bind[T any](key string, target *T, rule Rule[T]) Field {
	return field[T]{key: key, target: target, rule: rule}
}

// BindOptional returns a Field reading key into an Optional target.
func BindOptional[T any](key string, target *Optional[T], rule Rule[T]) Field {
	return optionalField[T]{key: key, target: target, rule: rule}
}

// GetValuesForKeys layers every field from obj in order. A failing field
// does not stop the others; all failures are returned joined.
func GetValuesForKeys(obj document.Document, fields ...Field) error {
	var errs []error
	for _, f := range fields {
		if _, err := f.Layer(obj); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
