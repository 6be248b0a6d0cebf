package document

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned by Parse for malformed input.
var ErrInvalidJSON = errors.New("invalid JSON")

// Parse decodes JSON text into a Document.
func Parse(data []byte) (Document, error) {
	if !gjson.ValidBytes(data) {
		return Document{}, ErrInvalidJSON
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

// MustParse is like Parse but panics on malformed input. Intended for
// literals in tests and embedded defaults.
func MustParse(s string) Document {
	d, err := Parse([]byte(s))
	if err != nil {
		panic(fmt.Sprintf("document: %v: %s", err, s))
	}
	return d
}

func fromResult(r gjson.Result) Document {
	switch r.Type {
	case gjson.False:
		return NewBool(false)
	case gjson.True:
		return NewBool(true)
	case gjson.Number:
		return fromNumber(r)
	case gjson.String:
		return NewString(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			results := r.Array()
			arr := make([]Document, len(results))
			for i, item := range results {
				arr[i] = fromResult(item)
			}
			return Document{kind: KindArray, arr: arr}
		}
		obj := make(map[string]Document)
		r.ForEach(func(key, value gjson.Result) bool {
			// Duplicate keys: the last one wins, as with most JSON readers.
			obj[key.Str] = fromResult(value)
			return true
		})
		return Document{kind: KindObject, obj: obj}
	default:
		return Document{}
	}
}

func fromNumber(r gjson.Result) Document {
	raw := r.Raw
	if !strings.ContainsAny(raw, ".eE") {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return NewInt(i)
		}
	}
	return NewFloat(r.Num)
}

// FromValue converts decoded Go values into a Document. It accepts the
// shapes produced by encoding/json, TOML and YAML decoders.
func FromValue(v any) (Document, error) {
	switch val := v.(type) {
	case nil:
		return Document{}, nil
	case Document:
		return val, nil
	case bool:
		return NewBool(val), nil
	case string:
		return NewString(val), nil
	case int:
		return NewInt(int64(val)), nil
	case int8:
		return NewInt(int64(val)), nil
	case int16:
		return NewInt(int64(val)), nil
	case int32:
		return NewInt(int64(val)), nil
	case int64:
		return NewInt(val), nil
	case uint:
		return fromUint(uint64(val)), nil
	case uint8:
		return NewInt(int64(val)), nil
	case uint16:
		return NewInt(int64(val)), nil
	case uint32:
		return NewInt(int64(val)), nil
	case uint64:
		return fromUint(val), nil
	case float32:
		return NewFloat(float64(val)), nil
	case float64:
		return NewFloat(val), nil
	case time.Duration:
		return NewString(val.String()), nil
	case time.Time:
		return NewString(val.Format(time.RFC3339Nano)), nil
	case []any:
		arr := make([]Document, len(val))
		for i, item := range val {
			d, err := FromValue(item)
			if err != nil {
				return Document{}, fmt.Errorf("[%d]: %w", i, err)
			}
			arr[i] = d
		}
		return Document{kind: KindArray, arr: arr}, nil
	case map[string]any:
		obj := make(map[string]Document, len(val))
		for k, item := range val {
			d, err := FromValue(item)
			if err != nil {
				return Document{}, fmt.Errorf("%s: %w", k, err)
			}
			obj[k] = d
		}
		return Document{kind: KindObject, obj: obj}, nil
	default:
		return fromReflect(reflect.ValueOf(v))
	}
}

func fromUint(u uint64) Document {
	if u > math.MaxInt64 {
		return NewFloat(float64(u))
	}
	return NewInt(int64(u))
}

// fromReflect handles typed slices and maps such as []string or
// map[string]int that generic decoders sometimes produce.
func fromReflect(rv reflect.Value) (Document, error) {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		arr := make([]Document, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			d, err := FromValue(rv.Index(i).Interface())
			if err != nil {
				return Document{}, fmt.Errorf("[%d]: %w", i, err)
			}
			arr[i] = d
		}
		return Document{kind: KindArray, arr: arr}, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Document{}, fmt.Errorf("unsupported map key type %s", rv.Type().Key())
		}
		obj := make(map[string]Document, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			d, err := FromValue(iter.Value().Interface())
			if err != nil {
				return Document{}, fmt.Errorf("%s: %w", iter.Key().String(), err)
			}
			obj[iter.Key().String()] = d
		}
		return Document{kind: KindObject, obj: obj}, nil
	default:
		return Document{}, fmt.Errorf("unsupported value type %T", rv.Interface())
	}
}
