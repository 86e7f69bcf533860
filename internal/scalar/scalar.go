// Package scalar renders the plain text form of query and header values.
package scalar

import (
	"fmt"
	"reflect"
	"strconv"
)

// Kind classifies a value for rendering.
type Kind int

const (
	KindNil Kind = iota
	KindString
	KindBool
	KindNumber
	KindList
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindList:
		return "list"
	default:
		return "other"
	}
}

// Classify reports the Kind of v. Named types are classified by their
// underlying kind, so `type Color string` is a KindString. Byte slices are
// strings, not lists.
func Classify(v any) Kind {
	if v == nil {
		return KindNil
	}

	switch v.(type) {
	case string, []byte:
		return KindString
	case bool:
		return KindBool
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64:
		return KindNumber
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return KindNumber
	case reflect.Slice:
		if rv.IsNil() {
			return KindNil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return KindString
		}
		return KindList
	case reflect.Array:
		return KindList
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return KindNil
		}
	}
	return KindOther
}

// Format returns the plain text form of a scalar: strings verbatim, booleans
// as true/false and numbers in shortest decimal form. Anything else falls back
// to its fmt default representation.
func Format(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes())
		}
	}
	return fmt.Sprint(v)
}

// Elements returns the elements of a KindList value in order. It returns nil
// for anything that is not a list.
func Elements(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	}

	if Classify(v) != KindList {
		return nil
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// IsFalse reports whether v is a boolean false, including named bool types.
func IsFalse(v any) bool {
	if b, ok := v.(bool); ok {
		return !b
	}
	if Classify(v) != KindBool {
		return false
	}
	return !reflect.ValueOf(v).Bool()
}
