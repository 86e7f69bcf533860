package reqkit

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/google/go-querystring/query"

	"github.com/ambiyansyah-risyal/reqkit/internal/scalar"
)

// StringifyQuery renders params as a key=value&key=value query string in
// slice order. Slices repeat the key once per element. Undefined, nil and
// boolean false are omitted; 0 and "" are rendered. Values are not escaped.
//
//	StringifyQuery(Params{{"foo", []string{"x"}}, {"bar", []string{"y", "z"}}})
//	// foo=x&bar=y&bar=z
func StringifyQuery(params Params) string {
	var b strings.Builder
	for _, p := range params {
		writeParam(&b, p.Key, p.Value)
	}
	return b.String()
}

func writeParam(b *strings.Builder, key string, value any) {
	if omitQueryValue(value) {
		return
	}
	if scalar.Classify(value) == scalar.KindList {
		for _, elem := range scalar.Elements(value) {
			if omitQueryValue(elem) {
				continue
			}
			writeFragment(b, key, elem)
		}
		return
	}
	writeFragment(b, key, value)
}

func writeFragment(b *strings.Builder, key string, value any) {
	if b.Len() > 0 {
		b.WriteByte('&')
	}
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(scalar.Format(value))
}

// omitQueryValue reports whether a value contributes no fragment at all.
func omitQueryValue(v any) bool {
	if IsUndefined(v) {
		return true
	}
	switch scalar.Classify(v) {
	case scalar.KindNil:
		return true
	case scalar.KindBool:
		return scalar.IsFalse(v)
	}
	return false
}

// countQueryFragments returns how many fragments StringifyQuery renders.
func countQueryFragments(params Params) int {
	n := 0
	for _, p := range params {
		if omitQueryValue(p.Value) {
			continue
		}
		if scalar.Classify(p.Value) != scalar.KindList {
			n++
			continue
		}
		for _, elem := range scalar.Elements(p.Value) {
			if !omitQueryValue(elem) {
				n++
			}
		}
	}
	return n
}

// ValidateQuery returns an error naming the first parameter whose value is
// not a scalar, a flat list of scalars, nil or Undefined. StringifyQuery
// itself never fails; call this first to reject such input instead.
func ValidateQuery(params Params) error {
	for _, p := range params {
		if IsUndefined(p.Value) {
			continue
		}
		switch scalar.Classify(p.Value) {
		case scalar.KindOther:
			return queryError(p.Key, p.Value)
		case scalar.KindList:
			for _, elem := range scalar.Elements(p.Value) {
				if IsUndefined(elem) {
					continue
				}
				switch scalar.Classify(elem) {
				case scalar.KindList, scalar.KindOther:
					return queryError(p.Key, elem)
				}
			}
		}
	}
	return nil
}

func queryError(key string, value any) error {
	return &ClientError{
		Type:    ErrorTypeQuery,
		Message: fmt.Sprintf("parameter %q has unsupported value of type %T", key, value),
		Cause:   ErrUnsupportedQueryValue,
	}
}

// Add appends a parameter and returns the extended slice.
func (p Params) Add(key string, value any) Params {
	return append(p, Param{Key: key, Value: value})
}

// Get returns the value of the first parameter named key.
func (p Params) Get(key string) (any, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return nil, false
}

// ParamsFromMap converts a map to Params. Go maps carry no insertion order,
// so keys are sorted.
func ParamsFromMap(m map[string]any) Params {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	params := make(Params, 0, len(keys))
	for _, k := range keys {
		params = append(params, Param{Key: k, Value: m[k]})
	}
	return params
}

// ParamsFromValues converts url.Values to Params with sorted keys.
func ParamsFromValues(v url.Values) Params {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	params := make(Params, 0, len(keys))
	for _, k := range keys {
		values := append([]string(nil), v[k]...)
		params = append(params, Param{Key: k, Value: values})
	}
	return params
}

// ParamsFromStruct encodes a struct tagged with `url:"..."` into Params.
func ParamsFromStruct(v any) (Params, error) {
	values, err := query.Values(v)
	if err != nil {
		return nil, &ClientError{
			Type:    ErrorTypeQuery,
			Message: "cannot encode query struct",
			Cause:   err,
		}
	}
	return ParamsFromValues(values), nil
}

// paramsFrom accepts the shapes Builder.NewRequest allows under OptQuery.
func paramsFrom(v any) (Params, error) {
	switch t := v.(type) {
	case nil, UndefinedValue:
		return nil, nil
	case Params:
		return t, nil
	case []Param:
		return Params(t), nil
	case map[string]any:
		return ParamsFromMap(t), nil
	case url.Values:
		return ParamsFromValues(t), nil
	case map[string][]string:
		return ParamsFromValues(url.Values(t)), nil
	case map[string]string:
		m := make(map[string]any, len(t))
		for k, s := range t {
			m[k] = s
		}
		return ParamsFromMap(m), nil
	}
	return ParamsFromStruct(v)
}
