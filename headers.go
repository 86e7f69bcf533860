package reqkit

import (
	"net/http"
	"sort"
	"strings"

	"github.com/ambiyansyah-risyal/reqkit/internal/scalar"
)

// MergeHeaders lowercases every header name in base and overrides and merges
// them, overrides winning on collision. Values are passed through unchanged.
// Neither input is modified.
func MergeHeaders(base, overrides Headers) Headers {
	merged, _ := mergeHeaders(base, overrides)
	return merged
}

// mergeHeaders also reports how many override names replaced a base name.
func mergeHeaders(base, overrides Headers) (Headers, int) {
	merged := make(Headers, len(base)+len(overrides))
	writeLowercased(merged, base)

	seen := make(map[string]struct{}, len(overrides))
	collisions := 0
	for k := range overrides {
		name := strings.ToLower(k)
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if _, exists := merged[name]; exists {
			collisions++
		}
	}
	writeLowercased(merged, overrides)
	return merged, collisions
}

// writeLowercased copies h into dst under lowercased names. Names are visited
// in sorted order so that two spellings of one header inside h resolve the
// same way on every run.
func writeLowercased(dst, h Headers) {
	for _, k := range sortedHeaderNames(h) {
		dst[strings.ToLower(k)] = h[k]
	}
}

func sortedHeaderNames(h Headers) []string {
	names := make([]string, 0, len(h))
	for k := range h {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (h Headers) lookupFold(name string) (any, bool) {
	for k, v := range h {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

// NormalizeHeaders returns a copy of h with lowercased names.
func NormalizeHeaders(h Headers) Headers {
	return MergeHeaders(nil, h)
}

// Get returns the value for name regardless of its casing in h.
func (h Headers) Get(name string) (any, bool) {
	if v, ok := h[strings.ToLower(name)]; ok {
		return v, true
	}
	return h.lookupFold(name)
}

// HTTPHeader converts h to net/http form. Scalars become a single value and
// lists one value per element; Undefined and nil entries are dropped.
func (h Headers) HTTPHeader() http.Header {
	out := make(http.Header, len(h))
	for _, k := range sortedHeaderNames(h) {
		v := h[k]
		if IsUndefined(v) {
			continue
		}
		switch scalar.Classify(v) {
		case scalar.KindNil:
			continue
		case scalar.KindList:
			for _, elem := range scalar.Elements(v) {
				if IsUndefined(elem) || scalar.Classify(elem) == scalar.KindNil {
					continue
				}
				out.Add(k, scalar.Format(elem))
			}
		default:
			out.Add(k, scalar.Format(v))
		}
	}
	return out
}

// HeadersFromHTTP converts an http.Header into lowercased Headers holding
// []string values.
func HeadersFromHTTP(h http.Header) Headers {
	out := make(Headers, len(h))
	for k, values := range h {
		name := strings.ToLower(k)
		existing, _ := out[name].([]string)
		out[name] = append(existing, values...)
	}
	return out
}

// headersFrom accepts the shapes Builder.NewRequest allows under OptHeaders.
// It reports false for any other type; nil is accepted as no headers.
func headersFrom(v any) (Headers, bool) {
	switch t := v.(type) {
	case nil:
		return nil, true
	case Headers:
		return t, true
	case map[string]any:
		return Headers(t), true
	case map[string]string:
		h := make(Headers, len(t))
		for k, s := range t {
			h[k] = s
		}
		return h, true
	case map[string][]string:
		h := make(Headers, len(t))
		for k, values := range t {
			h[k] = values
		}
		return h, true
	case http.Header:
		return HeadersFromHTTP(t), true
	}
	return nil, false
}
