package reqkit

import (
	"net/http"
)

// UndefinedValue is the type of Undefined.
type UndefinedValue struct{}

// Undefined marks a value as absent. It is the "no opinion" marker for
// Options, Params and Headers and is distinct from nil, false, 0 and "".
var Undefined = UndefinedValue{}

// IsUndefined reports whether v is the Undefined marker.
func IsUndefined(v any) bool {
	_, ok := v.(UndefinedValue)
	return ok
}

// Param is a single query parameter. Value is a scalar, a slice or array of
// scalars, or Undefined.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered query parameter mapping. Slice order is the order
// fragments are rendered in.
type Params []Param

// Options is a bag of request options merged with Merge.
type Options map[string]any

// Headers maps header names to values. Names are compared case-insensitively
// once normalized with MergeHeaders or NormalizeHeaders.
type Headers map[string]any

// Response is the part of an HTTP response ParseJSONError reads.
type Response struct {
	StatusCode int
	Body       []byte
}

// Callback is a completion callback guarded by Once.
type Callback func(args ...any)

// Option configures a Builder.
type Option func(*Builder)

// Well-known Options keys read by Builder.NewRequest.
const (
	OptMethod  = "method"
	OptURL     = "url"
	OptHeaders = "headers"
	OptQuery   = "query"
	OptBody    = "body"
)

// DefaultMaxErrorBody caps how much of a failed response body CheckResponse reads.
const DefaultMaxErrorBody int64 = 1 << 20

// DefaultRequestIDHeader is the header set on prepared requests when debug
// request IDs are enabled.
const DefaultRequestIDHeader = "x-request-id"

// RequestDecorator mutates a prepared request before it is returned.
type RequestDecorator func(req *http.Request) error
