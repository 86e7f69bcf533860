package reqkit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Builder prepares outgoing requests from merged options and turns failed
// responses into RequestErrors. It never sends anything itself. A Builder is
// safe for concurrent use once constructed.
type Builder struct {
	defaults        Options
	headers         Headers
	baseURL         string
	maxErrorBody    int64
	decorators      []RequestDecorator
	metrics         *MetricsCollector
	debug           *DebugConfig
	logger          Logger
	requestIDHeader string
	validationError error
}

// New constructs a Builder using the provided functional options. A best
// effort validation is performed; call IsValid / ValidationError for errors.
func New(options ...Option) *Builder {
	builder := &Builder{
		defaults:        Options{},
		headers:         Headers{},
		baseURL:         "",
		maxErrorBody:    DefaultMaxErrorBody,
		decorators:      []RequestDecorator{},
		metrics:         nil,
		debug:           DefaultDebugConfig(),
		logger:          nil,
		requestIDHeader: DefaultRequestIDHeader,
	}

	for _, option := range options {
		option(builder)
	}

	if err := builder.ValidateConfiguration(); err != nil {
		builder.validationError = err
	}

	return builder
}

// NewRequest merges the builder defaults with overrides and builds the
// resulting *http.Request. Headers are merged case-insensitively across the
// builder, its defaults and every override, later sources winning. The query
// under OptQuery is validated, serialized and appended to the URL.
func (b *Builder) NewRequest(ctx context.Context, overrides ...Options) (*http.Request, error) {
	sources := make([]Options, 0, len(overrides)+1)
	sources = append(sources, b.defaults)
	sources = append(sources, overrides...)
	opts := Merge(sources...)

	headers, collisions, err := b.mergeRequestHeaders(overrides)
	if err != nil {
		return nil, err
	}

	method := http.MethodGet
	if m, ok := opts.Lookup(OptMethod); ok {
		s, isString := m.(string)
		if !isString || s == "" {
			return nil, &ClientError{Type: ErrorTypeRequest, Message: fmt.Sprintf("invalid method %v", m)}
		}
		method = strings.ToUpper(s)
	}

	target, err := b.resolveURL(opts)
	if err != nil {
		return nil, err
	}

	var fragments int
	if q, ok := opts.Lookup(OptQuery); ok {
		params, err := paramsFrom(q)
		if err != nil {
			return nil, err
		}
		if err := ValidateQuery(params); err != nil {
			return nil, err
		}
		if qs := StringifyQuery(params); qs != "" {
			if target.RawQuery == "" {
				target.RawQuery = qs
			} else {
				target.RawQuery += "&" + qs
			}
		}
		fragments = countQueryFragments(params)
	}

	body, err := requestBody(opts)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, &ClientError{Type: ErrorTypeRequest, Message: "cannot build request", Cause: err}
	}
	req.Header = headers.HTTPHeader()

	var requestID string
	if b.debugEnabled() && b.debug.RequestIDGen != nil {
		if v, exists := headers.Get(b.requestIDHeader); !exists || IsUndefined(v) || v == nil {
			requestID = b.debug.RequestIDGen()
			req.Header.Set(b.requestIDHeader, requestID)
		}
	}

	for _, decorate := range b.decorators {
		if decorate == nil {
			continue
		}
		if err := decorate(req); err != nil {
			return nil, &ClientError{Type: ErrorTypeRequest, Message: "request decorator failed", Cause: err}
		}
	}

	b.metrics.RecordRequestPrepared(method)
	b.metrics.RecordQueryParams(fragments)
	b.metrics.RecordHeaderCollisions(collisions)

	if b.debugEnabled() && b.debug.LogRequests && b.logger != nil {
		b.logger.Debug("Prepared request", "requestID", requestID, "method", method, "url", req.URL.String(), "headers", len(req.Header), "overriddenHeaders", collisions)
	}

	return req, nil
}

func (b *Builder) mergeRequestHeaders(overrides []Options) (Headers, int, error) {
	defaults, ok := headersFrom(b.defaults[OptHeaders])
	if !ok {
		return nil, 0, unsupportedHeaders(b.defaults[OptHeaders])
	}
	headers := MergeHeaders(b.headers, defaults)

	total := 0
	for _, o := range overrides {
		v, present := o.Lookup(OptHeaders)
		if !present {
			continue
		}
		h, ok := headersFrom(v)
		if !ok {
			return nil, 0, unsupportedHeaders(v)
		}
		if len(h) == 0 {
			continue
		}
		var n int
		headers, n = mergeHeaders(headers, h)
		total += n
	}
	return headers, total, nil
}

func unsupportedHeaders(v any) error {
	return &ClientError{Type: ErrorTypeRequest, Message: fmt.Sprintf("unsupported headers type %T", v)}
}

func (b *Builder) resolveURL(opts Options) (*url.URL, error) {
	raw := ""
	if v, ok := opts.Lookup(OptURL); ok {
		s, isString := v.(string)
		if !isString {
			return nil, &ClientError{Type: ErrorTypeRequest, Message: fmt.Sprintf("url must be a string, got %T", v)}
		}
		raw = s
	}
	if raw == "" && b.baseURL == "" {
		return nil, &ClientError{Type: ErrorTypeRequest, Message: "no url given"}
	}

	ref, err := url.Parse(raw)
	if err != nil {
		return nil, &ClientError{Type: ErrorTypeRequest, Message: "invalid url", Cause: err}
	}
	if b.baseURL == "" {
		return ref, nil
	}

	base, err := url.Parse(b.baseURL)
	if err != nil {
		return nil, &ClientError{Type: ErrorTypeValidation, Message: "invalid base url", Cause: err}
	}
	return base.ResolveReference(ref), nil
}

func requestBody(opts Options) (io.Reader, error) {
	v, ok := opts.Lookup(OptBody)
	if !ok {
		return nil, nil
	}

	switch body := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return bytes.NewReader(body), nil
	case string:
		return strings.NewReader(body), nil
	case io.Reader:
		return body, nil
	}
	return nil, &ClientError{
		Type:    ErrorTypeBody,
		Message: fmt.Sprintf("unsupported body type %T", v),
		Cause:   ErrInvalidBody,
	}
}

// CheckResponse returns nil for responses below 400. Otherwise it reads up to
// the configured limit of the body, puts the bytes back so the caller can
// still read the full body, and returns the RequestError built from them.
func (b *Builder) CheckResponse(opts Options, resp *http.Response) error {
	if resp == nil {
		return &ClientError{Type: ErrorTypeRequest, Message: "nil response"}
	}
	if resp.StatusCode < 400 {
		return nil
	}

	var body []byte
	if resp.Body != nil {
		var err error
		body, err = io.ReadAll(io.LimitReader(resp.Body, b.maxErrorBody))
		if err != nil && b.debugEnabled() && b.debug.LogErrors && b.logger != nil {
			b.logger.Warn("Reading error body failed", "statusCode", resp.StatusCode, "error", err.Error())
		}
		resp.Body = &replayBody{
			Reader: io.MultiReader(bytes.NewReader(body), resp.Body),
			Closer: resp.Body,
		}
	}

	return b.ParseJSONError(opts, Response{StatusCode: resp.StatusCode, Body: body})
}

type replayBody struct {
	io.Reader
	io.Closer
}

// ParseJSONError is the package level ParseJSONError with metrics and debug
// logging.
func (b *Builder) ParseJSONError(opts Options, resp Response) *RequestError {
	message, source := ExtractErrorMessage(resp.StatusCode, resp.Body)

	b.metrics.RecordRequestError(resp.StatusCode, source)

	if b.debugEnabled() && b.debug.LogErrors && b.logger != nil {
		b.logger.Debug("Request error extracted", "statusCode", resp.StatusCode, "source", string(source), "errorMessage", message)
	}

	return &RequestError{
		StatusCode: resp.StatusCode,
		Message:    message,
		Name:       RequestErrorName,
	}
}

// Once is the package level Once that also counts and logs suppressed
// duplicate calls.
func (b *Builder) Once(fn Callback) Callback {
	g := NewGuard(fn)
	return func(args ...any) {
		if g.Invoke(args...) {
			return
		}
		b.metrics.RecordCallbackSuppressed()
		if b.debugEnabled() && b.debug.LogCallbacks && b.logger != nil {
			b.logger.Debug("Duplicate callback suppressed", "args", len(args))
		}
	}
}

// Defaults returns a copy of the builder's default options.
func (b *Builder) Defaults() Options {
	return b.defaults.Clone()
}

// IsValid reports whether configuration validation passed at construction.
func (b *Builder) IsValid() bool {
	return b.validationError == nil
}

// ValidationError returns the configuration validation error, if any.
func (b *Builder) ValidationError() error {
	return b.validationError
}

func (b *Builder) debugEnabled() bool {
	return b.debug != nil && b.debug.Enabled
}
