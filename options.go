package reqkit

import (
	"fmt"
	"net/url"
	"strings"
)

// WithDefaults sets the options every request starts from. It can be given
// more than once; later defaults are merged over earlier ones.
func WithDefaults(defaults Options) Option {
	return func(b *Builder) {
		b.defaults = Merge(b.defaults, defaults)
	}
}

// WithHeaders sets headers sent with every request. Names are normalized.
func WithHeaders(headers Headers) Option {
	return func(b *Builder) {
		b.headers = MergeHeaders(b.headers, headers)
	}
}

// WithBaseURL resolves every request URL against base.
func WithBaseURL(base string) Option {
	return func(b *Builder) {
		b.baseURL = base
	}
}

// WithMaxErrorBody limits how many bytes CheckResponse reads from a failed
// response body.
func WithMaxErrorBody(n int64) Option {
	return func(b *Builder) {
		b.maxErrorBody = n
	}
}

// WithDecorators adds functions that adjust every prepared request, in order.
func WithDecorators(decorators ...RequestDecorator) Option {
	return func(b *Builder) {
		b.decorators = append(b.decorators, decorators...)
	}
}

// WithMetrics enables Prometheus metrics collection
func WithMetrics() Option {
	return func(b *Builder) {
		b.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(b *Builder) {
		b.metrics = collector
	}
}

// WithDebug enables debug logging with default configuration
func WithDebug() Option {
	return func(b *Builder) {
		if b.debug == nil {
			b.debug = DefaultDebugConfig()
		}
		b.debug.Enabled = true
	}
}

// WithDebugConfig sets custom debug configuration
func WithDebugConfig(config *DebugConfig) Option {
	return func(b *Builder) {
		b.debug = config
	}
}

// WithLogger sets a custom logger for debug output
func WithLogger(logger Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithSimpleLogger enables debug logging with a simple console logger
func WithSimpleLogger() Option {
	return func(b *Builder) {
		if b.debug == nil {
			b.debug = DefaultDebugConfig()
		}
		b.debug.Enabled = true
		b.logger = NewSimpleLogger()
	}
}

// WithRequestIDGenerator sets a custom function for generating request IDs
func WithRequestIDGenerator(gen func() string) Option {
	return func(b *Builder) {
		if b.debug == nil {
			b.debug = DefaultDebugConfig()
		}
		b.debug.RequestIDGen = gen
	}
}

// WithRequestIDHeader changes the header that carries generated request IDs.
func WithRequestIDHeader(name string) Option {
	return func(b *Builder) {
		b.requestIDHeader = strings.ToLower(name)
	}
}

// ValidateConfiguration validates the builder configuration and returns an error if invalid
func (b *Builder) ValidateConfiguration() error {
	var errors []string

	errors = append(errors, b.validateDefaults()...)
	errors = append(errors, b.validateBaseURL()...)
	errors = append(errors, b.validateErrorBody()...)
	errors = append(errors, b.validateDebugConfig()...)
	errors = append(errors, b.validateDecorators()...)

	if len(errors) > 0 {
		return &ClientError{
			Type:    ErrorTypeValidation,
			Message: "configuration validation failed",
			Cause:   fmt.Errorf("validation errors: %v", errors),
		}
	}

	return nil
}

func (b *Builder) validateDefaults() []string {
	var errors []string

	if q, ok := b.defaults.Lookup(OptQuery); ok {
		params, err := paramsFrom(q)
		if err != nil {
			errors = append(errors, fmt.Sprintf("default query: %v", err))
		} else if err := ValidateQuery(params); err != nil {
			errors = append(errors, fmt.Sprintf("default query: %v", err))
		}
	}

	if h, ok := b.defaults.Lookup(OptHeaders); ok {
		if _, supported := headersFrom(h); !supported {
			errors = append(errors, fmt.Sprintf("default headers have unsupported type %T", h))
		}
	}

	return errors
}

func (b *Builder) validateBaseURL() []string {
	var errors []string

	if b.baseURL == "" {
		return errors
	}
	u, err := url.Parse(b.baseURL)
	if err != nil {
		errors = append(errors, fmt.Sprintf("baseURL is invalid: %v", err))
	} else if !u.IsAbs() {
		errors = append(errors, "baseURL must be absolute")
	}

	return errors
}

func (b *Builder) validateErrorBody() []string {
	var errors []string

	if b.maxErrorBody <= 0 {
		errors = append(errors, "maxErrorBody must be positive")
	}

	return errors
}

func (b *Builder) validateDebugConfig() []string {
	var errors []string

	if b.debug != nil && b.debug.Enabled {
		if b.debug.RequestIDGen == nil {
			errors = append(errors, "debug RequestIDGen must be set when debug is enabled")
		}
		if b.logger == nil {
			errors = append(errors, "logger must be set when debug is enabled")
		}
	}
	if b.requestIDHeader == "" {
		errors = append(errors, "requestIDHeader cannot be empty")
	}

	return errors
}

func (b *Builder) validateDecorators() []string {
	var errors []string

	for i, decorate := range b.decorators {
		if decorate == nil {
			errors = append(errors, fmt.Sprintf("decorator[%d] cannot be nil", i))
		}
	}

	return errors
}
