package reqkit

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
)

func TestNewDefaults(t *testing.T) {
	b := New()

	if !b.IsValid() {
		t.Errorf("Expected default builder to be valid, got %v", b.ValidationError())
	}
	if b.maxErrorBody != DefaultMaxErrorBody {
		t.Errorf("Expected maxErrorBody=%d, got %d", DefaultMaxErrorBody, b.maxErrorBody)
	}
	if b.requestIDHeader != DefaultRequestIDHeader {
		t.Errorf("Expected requestIDHeader=%s, got %s", DefaultRequestIDHeader, b.requestIDHeader)
	}
	if b.metrics != nil {
		t.Error("Expected no metrics by default")
	}
	if b.debug == nil || b.debug.Enabled {
		t.Error("Expected disabled debug config by default")
	}
}

func TestWithDefaultsMerges(t *testing.T) {
	b := New(
		WithDefaults(Options{OptMethod: "GET", "a": 1}),
		WithDefaults(Options{OptMethod: "PUT", "a": Undefined}),
	)

	expected := Options{OptMethod: "PUT", "a": 1}
	if diff := cmp.Diff(expected, b.defaults); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestWithHeadersNormalizes(t *testing.T) {
	b := New(
		WithHeaders(Headers{"Accept": "a", "X-One": "1"}),
		WithHeaders(Headers{"ACCEPT": "b"}),
	)

	expected := Headers{"accept": "b", "x-one": "1"}
	if diff := cmp.Diff(expected, b.headers); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}
}

func TestWithBaseURL(t *testing.T) {
	b := New(WithBaseURL("https://api.example.com/v1/"))
	if b.baseURL != "https://api.example.com/v1/" {
		t.Errorf("Expected baseURL set, got %s", b.baseURL)
	}
}

func TestWithMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewMetricsCollectorWithRegistry(registry)
	b := New(WithMetricsCollector(collector))

	if b.metrics != collector {
		t.Error("Expected custom collector to be used")
	}
}

func TestWithDebugOptions(t *testing.T) {
	gen := func() string { return "fixed" }
	b := New(WithDebug(), WithLogger(&recordingLogger{}), WithRequestIDGenerator(gen))

	if !b.debug.Enabled {
		t.Error("Expected debug enabled")
	}
	if b.debug.RequestIDGen() != "fixed" {
		t.Error("Expected custom request ID generator")
	}
	if !b.IsValid() {
		t.Errorf("Expected valid builder, got %v", b.ValidationError())
	}

	simple := New(WithSimpleLogger())
	if simple.logger == nil || !simple.debug.Enabled {
		t.Error("Expected WithSimpleLogger to enable debug with a logger")
	}

	custom := New(WithDebugConfig(&DebugConfig{Enabled: false}))
	if custom.debug.Enabled {
		t.Error("Expected custom debug config to be used")
	}
}

func TestWithRequestIDHeaderLowercases(t *testing.T) {
	b := New(WithRequestIDHeader("X-Trace-ID"))
	if b.requestIDHeader != "x-trace-id" {
		t.Errorf("Expected x-trace-id, got %s", b.requestIDHeader)
	}
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		options []Option
	}{
		{"debug without logger", []Option{WithDebug()}},
		{"debug without generator", []Option{WithDebug(), WithLogger(&recordingLogger{}), WithRequestIDGenerator(nil)}},
		{"zero error body", []Option{WithMaxErrorBody(0)}},
		{"relative base url", []Option{WithBaseURL("/api")}},
		{"unparsable base url", []Option{WithBaseURL("http://[::1")}},
		{"empty request id header", []Option{WithRequestIDHeader("")}},
		{"nil decorator", []Option{WithDecorators(nil)}},
		{"bad default query", []Option{WithDefaults(Options{OptQuery: Params{{Key: "m", Value: struct{}{}}}})}},
		{"bad default headers", []Option{WithDefaults(Options{OptHeaders: 5})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.options...)
			if b.IsValid() {
				t.Fatal("Expected invalid configuration")
			}
			if !errors.Is(b.ValidationError(), &ClientError{Type: ErrorTypeValidation}) {
				t.Errorf("Expected validation ClientError, got %v", b.ValidationError())
			}
		})
	}
}

func TestValidConfigurations(t *testing.T) {
	b := New(
		WithBaseURL("https://api.example.com"),
		WithDefaults(Options{OptHeaders: http.Header{"Accept": {"a"}}, OptQuery: map[string]any{"a": 1}}),
		WithMaxErrorBody(64),
		WithDecorators(func(*http.Request) error { return nil }),
	)
	if err := b.ValidateConfiguration(); err != nil {
		t.Errorf("Expected valid configuration, got %v", err)
	}
}

func TestDefaultHeaderShapes(t *testing.T) {
	for _, headers := range []any{Headers(nil), nil, map[string][]string{"Accept": {"a"}}} {
		b := New(WithDefaults(Options{OptHeaders: headers}))
		if !b.IsValid() {
			t.Errorf("Expected default headers %#v to be valid, got %v", headers, b.ValidationError())
		}
	}
}
