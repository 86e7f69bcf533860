package scalar

import (
	"testing"
)

type color string

type flag bool

type port uint16

func TestClassify(t *testing.T) {
	var nilSlice []string
	var nilPtr *int

	tests := []struct {
		name     string
		input    any
		expected Kind
	}{
		{"nil", nil, KindNil},
		{"string", "x", KindString},
		{"named string", color("red"), KindString},
		{"bytes", []byte("raw"), KindString},
		{"bool", true, KindBool},
		{"named bool", flag(false), KindBool},
		{"int", 420, KindNumber},
		{"named uint", port(8080), KindNumber},
		{"float", 1.5, KindNumber},
		{"string slice", []string{"a"}, KindList},
		{"any slice", []any{1, "a"}, KindList},
		{"array", [2]int{1, 2}, KindList},
		{"nil slice", nilSlice, KindNil},
		{"nil pointer", nilPtr, KindNil},
		{"map", map[string]int{"a": 1}, KindOther},
		{"struct", struct{ A int }{1}, KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.input); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		input    any
		expected string
	}{
		{"apples", "apples"},
		{420, "420"},
		{int64(-7), "-7"},
		{uint8(255), "255"},
		{port(443), "443"},
		{true, "true"},
		{false, "false"},
		{flag(true), "true"},
		{1.5, "1.5"},
		{float32(0.25), "0.25"},
		{100.0, "100"},
		{color("blue"), "blue"},
		{[]byte("raw"), "raw"},
		{nil, ""},
	}

	for _, tt := range tests {
		if got := Format(tt.input); got != tt.expected {
			t.Errorf("Format(%#v) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestElements(t *testing.T) {
	got := Elements([]int{3, 1, 2})
	if len(got) != 3 || got[0] != 3 || got[1] != 1 || got[2] != 2 {
		t.Errorf("Expected [3 1 2], got %v", got)
	}

	strs := Elements([]string{"y", "z"})
	if len(strs) != 2 || strs[0] != "y" || strs[1] != "z" {
		t.Errorf("Expected [y z], got %v", strs)
	}

	if Elements("scalar") != nil {
		t.Error("Expected nil elements for a scalar")
	}
	if Elements([]byte("abc")) != nil {
		t.Error("Expected byte slices to be treated as scalars")
	}
}

func TestIsFalse(t *testing.T) {
	if !IsFalse(false) {
		t.Error("Expected false to be false")
	}
	if !IsFalse(flag(false)) {
		t.Error("Expected named false to be false")
	}
	if IsFalse(true) || IsFalse(0) || IsFalse("") || IsFalse(nil) {
		t.Error("Only boolean false should report IsFalse")
	}
}
