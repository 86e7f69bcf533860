package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ambiyansyah-risyal/reqkit"
)

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestQueryCommand(t *testing.T) {
	out, _, err := runCmd(t, "query", "type=apples", "count=420", "bbq=true", "veggies=false")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "type=apples&count=420&bbq=true" {
		t.Errorf("Expected 'type=apples&count=420&bbq=true', got '%s'", out)
	}
}

func TestQueryCommandRepeatedKeys(t *testing.T) {
	out, _, err := runCmd(t, "query", "foo=x", "bar=y", "bar=z")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "foo=x&bar=y&bar=z" {
		t.Errorf("Expected 'foo=x&bar=y&bar=z', got '%s'", out)
	}
}

func TestQueryCommandInvalidArg(t *testing.T) {
	if _, _, err := runCmd(t, "query", "novalue"); err == nil {
		t.Error("Expected error for argument without '='")
	}
}

func TestQueryCommandConfigAndParamsFile(t *testing.T) {
	cfg := writeFile(t, "config.yaml", "query:\n  page: 1\n  lang: en\n")
	params := writeFile(t, "params.yaml", "tag: [a, b]\nripe: false\n")

	out, _, err := runCmd(t, "--config", cfg, "query", "--params-file", params, "page=3")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := "lang=en&tag=a&tag=b&page=3"
	if strings.TrimSpace(out) != expected {
		t.Errorf("Expected '%s', got '%s'", expected, out)
	}
}

func TestQueryCommandRejectsNestedParams(t *testing.T) {
	params := writeFile(t, "params.yaml", "filter:\n  color: red\n")
	if _, _, err := runCmd(t, "query", "--params-file", params); err == nil {
		t.Error("Expected nested mapping to be rejected")
	}
}

func TestHeadersCommand(t *testing.T) {
	cfg := writeFile(t, "config.yaml", "headers:\n  User-Agent: reqkit-cli\n  Accept: text/plain\n")

	out, _, err := runCmd(t, "--config", cfg, "headers",
		"--base", "X-My-Header=1",
		"--set", "ACCEPT=application/json",
		"--set", "x-my-HEADER=2",
	)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := "accept: application/json\nuser-agent: reqkit-cli\nx-my-header: 2\n"
	if out != expected {
		t.Errorf("Expected %q, got %q", expected, out)
	}
}

func TestHeadersCommandInvalidFlag(t *testing.T) {
	if _, _, err := runCmd(t, "headers", "--set", "=oops"); err == nil {
		t.Error("Expected error for header without a name")
	}
}

func TestErrorCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"status text", []string{"error", "--status", "400", "--body", "{}"}, "RequestError 400: Bad Request"},
		{"message", []string{"error", "--status", "400", "--body", `{"message":"test msg"}`}, "RequestError 400: test msg"},
		{"error field", []string{"error", "--status", "400", "--body", `{"error":"test err"}`}, "RequestError 400: test err"},
		{"not json", []string{"error", "--status", "502", "--body", "<html>"}, "RequestError 502: Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCmd(t, tt.args...)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if strings.TrimSpace(out) != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, out)
			}
		})
	}
}

func TestErrorCommandJSONFromFile(t *testing.T) {
	body := writeFile(t, "body.json", `{"message":"m","error":"e"}`)

	out, _, err := runCmd(t, "error", "--status", "418", "--body-file", body, "--json")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", out, err)
	}
	if got["name"] != "RequestError" || got["message"] != "m" || got["statusCode"] != float64(418) {
		t.Errorf("Unexpected output %v", got)
	}
}

func TestErrorCommandDebugLogs(t *testing.T) {
	_, stderr, err := runCmd(t, "--debug", "error", "--status", "404", "--body", "{}")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(stderr, "Request error extracted") {
		t.Errorf("Expected debug log on stderr, got %q", stderr)
	}
}

func TestErrorCommandRequiresStatus(t *testing.T) {
	if _, _, err := runCmd(t, "error", "--body", "{}"); err == nil {
		t.Error("Expected error when --status is missing")
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCmd(t, "version")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "reqkit ") {
		t.Errorf("Expected version output, got %q", out)
	}
}

func TestVersionCommandJSON(t *testing.T) {
	out, _, err := runCmd(t, "version", "--json")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	var info map[string]string
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", out, err)
	}
	if info["version"] != reqkit.Version {
		t.Errorf("Expected version %s, got %s", reqkit.Version, info["version"])
	}
}

func TestMissingConfigFile(t *testing.T) {
	if _, _, err := runCmd(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "query", "a=1"); err == nil {
		t.Error("Expected error for missing config file")
	}
}
