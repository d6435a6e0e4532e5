package wordinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// chatServer returns a fake chat completions endpoint that always answers
// with content
func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}

		resp := map[string]interface{}{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4o",
			"choices": []map[string]interface{}{
				{
					"index": 0,
					"message": map[string]string{
						"role":    "assistant",
						"content": content,
					},
					"finish_reason": "stop",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func newTestGenerator(t *testing.T, server *httptest.Server, failureLog string) *Generator {
	t.Helper()

	gen, err := NewGenerator(&Config{
		APIKey:         "test-key",
		FailureLogPath: failureLog,
		BaseURL:        server.URL + "/v1",
	})
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	return gen
}

func TestNewGenerator(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "missing API key",
			config:  &Config{},
			wantErr: true,
		},
		{
			name:    "valid config",
			config:  &Config{APIKey: "test-key"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewGenerator() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenerateWordFieldMatchesInput(t *testing.T) {
	server := chatServer(t, `{"definition": "A red fruit.", "example": "For example, I ate an apple."}`)
	defer server.Close()

	gen := newTestGenerator(t, server, "")

	result, err := gen.Generate(context.Background(), "apple")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Failed() {
		t.Fatalf("Generate() reported failure, raw: %s", result.RawResponse)
	}

	if result.Info.Word != "apple" {
		t.Errorf("Word = %q, want %q", result.Info.Word, "apple")
	}
	if result.Info.Definition != "A red fruit." {
		t.Errorf("Definition = %q, want %q", result.Info.Definition, "A red fruit.")
	}
	if result.Info.Example != "For example, I ate an apple." {
		t.Errorf("Example = %q, want %q", result.Info.Example, "For example, I ate an apple.")
	}
}

func TestGenerateFencedJSON(t *testing.T) {
	server := chatServer(t, "```json\n{\"definition\": \"A red fruit.\", \"example\": \"For example.\"}\n```")
	defer server.Close()

	gen := newTestGenerator(t, server, "")

	result, err := gen.Generate(context.Background(), "apple")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Failed() {
		t.Fatalf("fenced JSON should parse, raw: %s", result.RawResponse)
	}
	if result.Info.Definition != "A red fruit." {
		t.Errorf("Definition = %q, want %q", result.Info.Definition, "A red fruit.")
	}
}

func TestGenerateParseFailure(t *testing.T) {
	raw := "Sorry, I cannot answer in JSON today."
	server := chatServer(t, raw)
	defer server.Close()

	failureLog := filepath.Join(t.TempDir(), "failures.log")
	gen := newTestGenerator(t, server, failureLog)

	result, err := gen.Generate(context.Background(), "apple")
	if err != nil {
		t.Fatalf("parse failure must not be an error, got %v", err)
	}
	if !result.Failed() {
		t.Fatal("Generate() should report failure for non-JSON response")
	}
	if result.RawResponse != raw {
		t.Errorf("RawResponse = %q, want %q", result.RawResponse, raw)
	}

	// The failure log gains exactly one line containing the word and the
	// raw response
	data, err := os.ReadFile(failureLog)
	if err != nil {
		t.Fatalf("failed to read failure log: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("failure log has %d lines, want 1", len(lines))
	}
	if !strings.Contains(lines[0], "apple") || !strings.Contains(lines[0], raw) {
		t.Errorf("failure log line missing word or raw response: %q", lines[0])
	}
}

func TestGenerateEmptyWord(t *testing.T) {
	server := chatServer(t, "{}")
	defer server.Close()

	gen := newTestGenerator(t, server, "")

	if _, err := gen.Generate(context.Background(), "  "); err == nil {
		t.Error("Generate() should reject an empty word")
	}
}

func TestGenerateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "boom"}}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	gen := newTestGenerator(t, server, "")

	_, err := gen.Generate(context.Background(), "apple")
	if err == nil {
		t.Error("Generate() should propagate API errors")
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no fence",
			input: `{"a": 1}`,
			want:  `{"a": 1}`,
		},
		{
			name:  "json fence",
			input: "```json\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "bare fence",
			input: "```\n{\"a\": 1}\n```",
			want:  `{"a": 1}`,
		},
		{
			name:  "fence without newline",
			input: "```{\"a\": 1}```",
			want:  `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFence(tt.input); got != tt.want {
				t.Errorf("stripCodeFence(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResultFailed(t *testing.T) {
	if (Result{}).Failed() != true {
		t.Error("zero Result should be failed")
	}
	if (Result{Info: &WordInfo{}}).Failed() != false {
		t.Error("Result with Info should not be failed")
	}
}

func TestLogFailureAppends(t *testing.T) {
	failureLog := filepath.Join(t.TempDir(), "failures.log")
	gen := &Generator{config: &Config{FailureLogPath: failureLog}}

	for i := 0; i < 3; i++ {
		if err := gen.logFailure(fmt.Sprintf("word%d", i), "raw\nmultiline"); err != nil {
			t.Fatalf("logFailure() error = %v", err)
		}
	}

	data, err := os.ReadFile(failureLog)
	if err != nil {
		t.Fatalf("failed to read failure log: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Errorf("failure log has %d lines, want 3", len(lines))
	}
	for _, line := range lines {
		if strings.Contains(line, "\n") {
			t.Errorf("failure log line contains embedded newline: %q", line)
		}
	}
}
