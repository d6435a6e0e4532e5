package audio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

// speechServer serves fake audio bytes for /audio/speech requests
func speechServer(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/audio/speech") {
			http.NotFound(w, r)
			return
		}
		atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte{0xFF, 0xFB, 0x90, 0x00})
	}))
}

func TestOpenAIProviderGenerateAudio(t *testing.T) {
	var calls int32
	server := speechServer(t, &calls)
	defer server.Close()

	provider, err := NewOpenAIProvider(&Config{
		Provider:     "openai",
		OutputFormat: "mp3",
		OpenAIKey:    "test-key",
		OpenAIModel:  "tts-1",
		OpenAIVoice:  "shimmer",
		BaseURL:      server.URL + "/v1",
	})
	if err != nil {
		t.Fatalf("NewOpenAIProvider() error = %v", err)
	}

	outputFile := filepath.Join(t.TempDir(), "speech.mp3")
	if err := provider.GenerateAudio(context.Background(), "hello", outputFile); err != nil {
		t.Fatalf("GenerateAudio() error = %v", err)
	}

	data, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if len(data) == 0 {
		t.Error("output file is empty")
	}
}

func TestOpenAIProviderEmptyText(t *testing.T) {
	provider, err := NewOpenAIProvider(&Config{
		OpenAIKey:   "test-key",
		OpenAIModel: "tts-1",
		OpenAIVoice: "shimmer",
	})
	if err != nil {
		t.Fatalf("NewOpenAIProvider() error = %v", err)
	}

	if err := provider.GenerateAudio(context.Background(), "  ", "out.mp3"); err == nil {
		t.Error("GenerateAudio() should fail on empty text")
	}
}

func TestOpenAIProviderCache(t *testing.T) {
	var calls int32
	server := speechServer(t, &calls)
	defer server.Close()

	tempDir := t.TempDir()
	provider, err := NewOpenAIProvider(&Config{
		OpenAIKey:   "test-key",
		OpenAIModel: "tts-1",
		OpenAIVoice: "shimmer",
		BaseURL:     server.URL + "/v1",
		EnableCache: true,
		CacheDir:    filepath.Join(tempDir, "cache"),
	})
	if err != nil {
		t.Fatalf("NewOpenAIProvider() error = %v", err)
	}

	first := filepath.Join(tempDir, "first.mp3")
	second := filepath.Join(tempDir, "second.mp3")

	if err := provider.GenerateAudio(context.Background(), "hello", first); err != nil {
		t.Fatalf("first GenerateAudio() error = %v", err)
	}
	if err := provider.GenerateAudio(context.Background(), "hello", second); err != nil {
		t.Fatalf("second GenerateAudio() error = %v", err)
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("API calls = %d, want 1 (second request served from cache)", got)
	}
	if _, err := os.Stat(second); err != nil {
		t.Errorf("cached copy not written: %v", err)
	}
}
