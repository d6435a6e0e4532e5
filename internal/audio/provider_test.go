package audio

import (
	"context"
	"fmt"
	"os"
	"testing"
)

// mockProvider records GenerateAudio calls and optionally fails
type mockProvider struct {
	name     string
	failWith error
	calls    []string
}

func (m *mockProvider) GenerateAudio(ctx context.Context, text string, outputFile string) error {
	m.calls = append(m.calls, text)
	if m.failWith != nil {
		return m.failWith
	}
	return os.WriteFile(outputFile, []byte("audio"), 0644)
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) IsAvailable() error { return m.failWith }

func TestDefaultProviderConfig(t *testing.T) {
	config := DefaultProviderConfig()

	if config.Provider != "openai" {
		t.Errorf("Provider = %s, want openai", config.Provider)
	}
	if config.OutputFormat != "mp3" {
		t.Errorf("OutputFormat = %s, want mp3", config.OutputFormat)
	}
	if config.OpenAIVoice != "shimmer" {
		t.Errorf("OpenAIVoice = %s, want shimmer", config.OpenAIVoice)
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name: "openai with key",
			config: &Config{
				Provider:     "openai",
				OutputFormat: "mp3",
				OpenAIKey:    "test-key",
			},
			wantErr: false,
		},
		{
			name: "openai without key",
			config: &Config{
				Provider:     "openai",
				OutputFormat: "mp3",
			},
			wantErr: true,
		},
		{
			name: "unknown provider",
			config: &Config{
				Provider: "festival",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewProvider() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && provider == nil {
				t.Error("NewProvider() returned nil provider")
			}
		})
	}
}

func TestFallbackUsedOnPrimaryFailure(t *testing.T) {
	tempDir := t.TempDir()
	outputFile := tempDir + "/out.mp3"

	primary := &mockProvider{name: "primary", failWith: fmt.Errorf("quota exceeded")}
	fallback := &mockProvider{name: "fallback"}
	provider := NewProviderWithFallback(primary, fallback)

	if err := provider.GenerateAudio(context.Background(), "hello", outputFile); err != nil {
		t.Fatalf("GenerateAudio() error = %v", err)
	}

	if len(primary.calls) != 1 {
		t.Errorf("primary calls = %d, want 1", len(primary.calls))
	}
	if len(fallback.calls) != 1 {
		t.Errorf("fallback calls = %d, want 1", len(fallback.calls))
	}
	if _, err := os.Stat(outputFile); err != nil {
		t.Errorf("output file not written: %v", err)
	}
}

func TestFallbackSkippedOnPrimarySuccess(t *testing.T) {
	tempDir := t.TempDir()

	primary := &mockProvider{name: "primary"}
	fallback := &mockProvider{name: "fallback"}
	provider := NewProviderWithFallback(primary, fallback)

	if err := provider.GenerateAudio(context.Background(), "hello", tempDir+"/out.mp3"); err != nil {
		t.Fatalf("GenerateAudio() error = %v", err)
	}

	if len(fallback.calls) != 0 {
		t.Errorf("fallback calls = %d, want 0", len(fallback.calls))
	}
}

func TestFallbackIsAvailable(t *testing.T) {
	provider := NewProviderWithFallback(
		&mockProvider{name: "primary", failWith: fmt.Errorf("down")},
		&mockProvider{name: "fallback"},
	)
	if err := provider.IsAvailable(); err != nil {
		t.Errorf("IsAvailable() error = %v, want nil when fallback is healthy", err)
	}

	provider = NewProviderWithFallback(
		&mockProvider{name: "primary", failWith: fmt.Errorf("down")},
		&mockProvider{name: "fallback", failWith: fmt.Errorf("also down")},
	)
	if err := provider.IsAvailable(); err == nil {
		t.Error("IsAvailable() should fail when both providers are unavailable")
	}
}
