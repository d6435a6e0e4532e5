package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func TestNewFlagsDefaults(t *testing.T) {
	flags := NewFlags()

	if flags.BatchSize != 10 {
		t.Errorf("BatchSize = %d, want 10", flags.BatchSize)
	}
	if flags.ImageAPI != "openai" {
		t.Errorf("ImageAPI = %s, want openai", flags.ImageAPI)
	}
	if flags.NarratorVoice != "shimmer" {
		t.Errorf("NarratorVoice = %s, want shimmer", flags.NarratorVoice)
	}
	if flags.ExampleVoice != "nova" {
		t.Errorf("ExampleVoice = %s, want nova", flags.ExampleVoice)
	}
	if flags.OpenAIImageSize != "1024x1024" {
		t.Errorf("OpenAIImageSize = %s, want 1024x1024", flags.OpenAIImageSize)
	}
	if flags.OpenAIImageQuality != "standard" {
		t.Errorf("OpenAIImageQuality = %s, want standard", flags.OpenAIImageQuality)
	}
	if flags.GapSeconds != 2.0 {
		t.Errorf("GapSeconds = %g, want 2.0", flags.GapSeconds)
	}
}

func TestCreateRootCommandFlags(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	flagTests := []string{
		"config", "output", "scratch", "words", "offset", "batch-size",
		"keep-scratch", "list-models", "archive", "debug", "image-api",
		"expand-prompt", "imagen-model", "openai-model", "openai-tts-model",
		"narrator-voice", "example-voice", "openai-image-model",
		"openai-image-size", "openai-image-quality", "gap", "espeak-fallback",
	}

	for _, name := range flagTests {
		t.Run("flag_"+name, func(t *testing.T) {
			var flag *pflag.Flag
			if name == "config" {
				flag = cmd.PersistentFlags().Lookup(name)
			} else {
				flag = cmd.Flags().Lookup(name)
			}
			if flag == nil {
				t.Errorf("Expected flag %s to exist", name)
			}
		})
	}
}

func TestCreateRootCommandParsesFlags(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	cmd.SetArgs([]string{
		"--output", "/tmp/videos",
		"--batch-size", "5",
		"--image-api", "imagen",
		"--gap", "1.5",
		"apple", "tree",
	})
	cmd.RunE = func(cmd *cobra.Command, args []string) error { return nil }

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if flags.OutputDir != "/tmp/videos" {
		t.Errorf("OutputDir = %s, want /tmp/videos", flags.OutputDir)
	}
	if flags.BatchSize != 5 {
		t.Errorf("BatchSize = %d, want 5", flags.BatchSize)
	}
	if flags.ImageAPI != "imagen" {
		t.Errorf("ImageAPI = %s, want imagen", flags.ImageAPI)
	}
	if flags.GapSeconds != 1.5 {
		t.Errorf("GapSeconds = %g, want 1.5", flags.GapSeconds)
	}
}

func TestGetOpenAIKeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	if got := GetOpenAIKey(); got != "sk-test" {
		t.Errorf("GetOpenAIKey() = %s, want sk-test", got)
	}
}

func TestGetGeminiKeyFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gm-test")

	if got := GetGeminiKey(); got != "gm-test" {
		t.Errorf("GetGeminiKey() = %s, want gm-test", got)
	}
}

func TestGetOpenAIKeyEmpty(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	// No env var and no config file loaded in tests
	if got := GetOpenAIKey(); got != "" {
		t.Errorf("GetOpenAIKey() = %s, want empty", got)
	}
}
