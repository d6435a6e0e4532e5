package audio

import (
	"context"
	"fmt"
	"path/filepath"

	"codeberg.org/snonux/wordreel/internal/wordinfo"
)

// Segments holds the file paths of the three narration segments of a word,
// in playback order
type Segments struct {
	Word       string
	Definition string
	Example    string
}

// Paths returns the segment paths in playback order
func (s *Segments) Paths() []string {
	return []string{s.Word, s.Definition, s.Example}
}

// NarratorConfig holds configuration for word narration
type NarratorConfig struct {
	OpenAIKey      string
	Model          string // TTS model, e.g. "tts-1"
	NarratorVoice  string // Voice for the word and definition segments
	ExampleVoice   string // Voice for the example segment
	BaseURL        string // Override API base URL (used in tests)
	ESpeakFallback bool   // Fall back to espeak-ng on OpenAI failure
	EnableCache    bool
	CacheDir       string
}

// Narrator synthesizes the three narration segments of a word
type Narrator struct {
	config *NarratorConfig

	// newProvider is a seam for tests; defaults to NewProvider
	newProvider func(*Config) (Provider, error)
}

// NewNarrator creates a new narrator
func NewNarrator(config *NarratorConfig) *Narrator {
	if config.Model == "" {
		config.Model = "tts-1"
	}
	if config.NarratorVoice == "" {
		config.NarratorVoice = "shimmer"
	}
	if config.ExampleVoice == "" {
		config.ExampleVoice = "nova"
	}

	return &Narrator{
		config:      config,
		newProvider: NewProvider,
	}
}

// Narrate generates the three speech files for a word into outputDir
func (n *Narrator) Narrate(ctx context.Context, info *wordinfo.WordInfo, outputDir string) (*Segments, error) {
	segments := &Segments{
		Word:       filepath.Join(outputDir, "word_speech.mp3"),
		Definition: filepath.Join(outputDir, "definition_speech.mp3"),
		Example:    filepath.Join(outputDir, "example_speech.mp3"),
	}

	parts := []struct {
		text  string
		voice string
		path  string
	}{
		{fmt.Sprintf("The word is %q ...", info.Word), n.config.NarratorVoice, segments.Word},
		{info.Definition, n.config.NarratorVoice, segments.Definition},
		{info.Example, n.config.ExampleVoice, segments.Example},
	}

	for _, part := range parts {
		provider, err := n.providerForVoice(part.voice)
		if err != nil {
			return nil, err
		}
		if err := provider.GenerateAudio(ctx, part.text, part.path); err != nil {
			return nil, fmt.Errorf("failed to narrate %s: %w", filepath.Base(part.path), err)
		}
	}

	return segments, nil
}

// providerForVoice builds a TTS provider bound to one voice
func (n *Narrator) providerForVoice(voice string) (Provider, error) {
	provider, err := n.newProvider(&Config{
		Provider:     "openai",
		OutputFormat: "mp3",
		OpenAIKey:    n.config.OpenAIKey,
		OpenAIModel:  n.config.Model,
		OpenAIVoice:  voice,
		BaseURL:      n.config.BaseURL,
		EnableCache:  n.config.EnableCache,
		CacheDir:     n.config.CacheDir,
	})
	if err != nil {
		return nil, err
	}

	if n.config.ESpeakFallback {
		fallback, fbErr := NewESpeakProvider(nil)
		if fbErr == nil {
			provider = NewProviderWithFallback(provider, fallback)
		}
	}

	return provider, nil
}
