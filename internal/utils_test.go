package internal

import (
	"strings"
	"testing"
)

func TestGenerateRunID(t *testing.T) {
	id := GenerateRunID("apple tree banana")

	parts := strings.Split(id, "_")
	if len(parts) != 2 {
		t.Fatalf("GenerateRunID() = %q, want epoch_hash format", id)
	}
	if len(parts[1]) != 8 {
		t.Errorf("hash part length = %d, want 8", len(parts[1]))
	}

	other := GenerateRunID("different words")
	if strings.Split(other, "_")[1] == parts[1] {
		t.Error("different seeds should produce different hash parts")
	}
}

func TestClipFileName(t *testing.T) {
	tests := []struct {
		index int
		word  string
		want  string
	}{
		{1, "apple", "1_apple.mp4"},
		{12, "ice cream", "12_ice_cream.mp4"},
		{3, "well-known", "3_well-known.mp4"},
	}

	for _, tt := range tests {
		if got := ClipFileName(tt.index, tt.word); got != tt.want {
			t.Errorf("ClipFileName(%d, %q) = %q, want %q", tt.index, tt.word, got, tt.want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"apple", "apple"},
		{"ice cream", "ice_cream"},
		{"don't", "don_t"},
		{"a/b\\c", "a_b_c"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.input); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
