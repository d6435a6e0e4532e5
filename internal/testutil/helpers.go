// Package testutil provides shared helpers for wordreel tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/snonux/wordreel/internal/wordinfo"
)

// CreateTestFile creates a test file with content and returns its path
func CreateTestFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}

	return path
}

// SampleWordInfo returns a WordInfo for tests
func SampleWordInfo() *wordinfo.WordInfo {
	return &wordinfo.WordInfo{
		Word:       "apple",
		Definition: "A red fruit.",
		Example:    "For example, I ate an apple.",
	}
}

// PNGData returns bytes with a PNG signature
func PNGData() []byte {
	return []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00}
}

// MP3Data returns bytes with an MP3 frame header
func MP3Data() []byte {
	return []byte{0xFF, 0xFB, 0x90, 0x00, 0x00, 0x00, 0x00, 0x00}
}
