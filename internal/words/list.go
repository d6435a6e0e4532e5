// Package words reads vocabulary word lists from files.
package words

import (
	"fmt"
	"os"
	"strings"
)

// ReadListFile reads words from a file, one word per line. Blank lines and
// lines starting with '#' are skipped.
func ReadListFile(filename string) ([]string, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}

	var words []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}

	return words, nil
}

// ApplyOffset skips the first offset words of the list
func ApplyOffset(words []string, offset int) ([]string, error) {
	if offset < 0 {
		return nil, fmt.Errorf("offset cannot be negative")
	}
	if offset >= len(words) {
		return nil, fmt.Errorf("offset %d is beyond the end of the %d-word list", offset, len(words))
	}
	return words[offset:], nil
}
