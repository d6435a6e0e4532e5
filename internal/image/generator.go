package image

import (
	"context"
	"fmt"

	"codeberg.org/snonux/wordreel/internal/wordinfo"
)

// Generator defines the interface for image generation backends
type Generator interface {
	// Generate produces an illustration for the word and returns the raw
	// image bytes (PNG or JPEG depending on the backend)
	Generate(ctx context.Context, info *wordinfo.WordInfo) ([]byte, error)

	// Name returns the backend name
	Name() string
}

// BuildPrompt creates the literal image prompt for a word
func BuildPrompt(info *wordinfo.WordInfo) string {
	return fmt.Sprintf(
		"Please make a picture of the word %q, so a 5 year old can understand what the word means. "+
			"The definition of the word is: %q. "+
			"The example of the word is: %q.",
		info.Word, info.Definition, info.Example)
}
