package image

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"codeberg.org/snonux/wordreel/internal/wordinfo"
)

// Fixed sampling parameters for the diffusion backend. The seed makes the
// output deterministic for a given prompt.
const (
	imagenGuidanceScale = 3.5
	imagenSeed          = 0
)

// ImagenConfig holds configuration for the Imagen diffusion backend
type ImagenConfig struct {
	APIKey string
	Model  string // e.g. "imagen-3.0-generate-002"

	// Expander optionally rewrites the literal prompt into a verbose
	// natural-language prompt before generation
	Expander PromptExpander
}

// ImagenClient generates images with a hosted diffusion model via the
// Gemini API
type ImagenClient struct {
	config *ImagenConfig
	client *genai.Client
}

// NewImagenClient creates a new Imagen image generation client
func NewImagenClient(ctx context.Context, config *ImagenConfig) (*ImagenClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required for the imagen backend")
	}
	if config.Model == "" {
		config.Model = "imagen-3.0-generate-002"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &ImagenClient{
		config: config,
		client: client,
	}, nil
}

// Generate produces one square image with fixed guidance scale and seed
func (c *ImagenClient) Generate(ctx context.Context, info *wordinfo.WordInfo) ([]byte, error) {
	prompt := BuildPrompt(info)

	if c.config.Expander != nil {
		expanded, err := c.config.Expander.Expand(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("prompt expansion failed: %w", err)
		}
		prompt = expanded
	}

	resp, err := c.client.Models.GenerateImages(ctx, c.config.Model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    "1:1",
		GuidanceScale:  genai.Ptr[float32](imagenGuidanceScale),
		Seed:           genai.Ptr[int32](imagenSeed),
		OutputMIMEType: "image/png",
	})
	if err != nil {
		return nil, fmt.Errorf("Imagen API error: %w", err)
	}

	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, fmt.Errorf("no image returned by Imagen")
	}

	data := resp.GeneratedImages[0].Image.ImageBytes
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image returned by Imagen")
	}

	return data, nil
}

// Name returns the backend name
func (c *ImagenClient) Name() string {
	return "imagen"
}
