package image

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/wordreel/internal/wordinfo"
)

// maxImageBytes caps the size of a downloaded image
const maxImageBytes = 10 * 1024 * 1024

// OpenAIConfig holds configuration for OpenAI image generation
type OpenAIConfig struct {
	APIKey  string
	Model   string // "dall-e-2" or "dall-e-3"
	Size    string // e.g. "1024x1024"
	Quality string // "standard" or "hd" (dall-e-3 only)
	BaseURL string // Override API base URL (used in tests)
}

// OpenAIClient generates images via the OpenAI image API. The API returns a
// URL which is downloaded synchronously.
type OpenAIClient struct {
	client     *openai.Client
	config     *OpenAIConfig
	httpClient *http.Client
}

// NewOpenAIClient creates a new OpenAI image generation client
func NewOpenAIClient(config *OpenAIConfig) *OpenAIClient {
	if config.Model == "" {
		config.Model = "dall-e-3"
	}
	if config.Size == "" {
		config.Size = "1024x1024"
	}
	if config.Quality == "" {
		config.Quality = "standard"
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIClient{
		client:     openai.NewClientWithConfig(clientConfig),
		config:     config,
		httpClient: http.DefaultClient,
	}
}

// Generate requests one image and downloads it from the returned URL
func (c *OpenAIClient) Generate(ctx context.Context, info *wordinfo.WordInfo) ([]byte, error) {
	if c.config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required for image generation")
	}

	prompt := BuildPrompt(info)

	req := openai.ImageRequest{
		Model:   c.config.Model,
		Prompt:  prompt,
		Size:    c.config.Size,
		Quality: c.config.Quality,
		N:       1,
	}

	resp, err := c.client.CreateImage(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI image API error: %w", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return nil, fmt.Errorf("no image URL returned by OpenAI")
	}

	return c.download(ctx, resp.Data[0].URL)
}

// Name returns the backend name
func (c *OpenAIClient) Name() string {
	return "openai"
}

// download fetches the generated image from its URL
func (c *OpenAIClient) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image downloaded from %s", url)
	}

	return data, nil
}
