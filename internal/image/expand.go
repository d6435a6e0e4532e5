package image

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// PromptExpander rewrites a literal image prompt into a verbose
// natural-language prompt better suited to a diffusion model's text encoder
type PromptExpander interface {
	Expand(ctx context.Context, prompt string) (string, error)
}

// ExpanderConfig holds configuration for the LLM-based prompt expander
type ExpanderConfig struct {
	APIKey  string
	Model   string // Chat model, e.g. "gpt-4o"
	BaseURL string // Override API base URL (used in tests)
}

// LLMExpander expands image prompts via the OpenAI chat API
type LLMExpander struct {
	client *openai.Client
	config *ExpanderConfig
}

// NewLLMExpander creates a new LLM-based prompt expander
func NewLLMExpander(config *ExpanderConfig) *LLMExpander {
	if config.Model == "" {
		config.Model = openai.GPT4o
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &LLMExpander{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}
}

// Expand rewrites the prompt into a detailed scene description
func (e *LLMExpander) Expand(ctx context.Context, prompt string) (string, error) {
	if e.config.APIKey == "" {
		return "", fmt.Errorf("OpenAI API key is required for prompt expansion")
	}

	req := openai.ChatCompletionRequest{
		Model: e.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You turn short image requests into rich, detailed natural-language prompts " +
					"for a text-to-image diffusion model. Describe the scene, subjects, mood and " +
					"lighting in flowing prose. Respond with the expanded prompt only.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.7,
		MaxTokens:   1024,
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no expanded prompt returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
