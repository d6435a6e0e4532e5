package wordinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
)

const systemPrompt = "You are a kindergarten teacher. You are given a word and you need to explain it in a way that is easy to understand."

const userPromptTemplate = "Can you explain the word %s in a way that is easy to understand for a 5 year old? " +
	"Please respond in JSON format with the following two fields: 'definition' and 'example'. " +
	"The definition should be no more than a couple of sentences explaining the most common definition(s) of the word. " +
	"The example should be a sentence that uses the word in a way that is easy to understand for a 5 year old. " +
	"Start the example sentence with something like 'For example, ...', 'Here is an example: ...', or 'An example would be ...'."

// WordInfo holds the kid-friendly definition and example of a word
type WordInfo struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

// Result is the outcome of a generation attempt. A parse failure is not an
// error: Info is nil and RawResponse carries the unparseable LLM output.
type Result struct {
	Info        *WordInfo
	RawResponse string
}

// Failed reports whether the LLM response could not be parsed
func (r Result) Failed() bool {
	return r.Info == nil
}

// Config holds configuration for the word info generator
type Config struct {
	APIKey         string
	Model          string        // Chat model, e.g. "gpt-4o"
	FailureLogPath string        // Append-only log of unparseable responses
	BaseURL        string        // Override API base URL (used in tests)
	RequestTimeout time.Duration // Per-request timeout (default 60s)
}

// Generator generates word info via the OpenAI chat API
type Generator struct {
	client  *openai.Client
	config  *Config
	breaker *gobreaker.CircuitBreaker
}

// NewGenerator creates a new word info generator
func NewGenerator(config *Config) (*Generator, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if config.Model == "" {
		config.Model = openai.GPT4o
	}
	if config.RequestTimeout == 0 {
		config.RequestTimeout = 60 * time.Second
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "openai-chat",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &Generator{
		client:  openai.NewClientWithConfig(clientConfig),
		config:  config,
		breaker: breaker,
	}, nil
}

// Generate asks the LLM for a definition and example of word. Transport and
// API errors are returned as errors; an unparseable response is logged to the
// failure log and returned as a failed Result.
func (g *Generator) Generate(ctx context.Context, word string) (Result, error) {
	if strings.TrimSpace(word) == "" {
		return Result{}, fmt.Errorf("word cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, g.config.RequestTimeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: g.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(userPromptTemplate, word),
			},
		},
		Temperature: 0,
		MaxTokens:   1024,
	}

	raw, err := g.breaker.Execute(func() (interface{}, error) {
		resp, err := g.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("no response from OpenAI")
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("OpenAI API error: %w", err)
	}

	text := strings.TrimSpace(raw.(string))

	var info WordInfo
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &info); err != nil {
		if logErr := g.logFailure(word, text); logErr != nil {
			return Result{}, fmt.Errorf("failed to record parse failure: %w", logErr)
		}
		return Result{RawResponse: text}, nil
	}

	info.Word = word
	return Result{Info: &info, RawResponse: text}, nil
}

// logFailure appends "word<TAB>raw response" as a single line to the failure log
func (g *Generator) logFailure(word, raw string) error {
	if g.config.FailureLogPath == "" {
		return nil
	}

	f, err := os.OpenFile(g.config.FailureLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	line := fmt.Sprintf("%s\t%s\n", word, strings.ReplaceAll(raw, "\n", " "))
	_, err = f.WriteString(line)
	return err
}

// stripCodeFence removes a surrounding markdown code fence from an LLM
// response, e.g. ```json ... ```
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 && !strings.HasPrefix(s, "{") {
		// Drop the language tag line, e.g. "json"
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
