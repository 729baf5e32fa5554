package ai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/myrjola/existyet/internal/errors"
	"github.com/sashabaranov/go-openai"
)

const (
	// MaxTokens bounds the length of an analysis.
	MaxTokens = 2000
	// Temperature is fixed so that analyses are creative but stay close to the requested schema.
	Temperature float32 = 0.7

	DefaultBaseURL = "https://api.perplexity.ai"
	DefaultModel   = "llama-3.1-sonar-large-128k-online"
)

var (
	ErrNotConfigured = errors.NewSentinel("LLM API key is not configured")
	ErrNoContent     = errors.NewSentinel("no response content from API")
)

// Config holds the connection settings of an OpenAI compatible chat completion endpoint.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a chat completion client. It returns [ErrNotConfigured] when the API key is missing.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	openaiConfig := openai.DefaultConfig(cfg.APIKey)
	openaiConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	return &Client{
		client: openai.NewClientWithConfig(openaiConfig),
		model:  cfg.Model,
	}, nil
}

// Complete sends the system prompt and the user's text and returns the first choice's message verbatim.
func (c *Client) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	completion, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:       c.model,
			MaxTokens:   MaxTokens,
			Temperature: Temperature,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userText},
			},
		},
	)
	if err != nil {
		return "", errors.Wrap(err, "create chat completion", slog.String("model", c.model))
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", errors.Wrap(ErrNoContent, "read completion", slog.Int("choices", len(completion.Choices)))
	}
	return completion.Choices[0].Message.Content, nil
}
