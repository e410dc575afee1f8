// Package llm wraps the external text generation service behind a small
// request/response interface so callers never touch the transport directly.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// GenerationParams controls generation behavior for a single call.
type GenerationParams struct {
	MaxTokens   int
	Temperature float64
}

// Client is the interface for a prompt-in, free-text-out generation call.
// The response may or may not contain an embedded structured payload; use
// the extraction helpers to locate it.
type Client interface {
	Complete(ctx context.Context, prompt string, params *GenerationParams) (string, error)
}

type openAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewOpenAIClient returns a Client backed by the OpenAI chat completions API.
// Every call is bounded by timeout; callers fall back when it expires.
func NewOpenAIClient(apiKey, model string, timeout time.Duration, logger *zap.Logger) Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &openAIClient{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

func (c *openAIClient) Complete(ctx context.Context, prompt string, params *GenerationParams) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}
	if params != nil {
		req.MaxTokens = params.MaxTokens
		req.Temperature = float32(params.Temperature)
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Warn("Generation call failed", zap.Error(err))
		return "", fmt.Errorf("failed to call completion api: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion api returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
