// Package llm wraps the LLM completion API behind a small interface so the
// pipeline can be tested with fakes.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ErrEmptyCompletion indicates the model returned no text content.
var ErrEmptyCompletion = errors.New("empty completion")

// CompletionRequest is one chat-style request carrying a single user message.
type CompletionRequest struct {
	Prompt      string
	MaxTokens   int64
	Temperature float64
}

// Completer returns a free-text completion for a prompt. The response is
// untrusted text; callers parse it defensively.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Client is the Anthropic-backed Completer.
type Client struct {
	client anthropic.Client
	model  anthropic.Model
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
	}
}

// Complete sends one user message and concatenates the text blocks of the reply.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 256
	}

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text := sb.String()
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
