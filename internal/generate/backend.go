// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/pdiddy/autoblog/pkg/types"
)

// Backend abstracts the chat completion API so tests can supply a mock.
// Complete returns the text of the first completion choice.
type Backend interface {
	Complete(ctx context.Context, p Prompt) (string, error)
}

const (
	// DefaultBaseURL is the OpenAI API root.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-3.5-turbo"

	pingMaxTokens = 50
	pingMessage   = "Hello, this is an API connectivity test."
)

// OpenAIBackend calls an OpenAI-compatible /chat/completions endpoint with a
// bearer token. SDK-level retries are disabled: a failed call is reported to
// the caller, which decides whether to retry the whole article.
type OpenAIBackend struct {
	client      openai.Client
	model       string
	maxTokens   int
	temperature float64
}

// NewOpenAIBackend builds a backend from cfg. A nil httpClient uses
// http.DefaultClient.
func NewOpenAIBackend(cfg types.AIConfig, httpClient *http.Client) *OpenAIBackend {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(strings.TrimRight(baseURL, "/")+"/"),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	)

	return &OpenAIBackend{
		client:      client,
		model:       model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

// Complete sends the system instruction and user prompt as one chat
// completion request.
func (b *OpenAIBackend) Complete(ctx context.Context, p Prompt) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(b.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(p.System),
			openai.UserMessage(p.User),
		},
		Temperature: openai.Float(b.temperature),
	}
	if b.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(b.maxTokens))
	}
	return b.first(ctx, params)
}

// Ping sends a short test message and returns the model's reply. The caller
// bounds it with ctx.
func (b *OpenAIBackend) Ping(ctx context.Context) (string, error) {
	return b.first(ctx, openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(b.model),
		Messages:  []openai.ChatCompletionMessageParamUnion{openai.UserMessage(pingMessage)},
		MaxTokens: openai.Int(pingMaxTokens),
	})
}

func (b *OpenAIBackend) first(ctx context.Context, params openai.ChatCompletionNewParams) (string, error) {
	resp, err := b.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("calling chat completions: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completions returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
