package anthropicprovider

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	defaultModel   = "claude-sonnet-4-5"
)

// Provider answers conversational messages through the Anthropic
// Messages API.
type Provider struct {
	client    *anthropic.Client
	baseURL   string
	model     string
	maxTokens int64
}

func NewProvider(token string) *Provider {
	return NewProviderWithBaseURL(token, "")
}

func NewProviderWithBaseURL(token, apiBase string) *Provider {
	baseURL := normalizeBaseURL(apiBase)
	client := anthropic.NewClient(
		option.WithAuthToken(token),
		option.WithBaseURL(baseURL),
	)
	return &Provider{
		client:    &client,
		baseURL:   baseURL,
		model:     defaultModel,
		maxTokens: 1024,
	}
}

// WithModel overrides the model used for replies.
func (p *Provider) WithModel(model string) *Provider {
	if model != "" {
		p.model = model
	}
	return p
}

// WithMaxTokens overrides the reply token budget.
func (p *Provider) WithMaxTokens(n int) *Provider {
	if n > 0 {
		p.maxTokens = int64(n)
	}
	return p
}

func (p *Provider) BaseURL() string {
	return p.baseURL
}

// Reply sends the text as a single-turn user message and returns the
// concatenated text blocks of the response.
func (p *Provider) Reply(ctx context.Context, _ string, text string) (string, error) {
	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: p.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude API call: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}
	return sb.String(), nil
}

func normalizeBaseURL(apiBase string) string {
	base := strings.TrimSpace(apiBase)
	if base == "" {
		return defaultBaseURL
	}

	base = strings.TrimRight(base, "/")
	if b, ok := strings.CutSuffix(base, "/v1"); ok {
		base = b
	}
	if base == "" {
		return defaultBaseURL
	}

	return base
}
