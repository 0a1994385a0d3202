package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicClient struct {
	client *anthropic.Client
}

func NewAnthropicClient(opts ...option.RequestOption) *AnthropicClient {
	client := anthropic.NewClient(opts...)
	return &AnthropicClient{client: &client}
}

func (c *AnthropicClient) Name() string {
	return "anthropic"
}

func (c *AnthropicClient) Variants() []Target {
	return []Target{
		{Name: "claude-haiku-4-5", Model: "claude-haiku-4-5"},
		{Name: "claude-sonnet-4-5", Model: "claude-sonnet-4-5"},
		{Name: "claude-3-5-haiku", Model: "claude-3-5-haiku-latest"},
	}
}

func (c *AnthropicClient) Legacy() Target {
	return Target{Name: "legacy/claude-haiku-4-5", Model: "claude-haiku-4-5", Legacy: true}
}

func (c *AnthropicClient) Generate(ctx context.Context, apiKey string, target Target, prompt Prompt) (string, error) {
	maxTokens := int64(prompt.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(target.Model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.Text)),
		},
	}
	if !target.Legacy {
		params.Temperature = anthropic.Float(prompt.Temperature)
		if prompt.TopK > 0 {
			params.TopK = anthropic.Int(int64(prompt.TopK))
		}
	}

	resp, err := c.client.Messages.New(ctx, params, option.WithAPIKey(apiKey))
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("no response from anthropic")
	}

	return strings.TrimSpace(sb.String()), nil
}
