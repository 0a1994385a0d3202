package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIClient struct {
	client *openai.Client
}

func NewOpenAIClient(opts ...option.RequestOption) *OpenAIClient {
	client := openai.NewClient(opts...)
	return &OpenAIClient{client: &client}
}

func (c *OpenAIClient) Name() string {
	return "openai"
}

func (c *OpenAIClient) Variants() []Target {
	return []Target{
		{Name: "gpt-4o-mini", Model: string(openai.ChatModelGPT4oMini)},
		{Name: "gpt-4.1-mini", Model: string(openai.ChatModelGPT4_1Mini)},
		{Name: "gpt-4o", Model: string(openai.ChatModelGPT4o)},
	}
}

func (c *OpenAIClient) Legacy() Target {
	return Target{Name: "legacy/gpt-4o-mini", Model: string(openai.ChatModelGPT4oMini), Legacy: true}
}

func (c *OpenAIClient) Generate(ctx context.Context, apiKey string, target Target, prompt Prompt) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(target.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt.Text),
		},
	}
	if prompt.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(prompt.MaxTokens))
	}
	if !target.Legacy {
		params.Temperature = openai.Float(prompt.Temperature)
		if prompt.TopP > 0 {
			params.TopP = openai.Float(prompt.TopP)
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, params, option.WithAPIKey(apiKey))
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
