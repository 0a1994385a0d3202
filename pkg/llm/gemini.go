package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GeminiClient sends the versioned variants through the genai SDK and the
// legacy variant as a raw request with the deprecated prompt shape.
type GeminiClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewGeminiClient(baseURL string) *GeminiClient {
	return &GeminiClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *GeminiClient) Name() string {
	return "gemini"
}

func (c *GeminiClient) Variants() []Target {
	return []Target{
		{Name: "v1beta/gemini-pro", Version: "v1beta", Model: "gemini-pro"},
		{Name: "v1/gemini-pro", Version: "v1", Model: "gemini-pro"},
		{Name: "v1beta/gemini-1.5-pro", Version: "v1beta", Model: "gemini-1.5-pro"},
	}
}

func (c *GeminiClient) Legacy() Target {
	return Target{Name: "legacy/v1/gemini-pro", Version: "v1", Model: "gemini-pro", Legacy: true}
}

func (c *GeminiClient) Generate(ctx context.Context, apiKey string, target Target, prompt Prompt) (string, error) {
	if target.Legacy {
		return c.generateLegacy(ctx, apiKey, target, prompt)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    c.baseURL + "/",
			APIVersion: target.Version,
		},
	})
	if err != nil {
		return "", fmt.Errorf("gemini client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(prompt.Temperature)),
		MaxOutputTokens: int32(prompt.MaxTokens),
	}
	if prompt.TopP > 0 {
		config.TopP = genai.Ptr(float32(prompt.TopP))
	}
	if prompt.TopK > 0 {
		config.TopK = genai.Ptr(float32(prompt.TopK))
	}

	resp, err := client.Models.GenerateContent(ctx, target.Model, genai.Text(prompt.Text), config)
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", target.Name, err)
	}

	return strings.TrimSpace(resp.Text()), nil
}

type legacyRequest struct {
	Prompt          legacyPrompt `json:"prompt"`
	Temperature     float64      `json:"temperature"`
	MaxOutputTokens int          `json:"maxOutputTokens"`
}

type legacyPrompt struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClient) generateLegacy(ctx context.Context, apiKey string, target Target, prompt Prompt) (string, error) {
	body, err := json.Marshal(legacyRequest{
		Prompt:          legacyPrompt{Text: prompt.Text},
		Temperature:     prompt.Temperature,
		MaxOutputTokens: prompt.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/models/%s:generateContent?key=%s",
		c.baseURL, target.Version, target.Model, url.QueryEscape(apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	return strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text), nil
}
