package llm

import "context"

// Target identifies one endpoint variant of a generative-text provider.
type Target struct {
	Name    string
	Version string // API version segment, only meaningful for Gemini
	Model   string
	Legacy  bool // use the provider's alternate request shape
}

type Prompt struct {
	Text        string
	Temperature float64
	MaxTokens   int
	TopP        float64
	TopK        int
}

// Provider is a generative-text backend. The API key is passed per call so
// requests can run with the caller's own credential.
type Provider interface {
	Name() string
	// Variants lists the endpoint variants in preference order.
	Variants() []Target
	Legacy() Target
	Generate(ctx context.Context, apiKey string, target Target, prompt Prompt) (string, error)
}
