package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"newsdigest/internal/apperr"
)

const (
	summaryTimeout    = 15 * time.Second
	legacyTextLimit   = 1000
	fallbackTextLimit = 150
)

var summaryPrompts = []string{
	`Provide a concise, informative summary of this news article:
Title: %s
Content: %s

Format your response in markdown with:
1. A brief overview (2-3 sentences)
2. A bullet list with 3-5 key points
3. Any important implications or context`,

	`Summarize this news article in a clear, concise way:
Title: %s
Content: %s

Keep it brief but informative.`,

	`Create a simple summary of this article:
Title: %s
Content: %s`,
}

const legacySummaryPrompt = "Summarize this news article: %s - %s"

type SummaryRequest struct {
	Title       string
	Content     string
	Description string
	URL         string
}

// SummaryResult always carries a summary. Fallback is set when the text was
// synthesized locally, with Error explaining why generation failed.
type SummaryResult struct {
	Summary  string
	Error    string
	Fallback bool
	Variant  string
	Attempts int
}

type Summarizer struct {
	provider Provider
	chain    *Chain
}

func NewSummarizer(provider Provider) *Summarizer {
	return &Summarizer{
		provider: provider,
		chain:    NewChain(provider, summaryTimeout),
	}
}

// Summarize only fails on invalid input. Provider failures degrade to a
// templated summary.
func (s *Summarizer) Summarize(ctx context.Context, apiKey string, req SummaryRequest) (*SummaryResult, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || (strings.TrimSpace(req.Content) == "" && strings.TrimSpace(req.Description) == "") {
		return nil, apperr.Validation("Article title and content or description are required")
	}

	text := req.Content
	if strings.TrimSpace(text) == "" {
		text = req.Description
	}

	outcome, err := s.chain.Run(ctx, apiKey, s.steps(title, text), nonEmpty)
	if err == nil {
		return &SummaryResult{
			Summary:  outcome.Text,
			Variant:  outcome.Variant,
			Attempts: outcome.Attempts,
		}, nil
	}

	return &SummaryResult{
		Summary:  FallbackSummary(title, req.Description, req.Content),
		Error:    fmt.Sprintf("Failed to generate an AI summary: %v", err),
		Fallback: true,
		Attempts: outcome.Attempts,
	}, nil
}

func (s *Summarizer) steps(title, text string) []Step {
	variants := s.provider.Variants()
	steps := make([]Step, 0, len(variants)+1)

	for i, target := range variants {
		tmpl := summaryPrompts[min(i, len(summaryPrompts)-1)]
		steps = append(steps, Step{
			Target: target,
			Prompt: Prompt{
				Text:        fmt.Sprintf(tmpl, title, text),
				Temperature: 0.2,
				MaxTokens:   1024,
				TopP:        0.95,
				TopK:        40,
			},
		})
	}

	steps = append(steps, Step{
		Target: s.provider.Legacy(),
		Prompt: Prompt{
			Text:        fmt.Sprintf(legacySummaryPrompt, title, truncateRunes(text, legacyTextLimit)),
			Temperature: 0.2,
			MaxTokens:   800,
		},
	})

	return steps
}

// FallbackSummary builds the deterministic markdown summary used when every
// provider attempt failed.
func FallbackSummary(title, description, content string) string {
	excerpt := strings.TrimSpace(description)
	if excerpt == "" {
		excerpt = strings.TrimSpace(content)
	}
	excerpt = truncateRunes(excerpt, fallbackTextLimit)

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Summary of \"%s\"\n\n", title)
	if excerpt != "" {
		sb.WriteString(excerpt + "...\n\n")
	}
	sb.WriteString("Key points:\n")
	fmt.Fprintf(&sb, "* This article discusses %s\n", title)
	sb.WriteString("* The content covers important information about the topic\n")
	sb.WriteString("* For more details, read the full article")
	return sb.String()
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
