package llm

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	queryTimeout = 10 * time.Second
	maxQueries   = 3
)

type QueryGenerator struct {
	provider Provider
	chain    *Chain
}

func NewQueryGenerator(provider Provider) *QueryGenerator {
	return &QueryGenerator{
		provider: provider,
		chain:    NewChain(provider, queryTimeout),
	}
}

// Generate turns interests into 1 to 3 search queries. It never returns an
// empty list: when no variant yields a usable line it synthesizes one query.
func (g *QueryGenerator) Generate(ctx context.Context, apiKey string, interests []string, page int, ts time.Time) []string {
	if page < 1 {
		page = 1
	}

	prompt := Prompt{
		Text:        queryPrompt(interests, page, ts),
		Temperature: 0.7,
		MaxTokens:   256,
		TopP:        0.9,
		TopK:        40,
	}

	variants := g.provider.Variants()
	steps := make([]Step, len(variants))
	for i, target := range variants {
		steps[i] = Step{Target: target, Prompt: prompt}
	}

	outcome, err := g.chain.Run(ctx, apiKey, steps, func(text string) bool {
		return len(ParseQueries(text)) > 0
	})
	if err == nil {
		return ParseQueries(outcome.Text)
	}

	return []string{FallbackQuery(interests, page, ts)}
}

func queryPrompt(interests []string, page int, ts time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "I'm interested in the following topics: %s.\n", strings.Join(interests, ", "))
	sb.WriteString("Please generate 3 diverse, specific, well-formed search queries that would help find the latest news articles about these topics.\n")
	if !ts.IsZero() {
		fmt.Fprintf(&sb, "Make these queries optimized for freshness (timestamp: %d).\n", ts.UnixMilli())
	}
	if page > 1 {
		fmt.Fprintf(&sb, "These should be different from previous queries (page: %d).\n", page)
	}
	sb.WriteString("Return only the search queries, each on a new line, without any other text, numbering or explanation.")
	return sb.String()
}

// ParseQueries splits generated text into at most three non-blank queries.
func ParseQueries(text string) []string {
	var queries []string
	for _, line := range strings.Split(text, "\n") {
		line = cleanQueryLine(line)
		if line == "" {
			continue
		}
		queries = append(queries, line)
		if len(queries) == maxQueries {
			break
		}
	}
	return queries
}

func cleanQueryLine(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "•-*")
	line = strings.TrimSpace(line)

	// "1. " or "2) " style numbering
	digits := 0
	for digits < len(line) && line[digits] >= '0' && line[digits] <= '9' {
		digits++
	}
	// the delimiter must be followed by a space so "1.5 degree" stays intact
	if digits > 0 && digits+1 < len(line) && (line[digits] == '.' || line[digits] == ')') && line[digits+1] == ' ' {
		line = strings.TrimSpace(line[digits+1:])
	}

	if len(line) >= 2 && line[0] == '"' && line[len(line)-1] == '"' {
		line = strings.TrimSpace(line[1 : len(line)-1])
	}
	return line
}

// SelectQuery picks the query for a page, cycling through the list.
func SelectQuery(queries []string, page int) string {
	if len(queries) == 0 {
		return ""
	}
	if page < 1 {
		page = 1
	}
	return queries[(page-1)%len(queries)]
}

// FallbackQuery builds "<first interest> <month> <page>" so that pagination
// still varies without generated queries. The month is omitted when ts is zero.
func FallbackQuery(interests []string, page int, ts time.Time) string {
	parts := make([]string, 0, 3)
	if len(interests) > 0 {
		parts = append(parts, strings.TrimSpace(interests[0]))
	}
	if !ts.IsZero() {
		parts = append(parts, strconv.Itoa(int(ts.UTC().Month())))
	}
	parts = append(parts, strconv.Itoa(page))
	return strings.Join(parts, " ")
}
