package llm

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestGenerateQueries(t *testing.T) {
	p := newFakeProvider()
	p.replies["v0"] = fakeReply{text: "quantum error correction\n\nqubit startups funding\nIBM quantum roadmap\nextra line"}

	ts := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)
	queries := NewQueryGenerator(p).Generate(context.Background(), "k", []string{"Quantum Computing", "Startups"}, 2, ts)

	assert.Equal(t, []string{"quantum error correction", "qubit startups funding", "IBM quantum roadmap"}, queries)
	assert.Equal(t, true, strings.Contains(p.prompts[0].Text, "Quantum Computing, Startups"))
	assert.Equal(t, true, strings.Contains(p.prompts[0].Text, "page: 2"))
	assert.Equal(t, true, strings.Contains(p.prompts[0].Text, "timestamp: "))
	assert.Equal(t, 256, p.prompts[0].MaxTokens)
}

func TestGenerateQueriesSkipsBlankResponses(t *testing.T) {
	p := newFakeProvider()
	p.replies["v0"] = fakeReply{text: "\n  \n"}
	p.replies["v2"] = fakeReply{text: "1. solar storms"}

	queries := NewQueryGenerator(p).Generate(context.Background(), "k", []string{"Space"}, 1, time.Time{})

	assert.Equal(t, []string{"solar storms"}, queries)
	assert.Equal(t, []string{"v0", "v1", "v2"}, p.callNames())
	assert.Equal(t, false, strings.Contains(p.prompts[0].Text, "timestamp"))
	assert.Equal(t, false, strings.Contains(p.prompts[0].Text, "different from previous"))
}

func TestGenerateQueriesNeverEmpty(t *testing.T) {
	p := newFakeProvider()
	p.replies["v0"] = fakeReply{text: ""}
	p.replies["v1"] = fakeReply{text: "   "}

	ts := time.Date(2026, time.July, 1, 12, 0, 0, 0, time.UTC)
	queries := NewQueryGenerator(p).Generate(context.Background(), "k", []string{"Quantum Computing"}, 3, ts)

	assert.Equal(t, []string{"Quantum Computing 7 3"}, queries)
	assert.Equal(t, 3, len(p.calls))
}

func TestParseQueries(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"bullets", "- alpha\n* beta\n• gamma", []string{"alpha", "beta", "gamma"}},
		{"numbering", "1. alpha\n2) beta", []string{"alpha", "beta"}},
		{"quoted", "\"alpha news\"", []string{"alpha news"}},
		{"keeps leading digits in text", "5G rollout", []string{"5G rollout"}},
		{"leading decimals", "1.5 degree climate target news\n3.5 GHz chip launch\n5.0 earthquake", []string{"1.5 degree climate target news", "3.5 GHz chip launch", "5.0 earthquake"}},
		{"bare number line", "42.", []string{"42."}},
		{"caps at three", "a\nb\nc\nd", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQueries(tt.input))
		})
	}
}

func TestSelectQuery(t *testing.T) {
	queries := []string{"a", "b", "c"}

	assert.Equal(t, "a", SelectQuery(queries, 1))
	assert.Equal(t, "b", SelectQuery(queries, 2))
	assert.Equal(t, "c", SelectQuery(queries, 3))
	assert.Equal(t, "a", SelectQuery(queries, 4))
	assert.Equal(t, "a", SelectQuery(queries, 0))
	assert.Equal(t, "only", SelectQuery([]string{"only"}, 7))
	assert.Equal(t, "", SelectQuery(nil, 1))

	for i := 0; i < 5; i++ {
		assert.Equal(t, SelectQuery(queries, 5), SelectQuery(queries, 5))
	}
}

func TestFallbackQuery(t *testing.T) {
	assert.Equal(t, "Quantum Computing 1", FallbackQuery([]string{"Quantum Computing"}, 1, time.Time{}))
	assert.Equal(t, "AI 12 2", FallbackQuery([]string{"AI", "Robots"}, 2, time.Date(2025, time.December, 9, 0, 0, 0, 0, time.UTC)))
}
