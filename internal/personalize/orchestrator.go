package personalize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"newsdigest/internal/apperr"
	"newsdigest/internal/credential"
	"newsdigest/internal/model"
	"newsdigest/pkg/llm"
	"newsdigest/pkg/news"
)

const (
	pageSize = 10
	language = "en"
)

type Searcher interface {
	Search(ctx context.Context, apiKey string, params news.SearchParams) (*news.ArticleList, error)
}

type QueryGenerator interface {
	Generate(ctx context.Context, apiKey string, interests []string, page int, ts time.Time) []string
}

type KeyResolver interface {
	Resolve(user *model.User, kind credential.Kind) (string, error)
}

type Request struct {
	User      *model.User
	Interests []string
	Page      int
	Timestamp time.Time
}

// Result is a search result list annotated with the query that produced it.
type Result struct {
	news.ArticleList
	SearchQuery string `json:"searchQuery"`
	Fallback    bool   `json:"fallback,omitempty"`
}

type Orchestrator struct {
	keys     KeyResolver
	queries  QueryGenerator
	searcher Searcher
}

func NewOrchestrator(keys KeyResolver, queries QueryGenerator, searcher Searcher) *Orchestrator {
	return &Orchestrator{keys: keys, queries: queries, searcher: searcher}
}

// NewsForInterests finds articles for the given interests. A failed primary
// search is retried once with the first interest as a plain relevancy query.
func (o *Orchestrator) NewsForInterests(ctx context.Context, req Request) (*Result, error) {
	newsKey, err := o.keys.Resolve(req.User, credential.News)
	if err != nil {
		return nil, err
	}
	aiKey, err := o.keys.Resolve(req.User, credential.AI)
	if err != nil {
		return nil, err
	}

	interests := cleanInterests(req.Interests)
	if len(interests) == 0 {
		return nil, apperr.Validation("At least one interest is required")
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	category := strings.Join(interests, ", ")

	queries := o.queries.Generate(ctx, aiKey, interests, page, req.Timestamp)
	query := llm.SelectQuery(queries, page)

	list, err := o.searcher.Search(ctx, newsKey, news.SearchParams{
		Query:    query,
		Page:     page,
		PageSize: pageSize,
		SortBy:   news.SortPublishedAt,
		Language: language,
	})
	if err == nil {
		return annotate(list, category, query, false), nil
	}

	slog.Warn("interest search failed, retrying with direct query", "query", query, "page", page, "error", err)

	list, err = o.searcher.Search(ctx, newsKey, news.SearchParams{
		Query:    interests[0],
		SortBy:   news.SortRelevancy,
		Language: language,
	})
	if err != nil {
		return nil, fmt.Errorf("fallback search for %q: %w", interests[0], err)
	}

	return annotate(list, category, interests[0], true), nil
}

func annotate(list *news.ArticleList, category, query string, fallback bool) *Result {
	res := &Result{ArticleList: *list, SearchQuery: query, Fallback: fallback}
	for i := range res.Articles {
		res.Articles[i].Category = category
	}
	return res
}

func cleanInterests(interests []string) []string {
	var cleaned []string
	for _, interest := range interests {
		if s := strings.TrimSpace(interest); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return cleaned
}
