package news

import "context"

const (
	CategoryGeneral = "general"
	CategorySearch  = "search"

	SortPublishedAt = "publishedAt"
	SortRelevancy   = "relevancy"
)

// Article mirrors the upstream headline provider's article shape plus the
// category assigned by the fetching context.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	Source      Source `json:"source"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
	Category    string `json:"category"`
}

type Source struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type ArticleList struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
}

type HeadlineParams struct {
	Category string
	Page     int
	PageSize int
}

type SearchParams struct {
	Query    string
	Page     int // 0 leaves pagination to the provider
	PageSize int
	From     string
	To       string
	SortBy   string
	Language string
}

type Fetcher interface {
	TopHeadlines(ctx context.Context, apiKey string, params HeadlineParams) (*ArticleList, error)
	Search(ctx context.Context, apiKey string, params SearchParams) (*ArticleList, error)
}
