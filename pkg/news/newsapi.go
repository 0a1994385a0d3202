package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"newsdigest/internal/apperr"
)

const providerName = "newsapi"

// NewsAPIClient talks to a NewsAPI-compatible headlines provider. The API key
// is supplied per call so each request can use the caller's own credential.
type NewsAPIClient struct {
	baseURL    string
	country    string
	httpClient *http.Client
	now        func() time.Time
}

func NewNewsAPIClient(baseURL string) *NewsAPIClient {
	return &NewsAPIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		country:    "us",
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

func (c *NewsAPIClient) TopHeadlines(ctx context.Context, apiKey string, params HeadlineParams) (*ArticleList, error) {
	q := url.Values{}
	q.Set("country", c.country)
	if params.Category != "" {
		q.Set("category", params.Category)
	}
	setPaging(q, params.Page, params.PageSize)

	list, err := c.get(ctx, "/top-headlines", apiKey, q)
	if err != nil {
		return nil, err
	}

	category := params.Category
	if category == "" {
		category = CategoryGeneral
	}
	c.normalize(list, category)

	return list, nil
}

func (c *NewsAPIClient) Search(ctx context.Context, apiKey string, params SearchParams) (*ArticleList, error) {
	if strings.TrimSpace(params.Query) == "" {
		return nil, apperr.Validation("Search query is required")
	}

	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = SortPublishedAt
	}

	q := url.Values{}
	q.Set("q", params.Query)
	q.Set("sortBy", sortBy)
	if params.From != "" {
		q.Set("from", params.From)
	}
	if params.To != "" {
		q.Set("to", params.To)
	}
	if params.Language != "" {
		q.Set("language", params.Language)
	}
	setPaging(q, params.Page, params.PageSize)

	list, err := c.get(ctx, "/everything", apiKey, q)
	if err != nil {
		return nil, err
	}

	c.normalize(list, CategorySearch)

	return list, nil
}

// normalize tags every article and backfills a missing publish time with now.
func (c *NewsAPIClient) normalize(list *ArticleList, category string) {
	if list.Articles == nil {
		list.Articles = []Article{}
	}
	now := c.now().UTC().Format(time.RFC3339Nano)
	for i := range list.Articles {
		list.Articles[i].Category = category
		if strings.TrimSpace(list.Articles[i].PublishedAt) == "" {
			list.Articles[i].PublishedAt = now
		}
	}
}

func (c *NewsAPIClient) get(ctx context.Context, path, apiKey string, q url.Values) (*ArticleList, error) {
	if apiKey == "" {
		return nil, &apperr.ConfigurationError{Provider: "news", Message: "News API key is required."}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}
	req.Header.Set("X-Api-Key", apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperr.ProviderError{Provider: providerName, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperr.ProviderError{Provider: providerName, Status: resp.StatusCode, Message: err.Error(), Err: err}
	}

	var raw struct {
		ArticleList
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	decodeErr := json.Unmarshal(body, &raw)

	if resp.StatusCode < 200 || resp.StatusCode > 299 || raw.Status == "error" {
		message := raw.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		status := resp.StatusCode
		if status >= 200 && status <= 299 {
			status = http.StatusBadGateway
		}
		return nil, &apperr.ProviderError{Provider: providerName, Status: status, Message: message}
	}

	if decodeErr != nil {
		return nil, &apperr.ProviderError{
			Provider: providerName,
			Status:   http.StatusBadGateway,
			Message:  "malformed response: " + decodeErr.Error(),
			Err:      decodeErr,
		}
	}

	list := raw.ArticleList
	return &list, nil
}

func setPaging(q url.Values, page, pageSize int) {
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(pageSize))
	}
}
