// Package apiclient is a small typed client for the newsdigest JSON API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"newsdigest/pkg/news"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

type User struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	HasNewsAPIKey bool   `json:"hasNewsApiKey"`
	HasAIAPIKey   bool   `json:"hasAiApiKey"`
}

type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type Interest struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type InterestNews struct {
	news.ArticleList
	SearchQuery string `json:"searchQuery"`
	Fallback    bool   `json:"fallback"`
}

type Summary struct {
	Summary  string `json:"summary"`
	Error    string `json:"error"`
	Fallback bool   `json:"fallback"`
}

// Login opens a session and makes the client use its token.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	var s Session
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &s); err != nil {
		return nil, err
	}
	c.token = s.Token
	return &s, nil
}

func (c *Client) Interests(ctx context.Context) ([]Interest, error) {
	var interests []Interest
	if err := c.do(ctx, http.MethodGet, "/api/interests", nil, &interests); err != nil {
		return nil, err
	}
	return interests, nil
}

func (c *Client) TopHeadlines(ctx context.Context, category string, page, pageSize int) (*news.ArticleList, error) {
	q := url.Values{}
	if category != "" {
		q.Set("category", category)
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))

	var list news.ArticleList
	if err := c.do(ctx, http.MethodGet, "/api/news/top-headlines?"+q.Encode(), nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) NewsForInterests(ctx context.Context, interests []string, page int, ts time.Time) (*InterestNews, error) {
	body := map[string]any{
		"interests": interests,
		"page":      page,
		"timestamp": ts.UnixMilli(),
	}

	var res InterestNews
	if err := c.do(ctx, http.MethodPost, "/api/ai/generate-news-for-interests", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Summarize(ctx context.Context, title, content, description string) (*Summary, error) {
	body := map[string]string{
		"title":       title,
		"content":     content,
		"description": description,
	}

	var res Summary
	if err := c.do(ctx, http.MethodPost, "/api/ai/summarize-article", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e struct {
			Message string `json:"message"`
		}
		json.Unmarshal(data, &e)
		if e.Message == "" {
			e.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: e.Message}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
