package handler

import (
	"time"

	"newsdigest/internal/model"
	"newsdigest/pkg/news"
)

type UserResponse struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	HasNewsAPIKey bool   `json:"hasNewsApiKey"`
	HasAIAPIKey   bool   `json:"hasAiApiKey"`
	CreatedAt     string `json:"createdAt"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type InterestResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt"`
}

type SavedArticleResponse struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	URL         string      `json:"url"`
	URLToImage  string      `json:"urlToImage"`
	Source      news.Source `json:"source"`
	PublishedAt string      `json:"publishedAt,omitempty"`
	Category    string      `json:"category"`
	SavedAt     string      `json:"savedAt"`
}

type SummaryResponse struct {
	Summary  string `json:"summary"`
	Error    string `json:"error,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		HasNewsAPIKey: u.NewsAPIKey != "",
		HasAIAPIKey:   u.AIAPIKey != "",
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
	}
}

func toInterestResponse(i model.Interest) InterestResponse {
	return InterestResponse{
		ID:        i.ID,
		Name:      i.Name,
		Active:    i.Active,
		CreatedAt: i.CreatedAt.Format(time.RFC3339),
	}
}

func toSavedArticleResponse(a model.SavedArticle) SavedArticleResponse {
	res := SavedArticleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		URL:         a.URL,
		URLToImage:  a.ImageURL,
		Source:      news.Source{Name: a.Source},
		Category:    a.Category,
		SavedAt:     a.SavedAt.Format(time.RFC3339),
	}
	if a.PublishedAt != nil {
		res.PublishedAt = a.PublishedAt.Format(time.RFC3339)
	}
	return res
}
