package model

import "time"

// SavedArticle is a user's denormalized copy of a fetched article. It lives
// independently of the upstream article.
type SavedArticle struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	URL         string
	ImageURL    string
	Source      string
	Category    string
	PublishedAt *time.Time
	SavedAt     time.Time
}

type Interest struct {
	ID        int64
	UserID    int64
	Name      string
	Active    bool
	CreatedAt time.Time
}
