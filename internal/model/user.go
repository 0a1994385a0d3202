package model

import "time"

// User carries optional per-user provider keys. An empty key means the
// process-wide default applies.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	NewsAPIKey   string
	AIAPIKey     string
	CreatedAt    time.Time
}

// APIKeyUpdate holds the keys to change; nil fields are left untouched and an
// empty string clears the override.
type APIKeyUpdate struct {
	NewsAPIKey *string
	AIAPIKey   *string
}

func (u APIKeyUpdate) Empty() bool {
	return u.NewsAPIKey == nil && u.AIAPIKey == nil
}
