package repository

import (
	"database/sql"
	"strings"
	"testing"

	"newsdigest/internal/model"

	"github.com/go-playground/assert/v2"
)

func TestBuildAPIKeyUpdateBothKeys(t *testing.T) {
	news := " news-key "
	ai := ""

	query, args, err := buildAPIKeyUpdate(7, model.APIKeyUpdate{NewsAPIKey: &news, AIAPIKey: &ai})

	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.HasPrefix(query, "UPDATE users SET news_api_key = $1, ai_api_key = $2 WHERE id = $3 RETURNING"))
	assert.Equal(t, 3, len(args))
	assert.Equal(t, sql.NullString{String: "news-key", Valid: true}, args[0])
	assert.Equal(t, sql.NullString{}, args[1])
	assert.Equal(t, int64(7), args[2])
}

func TestBuildAPIKeyUpdateSingleKey(t *testing.T) {
	ai := "ai-key"

	query, args, err := buildAPIKeyUpdate(3, model.APIKeyUpdate{AIAPIKey: &ai})

	assert.Equal(t, nil, err)
	assert.Equal(t, false, strings.Contains(query, "news_api_key ="))
	assert.Equal(t, true, strings.Contains(query, "ai_api_key = $1"))
	assert.Equal(t, 2, len(args))
}
