package credential

import (
	"strings"

	"newsdigest/internal/apperr"
	"newsdigest/internal/model"
)

type Kind int

const (
	News Kind = iota
	AI
)

func (k Kind) String() string {
	switch k {
	case News:
		return "news"
	case AI:
		return "ai"
	default:
		return "unknown"
	}
}

// Defaults are the process-wide keys used when a user has no override.
type Defaults struct {
	NewsAPIKey string
	AIAPIKey   string
}

type Resolver struct {
	defaults Defaults
}

func NewResolver(defaults Defaults) *Resolver {
	return &Resolver{defaults: defaults}
}

// Resolve returns the key for the given provider kind. user may be nil.
func (r *Resolver) Resolve(user *model.User, kind Kind) (string, error) {
	var userKey, defaultKey, message string

	switch kind {
	case News:
		defaultKey = r.defaults.NewsAPIKey
		message = "News API key is required. Please add it in your profile settings."
		if user != nil {
			userKey = user.NewsAPIKey
		}
	case AI:
		defaultKey = r.defaults.AIAPIKey
		message = "AI API key is required. Please add it in your profile settings."
		if user != nil {
			userKey = user.AIAPIKey
		}
	}

	if key := strings.TrimSpace(userKey); key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(defaultKey); key != "" {
		return key, nil
	}

	return "", &apperr.ConfigurationError{Provider: kind.String(), Message: message}
}
