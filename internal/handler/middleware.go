package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"newsdigest/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "sid"

	userContextKey  = "user"
	tokenContextKey = "token"
)

type SessionStore interface {
	CreateSession(ctx context.Context, userID int64) (string, error)
	GetSession(ctx context.Context, token string) (int64, error)
	DeleteSession(ctx context.Context, token string) error
}

// Authenticate attaches the session's user to the request when a valid token
// is present. Requests without one continue anonymously.
func Authenticate(users UserStore, sessions SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.Next()
			return
		}

		userID, err := sessions.GetSession(c.Request.Context(), token)
		if err != nil {
			slog.Error("error reading session", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Session store error"})
			return
		}

		if userID != 0 {
			user, err := users.GetUserByID(c.Request.Context(), userID)
			if err != nil {
				slog.Error("error fetching session user", "user_id", userID, "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
				return
			}
			if user != nil {
				c.Set(userContextKey, user)
				c.Set(tokenContextKey, token)
			}
		}

		c.Next()
	}
}

func RequireUser(c *gin.Context) {
	if currentUser(c) == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
		return
	}
	c.Next()
}

// currentUser returns nil for anonymous requests.
func currentUser(c *gin.Context) *model.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

func sessionToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	token, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return token
}
