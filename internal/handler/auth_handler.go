package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"newsdigest/internal/model"
	"newsdigest/internal/repository"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateAPIKeys(ctx context.Context, id int64, upd model.APIKeyUpdate) (*model.User, error)
}

type AuthHandler struct {
	users      UserStore
	sessions   SessionStore
	sessionTTL time.Duration
}

func NewAuthHandler(users UserStore, sessions SessionStore, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, sessionTTL: sessionTTL}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *credentialsRequest) valid() bool {
	r.Username = strings.TrimSpace(r.Username)
	return r.Username != "" && r.Password != ""
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.valid() {
		respondMessage(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("error hashing password", "error", err)
		respondMessage(c, http.StatusInternalServerError, "Failed to register")
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), req.Username, string(hash))
	if errors.Is(err, repository.ErrDuplicateUsername) {
		respondMessage(c, http.StatusConflict, "Username already exists")
		return
	}
	if err != nil {
		slog.Error("error creating user", "username", req.Username, "error", err)
		respondMessage(c, http.StatusInternalServerError, "Database error")
		return
	}

	h.startSession(c, http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.valid() {
		respondMessage(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.users.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		slog.Error("error fetching user", "username", req.Username, "error", err)
		respondMessage(c, http.StatusInternalServerError, "Database error")
		return
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		respondMessage(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	h.startSession(c, http.StatusOK, user)
}

func (h *AuthHandler) startSession(c *gin.Context, status int, user *model.User) {
	token, err := h.sessions.CreateSession(c.Request.Context(), user.ID)
	if err != nil {
		slog.Error("error creating session", "user_id", user.ID, "error", err)
		respondMessage(c, http.StatusInternalServerError, "Session store error")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(h.sessionTTL.Seconds()), "/", "", false, true)
	c.JSON(status, AuthResponse{User: toUserResponse(user), Token: token})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if token := c.GetString(tokenContextKey); token != "" {
		if err := h.sessions.DeleteSession(c.Request.Context(), token); err != nil {
			slog.Error("error deleting session", "error", err)
			respondMessage(c, http.StatusInternalServerError, "Session store error")
			return
		}
	}

	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	respondMessage(c, http.StatusOK, "Logged out")
}

func (h *AuthHandler) GetUser(c *gin.Context) {
	c.JSON(http.StatusOK, toUserResponse(currentUser(c)))
}

type updateKeysRequest struct {
	NewsAPIKey *string `json:"newsApiKey"`
	AIAPIKey   *string `json:"aiApiKey"`
}

func (h *AuthHandler) UpdateUser(c *gin.Context) {
	var req updateKeysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user := currentUser(c)
	updated, err := h.users.UpdateAPIKeys(c.Request.Context(), user.ID, model.APIKeyUpdate{
		NewsAPIKey: req.NewsAPIKey,
		AIAPIKey:   req.AIAPIKey,
	})
	if err != nil {
		slog.Error("error updating api keys", "user_id", user.ID, "error", err)
		respondMessage(c, http.StatusInternalServerError, "Database error")
		return
	}

	if updated == nil {
		respondMessage(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, toUserResponse(updated))
}
