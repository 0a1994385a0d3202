package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"newsdigest/internal/model"
	"newsdigest/pkg/news"

	"github.com/gin-gonic/gin"
)

type SavedArticleStore interface {
	GetSavedArticles(ctx context.Context, userID int64) ([]model.SavedArticle, error)
	SaveArticle(ctx context.Context, article *model.SavedArticle) error
	DeleteSavedArticle(ctx context.Context, id, userID int64) error
}

type SavedArticleHandler struct {
	repository SavedArticleStore
}

func NewSavedArticleHandler(repository SavedArticleStore) *SavedArticleHandler {
	return &SavedArticleHandler{repository: repository}
}

func (h *SavedArticleHandler) GetSavedArticles(c *gin.Context) {
	user := currentUser(c)

	articles, err := h.repository.GetSavedArticles(c.Request.Context(), user.ID)
	if err != nil {
		slog.Error("error fetching saved articles", "user_id", user.ID, "error", err)
		respondMessage(c, http.StatusInternalServerError, "Database error")
		return
	}

	res := make([]SavedArticleResponse, 0, len(articles))
	for _, a := range articles {
		res = append(res, toSavedArticleResponse(a))
	}

	c.JSON(http.StatusOK, res)
}

// SaveArticle accepts the same article shape the news endpoints return.
func (h *SavedArticleHandler) SaveArticle(c *gin.Context) {
	var req news.Article
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.URL) == "" {
		respondMessage(c, http.StatusBadRequest, "Article title and url are required")
		return
	}

	article := &model.SavedArticle{
		UserID:      currentUser(c).ID,
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		ImageURL:    req.URLToImage,
		Source:      req.Source.Name,
		Category:    req.Category,
	}
	if t, err := time.Parse(time.RFC3339, req.PublishedAt); err == nil {
		article.PublishedAt = &t
	}

	if err := h.repository.SaveArticle(c.Request.Context(), article); err != nil {
		slog.Error("error saving article", "user_id", article.UserID, "url", article.URL, "error", err)
		respondMessage(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusCreated, toSavedArticleResponse(*article))
}

func (h *SavedArticleHandler) DeleteSavedArticle(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	user := currentUser(c)
	if err := h.repository.DeleteSavedArticle(c.Request.Context(), id, user.ID); err != nil {
		slog.Error("error deleting saved article", "id", id, "user_id", user.ID, "error", err)
		respondMessage(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.Status(http.StatusNoContent)
}
