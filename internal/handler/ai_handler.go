package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"newsdigest/internal/apperr"
	"newsdigest/internal/credential"
	"newsdigest/internal/personalize"
	"newsdigest/pkg/llm"

	"github.com/gin-gonic/gin"
)

type Summarizer interface {
	Summarize(ctx context.Context, apiKey string, req llm.SummaryRequest) (*llm.SummaryResult, error)
}

type InterestNews interface {
	NewsForInterests(ctx context.Context, req personalize.Request) (*personalize.Result, error)
}

type AIHandler struct {
	summarizer Summarizer
	news       InterestNews
	keys       KeyResolver
}

func NewAIHandler(summarizer Summarizer, news InterestNews, keys KeyResolver) *AIHandler {
	return &AIHandler{summarizer: summarizer, news: news, keys: keys}
}

type summarizeRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

func (h *AIHandler) SummarizeArticle(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	apiKey, err := h.keys.Resolve(currentUser(c), credential.AI)
	if err != nil {
		respondError(c, err, "")
		return
	}

	res, err := h.summarizer.Summarize(c.Request.Context(), apiKey, llm.SummaryRequest{
		Title:       req.Title,
		Content:     req.Content,
		Description: req.Description,
		URL:         req.URL,
	})
	if err != nil {
		respondError(c, err, "")
		return
	}

	slog.Info("article summarized", "url", req.URL, "variant", res.Variant, "attempts", res.Attempts, "fallback", res.Fallback)

	c.JSON(http.StatusOK, SummaryResponse{
		Summary:  res.Summary,
		Error:    res.Error,
		Fallback: res.Fallback,
	})
}

type interestNewsRequest struct {
	Interests []string `json:"interests"`
	Page      int      `json:"page"`
	// Timestamp is a client cache-busting value in Unix milliseconds.
	Timestamp int64 `json:"timestamp"`
}

func (h *AIHandler) GenerateNewsForInterests(c *gin.Context) {
	var req interestNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var ts time.Time
	if req.Timestamp > 0 {
		ts = time.UnixMilli(req.Timestamp)
	}

	res, err := h.news.NewsForInterests(c.Request.Context(), personalize.Request{
		User:      currentUser(c),
		Interests: req.Interests,
		Page:      req.Page,
		Timestamp: ts,
	})

	var validation *apperr.ValidationError
	var config *apperr.ConfigurationError
	if errors.As(err, &validation) || errors.As(err, &config) {
		respondError(c, err, "")
		return
	}

	if err != nil {
		slog.Error("error generating news for interests", "interests", req.Interests, "error", err)
		respondMessage(c, http.StatusInternalServerError, "Failed to generate news for interests")
		return
	}

	c.JSON(http.StatusOK, res)
}
