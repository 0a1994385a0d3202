package handler

import (
	"net/http"

	"newsdigest/internal/credential"
	"newsdigest/pkg/news"

	"github.com/gin-gonic/gin"
)

type NewsHandler struct {
	fetcher news.Fetcher
	keys    KeyResolver
}

func NewNewsHandler(fetcher news.Fetcher, keys KeyResolver) *NewsHandler {
	return &NewsHandler{fetcher: fetcher, keys: keys}
}

func (h *NewsHandler) GetTopHeadlines(c *gin.Context) {
	apiKey, err := h.keys.Resolve(currentUser(c), credential.News)
	if err != nil {
		respondError(c, err, "")
		return
	}

	list, err := h.fetcher.TopHeadlines(c.Request.Context(), apiKey, news.HeadlineParams{
		Category: c.Query("category"),
		Page:     getQueryPage(c),
		PageSize: getQueryPageSize(c),
	})
	if err != nil {
		respondError(c, err, "Error loading news: ")
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *NewsHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondMessage(c, http.StatusBadRequest, "Search query is required")
		return
	}

	apiKey, err := h.keys.Resolve(currentUser(c), credential.News)
	if err != nil {
		respondError(c, err, "")
		return
	}

	list, err := h.fetcher.Search(c.Request.Context(), apiKey, news.SearchParams{
		Query:    query,
		Page:     getQueryPage(c),
		PageSize: getQueryPageSize(c),
		From:     c.Query("from"),
		To:       c.Query("to"),
		SortBy:   c.DefaultQuery("sortBy", news.SortPublishedAt),
	})
	if err != nil {
		respondError(c, err, "Error searching news: ")
		return
	}

	c.JSON(http.StatusOK, list)
}
