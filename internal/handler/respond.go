package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"newsdigest/internal/apperr"
	"newsdigest/internal/credential"
	"newsdigest/internal/model"

	"github.com/gin-gonic/gin"
)

type KeyResolver interface {
	Resolve(user *model.User, kind credential.Kind) (string, error)
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// respondError maps the error taxonomy onto status codes. prefix is put in
// front of upstream and unexpected failures.
func respondError(c *gin.Context, err error, prefix string) {
	var validation *apperr.ValidationError
	var config *apperr.ConfigurationError
	var provider *apperr.ProviderError

	switch {
	case errors.Is(err, apperr.ErrUnauthenticated):
		respondMessage(c, http.StatusUnauthorized, "Not authenticated")
	case errors.As(err, &validation):
		respondMessage(c, http.StatusBadRequest, validation.Message)
	case errors.As(err, &config):
		respondMessage(c, http.StatusBadRequest, config.Message)
	case errors.As(err, &provider):
		status := provider.Status
		if status < 400 {
			status = http.StatusInternalServerError
		}
		slog.Warn("provider error", "provider", provider.Provider, "status", provider.Status, "error", err)
		respondMessage(c, status, prefix+provider.Message)
	default:
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		respondMessage(c, http.StatusInternalServerError, prefix+err.Error())
	}
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	param := c.Query(name)

	if param == "" {
		return defaultValue
	}

	parsedValue, err := strconv.Atoi(param)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", param, "error", err)
		return defaultValue
	}

	return parsedValue
}

func getQueryPage(c *gin.Context) int {
	page := getQueryInt("page", 1, c)
	if page < 1 {
		slog.Warn("invalid query parameter, using default", "param", "page", "value", page, "default", 1)
		return 1
	}
	return page
}

func getQueryPageSize(c *gin.Context) int {
	const (
		defaultPageSize = 10
		maxPageSize     = 100
	)

	pageSize := getQueryInt("pageSize", defaultPageSize, c)
	if pageSize < 1 {
		slog.Warn("invalid query parameter, using default", "param", "pageSize", "value", pageSize, "default", defaultPageSize)
		return defaultPageSize
	}

	if pageSize > maxPageSize {
		slog.Warn("query parameter exceeds max, clamping", "param", "pageSize", "value", pageSize, "max", maxPageSize)
		return maxPageSize
	}

	return pageSize
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}
