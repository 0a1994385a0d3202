package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PingFunc func(ctx context.Context) error

type HealthHandler struct {
	database PingFunc
	cache    PingFunc
}

func NewHealthHandler(database, cache PingFunc) *HealthHandler {
	return &HealthHandler{database: database, cache: cache}
}

func (h *HealthHandler) GetHealth(c *gin.Context) {
	status := http.StatusOK
	res := gin.H{
		"status":   "healthy",
		"database": "connected",
		"cache":    "connected",
	}

	if err := h.database(c.Request.Context()); err != nil {
		status = http.StatusServiceUnavailable
		res["status"] = "unhealthy"
		res["database"] = "disconnected"
	}

	if err := h.cache(c.Request.Context()); err != nil {
		status = http.StatusServiceUnavailable
		res["status"] = "unhealthy"
		res["cache"] = "disconnected"
	}

	c.JSON(status, res)
}
