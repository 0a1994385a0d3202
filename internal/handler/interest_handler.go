package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"newsdigest/internal/model"

	"github.com/gin-gonic/gin"
)

type InterestStore interface {
	GetInterests(ctx context.Context, userID int64) ([]model.Interest, error)
	CreateInterest(ctx context.Context, interest *model.Interest) error
	DeleteInterest(ctx context.Context, id, userID int64) error
}

type InterestHandler struct {
	repository InterestStore
}

func NewInterestHandler(repository InterestStore) *InterestHandler {
	return &InterestHandler{repository: repository}
}

func (h *InterestHandler) GetInterests(c *gin.Context) {
	user := currentUser(c)

	interests, err := h.repository.GetInterests(c.Request.Context(), user.ID)
	if err != nil {
		slog.Error("error fetching interests", "user_id", user.ID, "error", err)
		respondMessage(c, http.StatusInternalServerError, "Database error")
		return
	}

	res := make([]InterestResponse, 0, len(interests))
	for _, i := range interests {
		res = append(res, toInterestResponse(i))
	}

	c.JSON(http.StatusOK, res)
}

func (h *InterestHandler) CreateInterest(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		respondMessage(c, http.StatusBadRequest, "Interest name is required")
		return
	}

	interest := &model.Interest{UserID: currentUser(c).ID, Name: strings.TrimSpace(req.Name)}
	if err := h.repository.CreateInterest(c.Request.Context(), interest); err != nil {
		slog.Error("error creating interest", "user_id", interest.UserID, "error", err)
		respondMessage(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusCreated, toInterestResponse(*interest))
}

func (h *InterestHandler) DeleteInterest(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	user := currentUser(c)
	if err := h.repository.DeleteInterest(c.Request.Context(), id, user.ID); err != nil {
		slog.Error("error deleting interest", "id", id, "user_id", user.ID, "error", err)
		respondMessage(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.Status(http.StatusNoContent)
}
