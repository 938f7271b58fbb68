package historical

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"screener-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the historical hire repo.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches historical hire routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/historical", h.create)
	rg.GET("/historical", h.list)
	rg.GET("/historical/stats", h.stats)
	rg.DELETE("/historical/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	var hire Hire
	if err := c.ShouldBindJSON(&hire); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if !ValidOutcome(hire.Outcome) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "outcome must be one of positive, negative, neutral", nil)
		return
	}

	created, err := h.Repo.Create(c.Request.Context(), hire)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store historical hire", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, created)
}

func (h *Handler) list(c *gin.Context) {
	outcome := c.Query("outcome")
	if outcome != "" && !ValidOutcome(outcome) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown outcome filter", nil)
		return
	}

	limit := 100
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	hires, err := h.Repo.List(c.Request.Context(), outcome, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list historical hires", nil)
		return
	}
	respond.OK(c, hires)
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.Repo.Stats(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to aggregate historical hires", nil)
		return
	}
	respond.OK(c, stats)
}

func (h *Handler) remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid hire id", nil)
		return
	}

	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "historical hire not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete historical hire", nil)
		return
	}
	respond.OK(c, gin.H{"message": "Historical hire deleted"})
}
