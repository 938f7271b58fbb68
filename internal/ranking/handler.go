package ranking

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"screener-backend/internal/applicants"
	"screener-backend/internal/shared/server/respond"
)

// Handler serves the derived read views over the applicant pool.
type Handler struct {
	Repo            applicants.Repo
	DefaultFraction float64
}

// NewHandler constructs a Handler.
func NewHandler(repo applicants.Repo, defaultFraction float64) *Handler {
	if defaultFraction <= 0 || defaultFraction > 100 {
		defaultFraction = DefaultFraction
	}
	return &Handler{Repo: repo, DefaultFraction: defaultFraction}
}

// RegisterRoutes attaches ranking routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/applicants/top-candidates", h.top)
	rg.GET("/applicants/analytics/summary", h.summary)
}

func (h *Handler) top(c *gin.Context) {
	fraction := h.DefaultFraction
	if v := c.Query("percentage"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 || parsed > 100 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "percentage must be a number in (0, 100]", nil)
			return
		}
		fraction = parsed
	}

	all, err := h.Repo.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applicants", nil)
		return
	}
	respond.OK(c, TopCandidates(all, fraction))
}

func (h *Handler) summary(c *gin.Context) {
	all, err := h.Repo.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applicants", nil)
		return
	}
	respond.OK(c, Summarize(all))
}
