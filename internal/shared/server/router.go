package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"screener-backend/internal/shared/config"
	"screener-backend/internal/shared/metrics"
	"screener-backend/internal/shared/server/middleware"
	"screener-backend/internal/shared/server/respond"
)

// RouteRegistrar attaches a package's routes to the API group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries everything NewRouter needs.
type RouterDeps struct {
	Config   config.Config
	Handlers []RouteRegistrar
}

// NewRouter constructs the gin engine with middleware and routes registered.
// The upload route gets a per-client token bucket on top of the shared chain.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"UPLOAD": {Rate: 0.5, Burst: 5},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/applicants/upload" {
					return "UPLOAD"
				}
				return ""
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	for _, h := range deps.Handlers {
		h.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
