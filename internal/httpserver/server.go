package httpserver

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shoplytics/shoplytics/internal/auth"
	"github.com/shoplytics/shoplytics/internal/config"
	"github.com/shoplytics/shoplytics/internal/datastore"
	"github.com/shoplytics/shoplytics/internal/handlers"
)

// NewRouter wires public endpoints and the (optionally) authenticated APIs.
// Public: /health, /ready
// Guarded: /datasets*, /metrics/*, /generate
func NewRouter(cfg config.Config, st *datastore.Store) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	// The presentation layer is an external collaborator on another origin.
	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-API-Key")
	r.Use(cors.New(corsCfg))

	// Liveness: confirms the process is running.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness: confirms a dataset bundle is loaded. An empty event log is
	// still ready; metrics degrade to empty results.
	r.GET("/ready", func(c *gin.Context) {
		if st.Current() == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	guarded := r.Group("/")
	guarded.Use(auth.APIKeyMiddleware(cfg.APIKey))

	handlers.RegisterDatasetRoutes(guarded, st)
	handlers.RegisterMetricRoutes(guarded, st)
	handlers.RegisterGenerateRoutes(guarded, st, cfg.Generator, cfg.DataDir)

	return r
}
