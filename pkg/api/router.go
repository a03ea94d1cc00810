package api

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"lead-capture/pkg/logger"
	"lead-capture/pkg/metrics"
	"lead-capture/pkg/middleware"
)

// NewRouter wires middleware and routes onto a fresh gin engine.
// m may be nil, in which case /metrics is not served. Forwarding headers
// are only believed from trustedProxies; with none, the peer address is used.
func NewRouter(handlers *Handlers, log *logger.Logger, m *metrics.Metrics, trustedProxies []string) (*gin.Engine, error) {
	router := gin.New()
	if len(trustedProxies) == 0 {
		trustedProxies = nil
	}
	if err := router.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	if m != nil {
		router.Use(middleware.Metrics(m))
	}
	router.Use(middleware.CORS())

	router.GET("/health", handlers.HealthCheck)
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	leads := router.Group("/api/leads")
	leads.POST("", handlers.CreateLead)
	leads.GET("", handlers.ListLeads)
	leads.DELETE("/:idOrEmail", handlers.DeleteLead)

	return router, nil
}
