package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, handler *Handler, metricsHandler http.Handler) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)

	// Prometheus metrics
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Lead endpoints
		leads := v1.Group("/leads")
		{
			leads.GET("", handler.ListLeads)                      // GET /api/v1/leads
			leads.GET("/:id", handler.GetLead)                    // GET /api/v1/leads/:id
			leads.PATCH("/:id/status", handler.UpdateLeadStatus)  // PATCH /api/v1/leads/:id/status
		}

		// Batch endpoints
		batch := v1.Group("/batch")
		{
			batch.POST("/trigger", handler.TriggerBatch) // POST /api/v1/batch/trigger
			batch.GET("/last", handler.GetLastBatch)     // GET /api/v1/batch/last
		}

		// Statistics endpoints
		stats := v1.Group("/stats")
		{
			stats.GET("/intent", handler.GetIntentStats) // GET /api/v1/stats/intent
		}
	}
}
