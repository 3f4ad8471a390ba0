package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/database"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/logger"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/pipeline"
)

// LeadDirectory is the slice of the store the API reads leads from.
type LeadDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.Lead, error)
	ListLeads(ctx context.Context, filter database.ListFilter) ([]*domain.Lead, error)
	UpdateStatus(ctx context.Context, id int64, status domain.LeadStatus) error
	CountByIntent(ctx context.Context) (map[domain.IntentStrength]int, error)
}

// BatchRunner triggers pipeline batches and exposes the last outcome.
type BatchRunner interface {
	RunBatch(ctx context.Context) (*pipeline.BatchResult, error)
	LastResult() *pipeline.BatchResult
}

// Pinger reports backend liveness for the readiness check.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler handles HTTP requests for the lead-engine API
type Handler struct {
	leads   LeadDirectory
	runner  BatchRunner
	db      Pinger
	logger  logger.Logger
	service string
	version string

	// batchMu serializes API-triggered batches; a second trigger while
	// one is running gets a 409 instead of a queued run.
	batchMu sync.Mutex
}

// NewHandler creates a new API handler
func NewHandler(leads LeadDirectory, runner BatchRunner, db Pinger, log logger.Logger, service, version string) *Handler {
	return &Handler{
		leads:   leads,
		runner:  runner,
		db:      db,
		logger:  log,
		service: service,
		version: version,
	}
}

// ListLeads handles GET /api/v1/leads
func (h *Handler) ListLeads(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	leads, err := h.leads.ListLeads(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list leads", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leads"})
		return
	}

	c.JSON(http.StatusOK, LeadListResponse{
		Leads: leads,
		Total: len(leads),
	})
}

// GetLead handles GET /api/v1/leads/:id
func (h *Handler) GetLead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lead ID"})
		return
	}

	lead, err := h.leads.GetByID(c.Request.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
			return
		}
		h.logger.Error("Failed to get lead", logger.Int64("lead_id", id), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load lead"})
		return
	}

	c.JSON(http.StatusOK, lead)
}

// UpdateLeadStatus handles PATCH /api/v1/leads/:id/status
func (h *Handler) UpdateLeadStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lead ID"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid status update request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := domain.LeadStatus(req.Status)
	if !domain.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + req.Status})
		return
	}

	if err := h.leads.UpdateStatus(c.Request.Context(), id, status); err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found"})
		case strings.Contains(err.Error(), "invalid status transition"):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to update lead status",
				logger.Int64("lead_id", id), logger.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		}
		return
	}

	h.logger.Info("Lead status updated",
		logger.Int64("lead_id", id), logger.String("status", req.Status))

	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

// GetIntentStats handles GET /api/v1/stats/intent
func (h *Handler) GetIntentStats(c *gin.Context) {
	counts, err := h.leads.CountByIntent(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to count leads by intent", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, IntentStatsResponse{
		High:   counts[domain.IntentHigh],
		Medium: counts[domain.IntentMedium],
		Low:    counts[domain.IntentLow],
	})
}

// TriggerBatch handles POST /api/v1/batch/trigger
func (h *Handler) TriggerBatch(c *gin.Context) {
	if !h.batchMu.TryLock() {
		c.JSON(http.StatusConflict, gin.H{"error": "A batch is already running"})
		return
	}
	defer h.batchMu.Unlock()

	h.logger.Info("Batch triggered via API")

	result, err := h.runner.RunBatch(c.Request.Context())
	if err != nil {
		h.logger.Error("Batch run failed", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetLastBatch handles GET /api/v1/batch/last
func (h *Handler) GetLastBatch(c *gin.Context) {
	result := h.runner.LastResult()
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No batch has run yet"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.service,
		"version": h.version,
	})
}

// ReadyCheck handles GET /ready
func (h *Handler) ReadyCheck(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"checks": gin.H{"postgresql": err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"checks": gin.H{"postgresql": "ok"},
	})
}
