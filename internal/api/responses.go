package api

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/database"
	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
)

const defaultListLimit = 50

// LeadListResponse represents a list of leads with metadata.
type LeadListResponse struct {
	Leads []*domain.Lead `json:"leads"`
	Total int            `json:"total"`
}

// UpdateStatusRequest represents a request to advance a lead's status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// IntentStatsResponse represents lead counts grouped by intent strength.
type IntentStatsResponse struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// filterFromQuery builds a lead list filter from query parameters.
// Supported: status, intent, territory, min_score, limit.
func filterFromQuery(c *gin.Context) (database.ListFilter, error) {
	filter := database.ListFilter{Limit: defaultListLimit}

	if status := c.Query("status"); status != "" {
		if !domain.ValidStatus(domain.LeadStatus(status)) {
			return filter, fmt.Errorf("unknown status: %s", status)
		}
		filter.Status = domain.LeadStatus(status)
	}

	if intent := c.Query("intent"); intent != "" {
		switch domain.IntentStrength(intent) {
		case domain.IntentHigh, domain.IntentMedium, domain.IntentLow:
			filter.IntentStrength = domain.IntentStrength(intent)
		default:
			return filter, fmt.Errorf("unknown intent: %s", intent)
		}
	}

	filter.TerritoryState = c.Query("territory")

	if raw := c.Query("min_score"); raw != "" {
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil || score < 0 {
			return filter, fmt.Errorf("invalid min_score: %s", raw)
		}
		filter.MinScore = score
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return filter, fmt.Errorf("invalid limit: %s", raw)
		}
		filter.Limit = limit
	}

	return filter, nil
}
