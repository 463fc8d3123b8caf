package handlers

import (
	"net/http"

	"github.com/arnavshah/care-rota-api/pkg/models"
	"github.com/arnavshah/care-rota-api/pkg/scheduler"
	"github.com/arnavshah/care-rota-api/pkg/validator"
	"github.com/gin-gonic/gin"
)

// ValidateSchedule re-checks a schedule the caller already has.
// Leaving out staff turns off day-off checks.
func (h *Handler) ValidateSchedule(c *gin.Context) {
	var req models.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rules := h.Rules
	if req.Rules != nil {
		if err := req.Rules.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		rules = *req.Rules
	}

	violations := validator.ValidateSchedule(req.Schedule, rules, req.Staff)
	summary := validator.Summarize(violations)
	h.RecordUsage(c, len(req.Schedule), len(req.Staff), summary.Total)

	c.JSON(http.StatusOK, gin.H{
		"violations": violations,
		"summary":    summary,
	})
}

// ValidateInput handles the structural check of a generate request
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if len(input.Staff) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one staff member is required",
		})
		return
	}

	if err := models.ValidateStaff(input.Staff); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	if _, _, ok := scheduler.ParseMonth(input.Month); !ok {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": "month must be YYYY-MM: " + input.Month})
		return
	}

	if input.Rules != nil {
		if err := input.Rules.Validate(); err != nil {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
			return
		}
	}

	night := scheduler.EligiblePool(input.Staff, []string{models.RoleNight})
	evening := scheduler.EligiblePool(input.Staff, []string{models.RoleDay, models.RoleNight})

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"staff_count":   len(input.Staff),
			"night_capable": len(night),
			"evening_pool":  len(evening),
			"days":          len(scheduler.ExpandMonth(input.Month)),
		},
	})
}
