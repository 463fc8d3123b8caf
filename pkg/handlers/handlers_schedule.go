package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/arnavshah/care-rota-api/pkg/export"
	"github.com/arnavshah/care-rota-api/pkg/loader"
	"github.com/arnavshah/care-rota-api/pkg/models"
	"github.com/arnavshah/care-rota-api/pkg/scheduler"
	"github.com/arnavshah/care-rota-api/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// guard runs fn and turns a panic into a logged error
func guard(log *zap.Logger, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("schedule generation panicked", zap.Any("panic", r), zap.Stack("stack"))
			err = fmt.Errorf("schedule generation failed: %v", r)
		}
	}()
	fn()
	return nil
}

// Generate builds the month and validates it against rules (or the
// handler's defaults). A panic anywhere in the run is logged and
// returned as an error so the caller keeps serving.
func (h *Handler) Generate(staff []models.StaffMember, rules *models.RuleSet, month string) (*models.ScheduleResponse, error) {
	runID := uuid.NewString()
	log := h.Log.With(zap.String("run_id", runID), zap.String("month", month))

	rs := h.Rules
	if rules != nil {
		rs = *rules
	}

	var resp *models.ScheduleResponse
	err := guard(log, func() {
		s := scheduler.NewScheduler(staff)
		schedule := s.Build(month)
		if len(schedule) == 0 {
			log.Warn("month did not parse, returning empty schedule")
		}
		violations := validator.ValidateSchedule(schedule, rs, staff)
		summary := validator.Summarize(violations)

		log.Info("schedule generated",
			zap.Int("staff", len(staff)),
			zap.Int("days", len(schedule)),
			zap.Int("violations", summary.Total),
			zap.Int("fallbacks", len(s.Fallbacks)),
		)

		resp = &models.ScheduleResponse{
			RunID:         runID,
			Month:         month,
			Schedule:      schedule,
			Violations:    violations,
			Summary:       summary,
			Fallbacks:     s.Fallbacks,
			FairnessScore: s.FairnessScore(),
			Staff:         s.Stats(),
		}
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// bindScheduleInput decodes and checks a generate request
func bindScheduleInput(c *gin.Context) (*models.ScheduleInput, bool) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	if err := models.ValidateStaff(input.Staff); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	if input.Rules != nil {
		if err := input.Rules.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return nil, false
		}
	}
	return &input, true
}

// ScheduleJSON handles the JSON-based scheduling request
func (h *Handler) ScheduleJSON(c *gin.Context) {
	input, ok := bindScheduleInput(c)
	if !ok {
		return
	}

	resp, err := h.Generate(input.Staff, input.Rules, input.Month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.RecordUsage(c, len(resp.Schedule), len(input.Staff), resp.Summary.Total)
	c.JSON(http.StatusOK, resp)
}

// ScheduleXLSX returns the schedule and its violations as a workbook
func (h *Handler) ScheduleXLSX(c *gin.Context) {
	input, ok := bindScheduleInput(c)
	if !ok {
		return
	}

	resp, err := h.Generate(input.Staff, input.Rules, input.Month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	data, err := export.Workbook(resp.Schedule, resp.Violations)
	if err != nil {
		h.Log.Error("workbook export failed", zap.String("run_id", resp.RunID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build workbook"})
		return
	}

	h.RecordUsage(c, len(resp.Schedule), len(input.Staff), resp.Summary.Total)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="rota-%s.xlsx"`, input.Month))
	c.Header("X-Run-ID", resp.RunID)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// ScheduleCSV handles CSV roster uploads for scheduling
func (h *Handler) ScheduleCSV(c *gin.Context) {
	staffFile, _ := c.FormFile("staff_file")
	rulesFile, _ := c.FormFile("rules_file")
	month := c.PostForm("month")

	if staffFile == nil || month == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "staff_file and month are required"})
		return
	}

	sFile, err := staffFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open staff file"})
		return
	}
	defer sFile.Close()

	staff, err := loader.ReadStaffCSV(sFile)
	if err == nil {
		err = models.ValidateStaff(staff)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var rules *models.RuleSet
	if rulesFile != nil {
		rFile, err := rulesFile.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open rules file"})
			return
		}
		defer rFile.Close()
		data, err := io.ReadAll(rFile)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read rules file"})
			return
		}
		rs, err := loader.ParseRules(rulesFile.Filename, data)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		rules = &rs
	}

	resp, err := h.Generate(staff, rules, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var outCSV strings.Builder
	if err := export.WriteCSV(&outCSV, resp.Schedule); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not write CSV"})
		return
	}

	h.RecordUsage(c, len(resp.Schedule), len(staff), resp.Summary.Total)
	c.JSON(http.StatusOK, gin.H{
		"run_id":     resp.RunID,
		"csv":        outCSV.String(),
		"violations": resp.Violations,
		"summary":    resp.Summary,
	})
}
