// Package report renders schedules and violations as terminal tables.
package report

import (
	"fmt"
	"strings"

	"github.com/arnavshah/care-rota-api/pkg/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const (
	NoScheduleText   = "no schedule (check the month format, e.g. 2025-11)"
	NoViolationsText = "no violations"
)

var (
	borderStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle     = lipgloss.NewStyle().Bold(true).MarginTop(1)
	priorityStyles = map[models.Priority]lipgloss.Style{
		models.PriorityExact:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		models.PriorityRange:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		models.PriorityPreference: lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
	}
)

// SlotLabel formats a window as "18:00–21:00", or "-" when there is none
func SlotLabel(start, end string) string {
	if start == "" && end == "" {
		return "-"
	}
	return start + "–" + end
}

// Schedule renders one row per slot: date, slot, staff ids
func Schedule(schedule models.Schedule) string {
	if len(schedule) == 0 {
		return NoScheduleText
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("date", "slot", "staffIds")
	for _, day := range schedule {
		for _, sl := range day.Slots {
			t.Row(day.Date, SlotLabel(sl.Start, sl.End), strings.Join(sl.StaffIDs, ","))
		}
	}
	return t.String()
}

// Violations renders priority, id, date, slot and detail per violation
func Violations(violations []models.Violation) string {
	if len(violations) == 0 {
		return NoViolationsText
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("priority", "id", "date", "slot", "detail")
	for _, v := range violations {
		detail := v.Detail
		if v.StaffID != "" {
			detail = fmt.Sprintf("%s (%s)", detail, v.StaffID)
		}
		t.Row(string(v.Priority), v.ID, v.Date, SlotLabel(v.Start, v.End), detail)
	}
	return t.String()
}

// Summary renders a one-line count by priority
func Summary(sum models.ViolationSummary) string {
	line := fmt.Sprintf("%d violations (A: %d, B: %d, C: %d)", sum.Total, sum.A, sum.B, sum.C)
	if sum.A > 0 {
		return priorityStyles[models.PriorityExact].Render(line)
	}
	if sum.B > 0 {
		return priorityStyles[models.PriorityRange].Render(line)
	}
	if sum.C > 0 {
		return priorityStyles[models.PriorityPreference].Render(line)
	}
	return line
}

// Title renders a section heading
func Title(s string) string {
	return titleStyle.Render(s)
}
