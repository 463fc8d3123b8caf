package validator

import (
	"fmt"

	"github.com/arnavshah/care-rota-api/pkg/models"
)

const (
	// DayOffViolationID identifies category C violations
	DayOffViolationID = "C_day_off_violation"
	// DayOffViolationDetail is the fixed detail text for category C violations
	// ("day-off request violated"); clients match on it verbatim
	DayOffViolationDetail = "希望休違反"
)

// Validator checks a schedule against coverage rules and, when a roster is
// known, against staff day-off preferences
type Validator struct {
	Rules models.RuleSet
	Staff map[string]models.StaffMember
}

// NewValidator creates a validator. A nil roster disables preference checks.
func NewValidator(rules models.RuleSet, staff []models.StaffMember) *Validator {
	v := &Validator{Rules: rules}
	if staff != nil {
		v.Staff = make(map[string]models.StaffMember, len(staff))
		for _, s := range staff {
			v.Staff[s.ID] = s
		}
	}
	return v
}

// ValidateSchedule is the one-call entry point. The result is never nil.
func ValidateSchedule(schedule models.Schedule, rules models.RuleSet, staff []models.StaffMember) []models.Violation {
	return NewValidator(rules, staff).Validate(schedule)
}

// Validate walks the schedule day by day: exact rules, then range rules,
// then preferences, each in list order
func (v *Validator) Validate(schedule models.Schedule) []models.Violation {
	violations := []models.Violation{}
	seen := make(map[string]bool)

	for i := range schedule {
		day := &schedule[i]

		for _, r := range v.Rules.Exact {
			n := assignedCount(day, r.Start, r.End)
			if n != r.Exact {
				violations = append(violations, models.Violation{
					ID:       r.ID,
					Date:     day.Date,
					Start:    r.Start,
					End:      r.End,
					Detail:   fmt.Sprintf("expected %d, actual %d", r.Exact, n),
					Priority: models.PriorityExact,
				})
			}
		}

		for _, r := range v.Rules.Range {
			n := assignedCount(day, r.Start, r.End)
			if n < r.Min || n > r.Max {
				violations = append(violations, models.Violation{
					ID:       r.ID,
					Date:     day.Date,
					Start:    r.Start,
					End:      r.End,
					Detail:   fmt.Sprintf("expected between %d-%d, actual %d", r.Min, r.Max, n),
					Priority: models.PriorityRange,
				})
			}
		}

		if v.Staff == nil {
			continue
		}
		for _, sl := range day.Slots {
			for _, id := range sl.StaffIDs {
				key := day.Date + "|" + id
				if seen[key] {
					continue
				}
				member, ok := v.Staff[id]
				if !ok || !member.PrefersOff(day.Date) {
					continue
				}
				seen[key] = true
				violations = append(violations, models.Violation{
					ID:       DayOffViolationID,
					Date:     day.Date,
					StaffID:  id,
					Detail:   DayOffViolationDetail,
					Priority: models.PriorityPreference,
				})
			}
		}
	}

	return violations
}

// a missing slot counts as nobody assigned
func assignedCount(day *models.Day, start, end string) int {
	if sl := day.FindSlot(start, end); sl != nil {
		return len(sl.StaffIDs)
	}
	return 0
}

// Summarize counts violations by priority
func Summarize(violations []models.Violation) models.ViolationSummary {
	sum := models.ViolationSummary{Total: len(violations)}
	for _, v := range violations {
		switch v.Priority {
		case models.PriorityExact:
			sum.A++
		case models.PriorityRange:
			sum.B++
		case models.PriorityPreference:
			sum.C++
		}
	}
	return sum
}
