package scheduler

import (
	"fmt"
	"math"

	"github.com/arnavshah/care-rota-api/pkg/models"
)

// Scheduler handles the logic of assigning staff to the daily slots of a month
type Scheduler struct {
	Staff       []models.StaffMember
	Definitions []models.SlotDefinition
	Fallbacks   []models.FallbackNote

	schedule models.Schedule
}

// NewScheduler creates a new scheduler instance over the built-in slot definitions
func NewScheduler(staff []models.StaffMember) *Scheduler {
	return &Scheduler{
		Staff:       staff,
		Definitions: models.SlotDefinitions,
	}
}

// BuildSchedule is the one-call entry point: roster and month in, schedule out.
// rules is accepted for symmetry with validation and does not steer assignment.
// A malformed month yields an empty schedule.
func BuildSchedule(staff []models.StaffMember, _ models.RuleSet, month string) models.Schedule {
	return NewScheduler(staff).Build(month)
}

// Build produces one Day per date of month. Dates are processed in order
// because the rotation cursors carry over from one day to the next.
func (s *Scheduler) Build(month string) models.Schedule {
	s.Fallbacks = nil
	dates := ExpandMonth(month)
	schedule := make(models.Schedule, 0, len(dates))
	cursors := Cursors{}

	for _, date := range dates {
		day := models.Day{Date: date, Slots: make([]models.Slot, 0, len(s.Definitions))}
		for _, def := range s.Definitions {
			ids := s.fillSlot(def, date, cursors)
			day.Slots = append(day.Slots, models.Slot{Start: def.Start, End: def.End, StaffIDs: ids})
		}
		schedule = append(schedule, day)
	}

	s.schedule = schedule
	return schedule
}

func (s *Scheduler) fillSlot(def models.SlotDefinition, date string, cursors Cursors) []string {
	eligible := EligiblePool(s.Staff, def.Roles)
	if len(eligible) == 0 {
		s.note(date, def, models.FallbackEmptyPool, fmt.Sprintf("no staff with role %v", def.Roles))
		return []string{}
	}

	pool, fellBack := PreferencePool(eligible, date, def.Min)
	if fellBack {
		s.note(date, def, models.FallbackPreference,
			fmt.Sprintf("%d eligible staff, minimum %d: day-off requests overridden", len(eligible), def.Min))
	}
	if len(pool) < def.Min {
		s.note(date, def, models.FallbackUnderstaffed,
			fmt.Sprintf("pool of %d below minimum %d: all assigned", len(pool), def.Min))
	}

	ids, next := Assign(pool, cursors[def.Category], def.Min, def.Max)
	cursors[def.Category] = next
	return ids
}

func (s *Scheduler) note(date string, def models.SlotDefinition, kind models.FallbackKind, detail string) {
	s.Fallbacks = append(s.Fallbacks, models.FallbackNote{
		Date:   date,
		Start:  def.Start,
		End:    def.End,
		Kind:   kind,
		Detail: detail,
	})
}

// AssignmentCounts returns how many slots each roster member holds in the last build
func (s *Scheduler) AssignmentCounts() map[string]int {
	counts := make(map[string]int, len(s.Staff))
	for _, st := range s.Staff {
		counts[st.ID] = 0
	}
	for _, day := range s.schedule {
		for _, sl := range day.Slots {
			for _, id := range sl.StaffIDs {
				counts[id]++
			}
		}
	}
	return counts
}

// Stats returns per-staff slot and day counts for the last build
func (s *Scheduler) Stats() map[string]models.StaffStats {
	stats := make(map[string]models.StaffStats, len(s.Staff))
	for id, n := range s.AssignmentCounts() {
		stats[id] = models.StaffStats{AssignedSlots: n}
	}
	for _, day := range s.schedule {
		worked := make(map[string]bool)
		for _, sl := range day.Slots {
			for _, id := range sl.StaffIDs {
				worked[id] = true
			}
		}
		for id := range worked {
			st := stats[id]
			st.DaysWorked++
			stats[id] = st
		}
	}
	return stats
}

// FairnessScore returns a percentage (0-100) representing how evenly
// slots are distributed. 100% is perfectly fair (Standard Deviation = 0).
func (s *Scheduler) FairnessScore() float64 {
	counts := s.AssignmentCounts()
	if len(counts) == 0 {
		return 100.0
	}

	var sum float64
	for _, n := range counts {
		sum += float64(n)
	}

	if sum == 0 {
		return 100.0 // Nobody working is perfectly fair
	}

	mean := sum / float64(len(counts))

	var varianceSum float64
	for _, n := range counts {
		diff := float64(n) - mean
		varianceSum += diff * diff
	}
	stdDev := math.Sqrt(varianceSum / float64(len(counts)))

	// 100% means SD is 0. 0% means SD is >= mean.
	score := (1.0 - (stdDev / mean)) * 100.0
	if score < 0 {
		return 0.0
	}
	return score
}
