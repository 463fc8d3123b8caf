package models

import "encoding/json"

// StaffMember represents a person on the facility roster
type StaffMember struct {
	ID               string   `json:"id" yaml:"id" binding:"required"`
	Name             string   `json:"name,omitempty" yaml:"name,omitempty"`
	Roles            []string `json:"roles" yaml:"roles"`
	PreferredDaysOff []string `json:"preferredDaysOff,omitempty" yaml:"preferredDaysOff,omitempty"`
}

// HasRole reports whether the staff member carries any of the given roles
func (s StaffMember) HasRole(roles ...string) bool {
	for _, have := range s.Roles {
		for _, want := range roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// PrefersOff reports whether date (YYYY-MM-DD) is one of the requested days off
func (s StaffMember) PrefersOff(date string) bool {
	for _, d := range s.PreferredDaysOff {
		if d == date {
			return true
		}
	}
	return false
}

// Slot is one staffed time window on a given day
type Slot struct {
	Start    string   `json:"start" yaml:"start"`
	End      string   `json:"end" yaml:"end"`
	StaffIDs []string `json:"staffIds" yaml:"staffIds"`
}

// Day holds every slot for one calendar date, in display order
type Day struct {
	Date  string `json:"date" yaml:"date"`
	Slots []Slot `json:"slots" yaml:"slots"`
}

// Schedule is a month of days in chronological order
type Schedule []Day

// FindSlot returns the first slot matching the window, or nil
func (d *Day) FindSlot(start, end string) *Slot {
	for i := range d.Slots {
		if d.Slots[i].Start == start && d.Slots[i].End == end {
			return &d.Slots[i]
		}
	}
	return nil
}

// Clone returns a deep copy so callers can edit slots without touching the original
func (s Schedule) Clone() Schedule {
	out := make(Schedule, len(s))
	for i, day := range s {
		slots := make([]Slot, len(day.Slots))
		for j, sl := range day.Slots {
			slots[j] = Slot{Start: sl.Start, End: sl.End, StaffIDs: append([]string{}, sl.StaffIDs...)}
		}
		out[i] = Day{Date: day.Date, Slots: slots}
	}
	return out
}

// Priority tags the rule category that produced a violation
type Priority string

const (
	PriorityExact      Priority = "A"
	PriorityRange      Priority = "B"
	PriorityPreference Priority = "C"
)

// Violation is a mismatch between the schedule and a rule
type Violation struct {
	ID       string   `json:"id"`
	Date     string   `json:"date"`
	Start    string   `json:"start,omitempty"`
	End      string   `json:"end,omitempty"`
	StaffID  string   `json:"staffId,omitempty"`
	Detail   string   `json:"detail,omitempty"`
	Priority Priority `json:"priority"`
}

// ViolationSummary counts violations by priority
type ViolationSummary struct {
	Total int `json:"total"`
	A     int `json:"A"`
	B     int `json:"B"`
	C     int `json:"C"`
}

// FallbackKind names the degradation branch taken while building a slot
type FallbackKind string

const (
	// FallbackPreference means day-off requests were ignored to reach the minimum
	FallbackPreference FallbackKind = "preference"
	// FallbackUnderstaffed means the pool was smaller than the minimum and everyone was assigned
	FallbackUnderstaffed FallbackKind = "understaffed"
	// FallbackEmptyPool means nobody held a qualifying role
	FallbackEmptyPool FallbackKind = "empty_pool"
)

// FallbackNote records why a slot was not filled the normal way
type FallbackNote struct {
	Date   string       `json:"date"`
	Start  string       `json:"start"`
	End    string       `json:"end"`
	Kind   FallbackKind `json:"kind"`
	Detail string       `json:"detail"`
}

// StaffStats is the per-staff summary returned with a schedule
type StaffStats struct {
	AssignedSlots int `json:"assigned_slots"`
	DaysWorked    int `json:"days_worked"`
}

// ScheduleInput is the data structure for the generate endpoint
type ScheduleInput struct {
	Staff  []StaffMember   `json:"staff" binding:"required,dive"`
	Rules  *RuleSet        `json:"rules,omitempty"`
	Demand json.RawMessage `json:"demand,omitempty"`
	Month  string          `json:"month" binding:"required"`
}

// ScheduleResponse is the data structure for the generate result
type ScheduleResponse struct {
	RunID         string                `json:"run_id"`
	Month         string                `json:"month"`
	Schedule      Schedule              `json:"schedule"`
	Violations    []Violation           `json:"violations"`
	Summary       ViolationSummary      `json:"summary"`
	Fallbacks     []FallbackNote        `json:"fallbacks,omitempty"`
	FairnessScore float64               `json:"fairness_score"`
	Staff         map[string]StaffStats `json:"staff"`
}

// ValidateRequest re-checks an existing schedule
type ValidateRequest struct {
	Schedule Schedule      `json:"schedule" binding:"required"`
	Rules    *RuleSet      `json:"rules,omitempty"`
	Staff    []StaffMember `json:"staff,omitempty"`
}
