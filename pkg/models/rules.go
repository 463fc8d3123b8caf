package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidRule is returned by RuleSet.Validate for malformed rules
	ErrInvalidRule = errors.New("invalid rule")
	// ErrInvalidStaff is returned by ValidateStaff for malformed roster entries
	ErrInvalidStaff = errors.New("invalid staff")
)

// SlotCategory selects which rotation cursor a slot draws from
type SlotCategory string

const (
	CategoryEvening SlotCategory = "evening"
	CategoryNight   SlotCategory = "night"
)

// Roles that carry meaning for slot eligibility
const (
	RoleDay   = "day"
	RoleNight = "night"
)

// SlotDefinition is a fixed daily window with its eligibility and headcount policy
type SlotDefinition struct {
	Start    string
	End      string
	Category SlotCategory
	Roles    []string // any one of these qualifies
	Min      int
	Max      int
}

// SlotDefinitions lists the three daily windows in display order
var SlotDefinitions = []SlotDefinition{
	{Start: "18:00", End: "21:00", Category: CategoryEvening, Roles: []string{RoleDay, RoleNight}, Min: 2, Max: 3},
	{Start: "21:00", End: "23:00", Category: CategoryNight, Roles: []string{RoleNight}, Min: 2, Max: 2},
	{Start: "00:00", End: "07:00", Category: CategoryNight, Roles: []string{RoleNight}, Min: 2, Max: 2},
}

// ExactRule (category A) requires exactly Exact staff in the window
type ExactRule struct {
	ID    string `json:"id" yaml:"id"`
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
	Exact int    `json:"exact" yaml:"exact"`
}

// RangeRule (category B) requires between Min and Max staff in the window
type RangeRule struct {
	ID    string `json:"id" yaml:"id"`
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
	Min   int    `json:"min" yaml:"min"`
	Max   int    `json:"max" yaml:"max"`
}

// RuleSet groups the coverage rules checked by the validator.
// Either list may be nil.
type RuleSet struct {
	Exact []ExactRule `json:"exact,omitempty" yaml:"exact,omitempty"`
	Range []RangeRule `json:"range,omitempty" yaml:"range,omitempty"`
}

// DefaultRules returns the rule set matching the built-in slot definitions
func DefaultRules() RuleSet {
	return RuleSet{
		Exact: []ExactRule{
			{ID: "A_night_21_23_exact2", Start: "21:00", End: "23:00", Exact: 2},
			{ID: "A_night_00_07_exact2", Start: "00:00", End: "07:00", Exact: 2},
		},
		Range: []RangeRule{
			{ID: "B_evening_18_21_range", Start: "18:00", End: "21:00", Min: 2, Max: 3},
		},
	}
}

// Validate checks required fields and count bounds on every rule
func (rs RuleSet) Validate() error {
	seen := make(map[string]bool)
	for i, r := range rs.Exact {
		if err := checkRuleHeader(r.ID, r.Start, r.End, seen); err != nil {
			return fmt.Errorf("exact rule %d: %w", i, err)
		}
		if r.Exact < 0 {
			return fmt.Errorf("exact rule %q: negative count %d: %w", r.ID, r.Exact, ErrInvalidRule)
		}
	}
	for i, r := range rs.Range {
		if err := checkRuleHeader(r.ID, r.Start, r.End, seen); err != nil {
			return fmt.Errorf("range rule %d: %w", i, err)
		}
		if r.Min < 0 || r.Max < 0 {
			return fmt.Errorf("range rule %q: negative bound: %w", r.ID, ErrInvalidRule)
		}
		if r.Min > r.Max {
			return fmt.Errorf("range rule %q: min %d exceeds max %d: %w", r.ID, r.Min, r.Max, ErrInvalidRule)
		}
	}
	return nil
}

func checkRuleHeader(id, start, end string, seen map[string]bool) error {
	if id == "" {
		return fmt.Errorf("missing id: %w", ErrInvalidRule)
	}
	if seen[id] {
		return fmt.Errorf("duplicate id %q: %w", id, ErrInvalidRule)
	}
	seen[id] = true
	for _, t := range []string{start, end} {
		if _, err := time.Parse("15:04", t); err != nil {
			return fmt.Errorf("rule %q: bad time %q: %w", id, t, ErrInvalidRule)
		}
	}
	return nil
}

// ValidateStaff rejects roster entries without an id, duplicate ids, and malformed days off
func ValidateStaff(staff []StaffMember) error {
	ids := make(map[string]bool, len(staff))
	for i, s := range staff {
		if s.ID == "" {
			return fmt.Errorf("staff %d: missing id: %w", i, ErrInvalidStaff)
		}
		if ids[s.ID] {
			return fmt.Errorf("duplicate staff id %q: %w", s.ID, ErrInvalidStaff)
		}
		ids[s.ID] = true
		for _, d := range s.PreferredDaysOff {
			if _, err := time.Parse("2006-01-02", d); err != nil {
				return fmt.Errorf("staff %q: bad day off %q: %w", s.ID, d, ErrInvalidStaff)
			}
		}
	}
	return nil
}
