package scheduler

import "github.com/arnavshah/care-rota-api/pkg/models"

// EligiblePool returns the staff holding any of the roles, in roster order
func EligiblePool(staff []models.StaffMember, roles []string) []models.StaffMember {
	var pool []models.StaffMember
	for _, s := range staff {
		if s.HasRole(roles...) {
			pool = append(pool, s)
		}
	}
	return pool
}

// PreferencePool drops staff who asked for date off, unless that leaves
// fewer than min people. In that case the full pool comes back and
// fellBack is true: coverage wins over preferences.
func PreferencePool(pool []models.StaffMember, date string, min int) (out []models.StaffMember, fellBack bool) {
	var rested []models.StaffMember
	for _, s := range pool {
		if !s.PrefersOff(date) {
			rested = append(rested, s)
		}
	}

	if len(rested) >= min {
		return rested, false
	}
	// Only a real fallback if someone's request was actually overridden
	return pool, len(rested) < len(pool)
}
