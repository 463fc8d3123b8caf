package scheduler

import "github.com/arnavshah/care-rota-api/pkg/models"

// Cursors holds the rotation position per slot category for one build run
type Cursors map[models.SlotCategory]int

// Assign picks staff round-robin from pool starting at cursor.
//
// The target is min(max, len(pool)). When that is still below min the
// whole pool is assigned instead of refusing the slot; the validator
// reports the shortfall later. The returned cursor advances by one
// regardless of how many were picked, so the first pick shifts by one
// position every time the slot comes round.
func Assign(pool []models.StaffMember, cursor, min, max int) ([]string, int) {
	if len(pool) == 0 {
		return nil, cursor
	}

	target := max
	if len(pool) < target {
		target = len(pool)
	}
	if target < min {
		// understaffed
		target = len(pool)
	}

	start := cursor % len(pool)
	if start < 0 {
		start += len(pool)
	}

	ids := make([]string, 0, target)
	seen := make(map[string]bool, target)
	for i := 0; i < len(pool) && len(ids) < target; i++ {
		id := pool[(start+i)%len(pool)].ID
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	return ids, (start + 1) % len(pool)
}
