package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arnavshah/care-rota-api/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadStaff_JSON(t *testing.T) {
	path := writeFile(t, "staff.json", `[
		{"id": "A", "name": "Alice", "roles": ["day", "night"], "preferredDaysOff": ["2025-11-01"]},
		{"id": "B", "name": "Bob", "roles": ["night"]}
	]`)

	staff, err := LoadStaff(path)
	require.NoError(t, err)
	require.Len(t, staff, 2)
	assert.Equal(t, []string{"2025-11-01"}, staff[0].PreferredDaysOff)
	assert.Empty(t, staff[1].PreferredDaysOff)
}

func TestLoadStaff_YAML(t *testing.T) {
	path := writeFile(t, "staff.yaml", `
- id: A
  name: Alice
  roles: [day, night]
  preferredDaysOff: ["2025-11-01"]
- id: B
  roles: [day]
`)

	staff, err := LoadStaff(path)
	require.NoError(t, err)
	require.Len(t, staff, 2)
	assert.True(t, staff[0].HasRole("night"))
	assert.False(t, staff[1].HasRole("night"))
}

func TestLoadStaff_CSV(t *testing.T) {
	path := writeFile(t, "staff.csv", "id,name,roles,preferred_days_off\n"+
		"A,Alice,day|night,2025-11-01|2025-11-15\n"+
		"B,Bob,night,\n")

	staff, err := LoadStaff(path)
	require.NoError(t, err)
	require.Len(t, staff, 2)
	assert.Equal(t, []string{"day", "night"}, staff[0].Roles)
	assert.Equal(t, []string{"2025-11-01", "2025-11-15"}, staff[0].PreferredDaysOff)
	assert.Nil(t, staff[1].PreferredDaysOff)
}

func TestReadStaffCSV_MissingID(t *testing.T) {
	_, err := ReadStaffCSV(strings.NewReader("name,roles\nAlice,day\n"))
	assert.ErrorIs(t, err, models.ErrInvalidStaff)
}

func TestLoadStaff_Duplicate(t *testing.T) {
	path := writeFile(t, "staff.json", `[{"id": "A"}, {"id": "A"}]`)
	_, err := LoadStaff(path)
	assert.ErrorIs(t, err, models.ErrInvalidStaff)
}

func TestLoadStaff_Unsupported(t *testing.T) {
	path := writeFile(t, "staff.txt", "A")
	_, err := LoadStaff(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadRules(t *testing.T) {
	path := writeFile(t, "rules.yaml", `
exact:
  - {id: A_night_21_23_exact2, start: "21:00", end: "23:00", exact: 2}
range:
  - {id: B_evening_18_21_range, start: "18:00", end: "21:00", min: 2, max: 3}
`)

	rules, err := LoadRules(path)
	require.NoError(t, err)
	require.Len(t, rules.Exact, 1)
	require.Len(t, rules.Range, 1)
	assert.Equal(t, 3, rules.Range[0].Max)
}

func TestLoadRules_PartialIsFine(t *testing.T) {
	path := writeFile(t, "rules.json", `{"range": [{"id": "B", "start": "18:00", "end": "21:00", "min": 2, "max": 3}]}`)
	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.Nil(t, rules.Exact)
}

func TestLoadRules_Invalid(t *testing.T) {
	for name, body := range map[string]string{
		"min above max": `{"range": [{"id": "B", "start": "18:00", "end": "21:00", "min": 4, "max": 3}]}`,
		"bad time":      `{"exact": [{"id": "A", "start": "25:00", "end": "23:00", "exact": 2}]}`,
		"missing id":    `{"exact": [{"start": "21:00", "end": "23:00", "exact": 2}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadRules(writeFile(t, "rules.json", body))
			assert.ErrorIs(t, err, models.ErrInvalidRule)
		})
	}
}

func TestLoadSchedule(t *testing.T) {
	path := writeFile(t, "schedule.json", `[
		{"date": "2025-11-01", "slots": [{"start": "18:00", "end": "21:00", "staffIds": ["A", "B"]}]}
	]`)
	schedule, err := LoadSchedule(path)
	require.NoError(t, err)
	require.Len(t, schedule, 1)
	assert.Equal(t, []string{"A", "B"}, schedule[0].Slots[0].StaffIDs)
}

func TestLoadSchedule_GenerateResult(t *testing.T) {
	path := writeFile(t, "result.json", `{
		"run_id": "r1",
		"schedule": [{"date": "2025-11-01", "slots": [{"start": "00:00", "end": "07:00", "staffIds": ["C"]}]}]
	}`)
	schedule, err := LoadSchedule(path)
	require.NoError(t, err)
	require.Len(t, schedule, 1)
	assert.Equal(t, "2025-11-01", schedule[0].Date)

	_, err = LoadSchedule(writeFile(t, "schedule.txt", "[]"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
