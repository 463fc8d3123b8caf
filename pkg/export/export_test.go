package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/arnavshah/care-rota-api/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sample() (models.Schedule, []models.Violation) {
	schedule := models.Schedule{
		{Date: "2025-11-01", Slots: []models.Slot{
			{Start: "18:00", End: "21:00", StaffIDs: []string{"A", "B"}},
			{Start: "21:00", End: "23:00", StaffIDs: []string{"A"}},
		}},
	}
	violations := []models.Violation{
		{ID: "A_night_21_23_exact2", Date: "2025-11-01", Start: "21:00", End: "23:00", Detail: "expected 2, actual 1", Priority: models.PriorityExact},
	}
	return schedule, violations
}

func TestWriteCSV(t *testing.T) {
	schedule, _ := sample()
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, schedule))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, ScheduleHeader, records[0])
	assert.Equal(t, []string{"2025-11-01", "18:00", "21:00", "A,B"}, records[1])
}

func TestWorkbook(t *testing.T) {
	schedule, violations := sample()
	data, err := Workbook(schedule, violations)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ScheduleSheet, ViolationsSheet}, f.GetSheetList())

	rows, err := f.GetRows(ScheduleSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ScheduleHeader, rows[0])
	assert.Equal(t, "A", rows[2][3])

	vrows, err := f.GetRows(ViolationsSheet)
	require.NoError(t, err)
	require.Len(t, vrows, 2)
	assert.Equal(t, "A", vrows[1][0])
	assert.Equal(t, "expected 2, actual 1", vrows[1][6])
}

func TestWorkbook_NoViolations(t *testing.T) {
	schedule, _ := sample()
	data, err := Workbook(schedule, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	vrows, err := f.GetRows(ViolationsSheet)
	require.NoError(t, err)
	assert.Len(t, vrows, 1)
}
