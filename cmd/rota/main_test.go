package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arnavshah/care-rota-api/pkg/models"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const rosterJSON = `[
	{"id": "A", "name": "Alice", "roles": ["day", "night"], "preferredDaysOff": ["2025-11-01"]},
	{"id": "B", "name": "Bob", "roles": ["day", "night"]}
]`

func setup(t *testing.T) (dir string, cmd *cobra.Command, out *bytes.Buffer) {
	t.Helper()
	logger = zap.NewNop()
	dir = t.TempDir()
	staffPath = filepath.Join(dir, "staff.json")
	require.NoError(t, os.WriteFile(staffPath, []byte(rosterJSON), 0o600))

	t.Cleanup(func() {
		month, rulesPath, staffPath, schedulePath = "", "", "", ""
		xlsxPath, csvPath, jsonPath = "", "", ""
	})

	out = &bytes.Buffer{}
	cmd = &cobra.Command{}
	cmd.SetOut(out)
	return dir, cmd, out
}

func TestGenerate(t *testing.T) {
	dir, cmd, out := setup(t)
	month = "2025-11"
	xlsxPath = filepath.Join(dir, "rota.xlsx")
	csvPath = filepath.Join(dir, "rota.csv")
	jsonPath = filepath.Join(dir, "rota.json")

	require.NoError(t, runGenerate(cmd, nil))
	assert.Contains(t, out.String(), "C_day_off_violation")

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var resp models.ScheduleResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Len(t, resp.Schedule, 30)
	assert.Equal(t, 1, resp.Summary.C)

	csvData, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(csvData)), "\n"), 91)

	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Schedule")
}

func TestGenerate_BadRules(t *testing.T) {
	dir, cmd, _ := setup(t)
	month = "2025-11"
	rulesPath = filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(rulesPath, []byte("exact:\n  - {id: \"\", start: \"21:00\", end: \"23:00\", exact: 2}\n"), 0o600))

	assert.ErrorIs(t, runGenerate(cmd, nil), models.ErrInvalidRule)
}

func TestGenerate_MissingStaff(t *testing.T) {
	_, cmd, _ := setup(t)
	month = "2025-11"
	staffPath = "does-not-exist.json"

	assert.Error(t, runGenerate(cmd, nil))
}

func TestValidate_RoundTrip(t *testing.T) {
	dir, cmd, _ := setup(t)
	month = "2025-11"
	jsonPath = filepath.Join(dir, "rota.json")
	require.NoError(t, runGenerate(cmd, nil))

	schedulePath = jsonPath
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	require.NoError(t, runValidate(cmd, nil))
	assert.Contains(t, out.String(), "C_day_off_violation")

	// without a roster day-off checks are off
	staffPath = ""
	out.Reset()
	require.NoError(t, runValidate(cmd, nil))
	assert.NotContains(t, out.String(), "C_day_off_violation")
}

func TestGenerate_RequiresStaffFlag(t *testing.T) {
	_, _, out := setup(t)
	staffPath = ""
	rootCmd.SetArgs([]string{"generate", "--month", "2025-11"})
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "staff" not set`)

	require.NotNil(t, generateCmd.Flags().Lookup("staff"))
	assert.Equal(t, []string{"true"}, generateCmd.Flags().Lookup("staff").Annotations[cobra.BashCompOneRequiredFlag])
	_, required := validateCmd.Flags().Lookup("staff").Annotations[cobra.BashCompOneRequiredFlag]
	assert.False(t, required)
}
