package loader

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arnavshah/care-rota-api/pkg/models"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for file extensions the loader cannot read
var ErrUnsupportedFormat = errors.New("unsupported file format")

// LoadStaff reads a roster from a .json, .yaml/.yml or .csv file
func LoadStaff(path string) ([]models.StaffMember, error) {
	var staff []models.StaffMember

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("loader: open %s: %w", path, err)
		}
		defer f.Close()
		if staff, err = ReadStaffCSV(f); err != nil {
			return nil, fmt.Errorf("loader: %s: %w", path, err)
		}
	default:
		if err := decodeFile(path, &staff); err != nil {
			return nil, err
		}
	}

	if err := models.ValidateStaff(staff); err != nil {
		return nil, fmt.Errorf("loader: %s: %w", path, err)
	}
	return staff, nil
}

// LoadRules reads a rule set from a .json or .yaml/.yml file
func LoadRules(path string) (models.RuleSet, error) {
	var rules models.RuleSet
	if err := decodeFile(path, &rules); err != nil {
		return models.RuleSet{}, err
	}
	if err := rules.Validate(); err != nil {
		return models.RuleSet{}, fmt.Errorf("loader: %s: %w", path, err)
	}
	return rules, nil
}

// LoadSchedule reads a previously generated schedule. The file may hold a
// bare list of days or a full generate result with a "schedule" field.
func LoadSchedule(path string) (models.Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	var schedule models.Schedule
	err = decode(path, data, &schedule)
	if err == nil {
		return schedule, nil
	}
	if errors.Is(err, ErrUnsupportedFormat) {
		return nil, fmt.Errorf("loader: %s: %w", path, err)
	}
	var result struct {
		Schedule models.Schedule `json:"schedule" yaml:"schedule"`
	}
	if decode(path, data, &result) != nil {
		return nil, fmt.Errorf("loader: %s: %w", path, err)
	}
	return result.Schedule, nil
}

// ParseRules decodes a rule set from raw bytes, choosing the format from name
func ParseRules(name string, data []byte) (models.RuleSet, error) {
	var rules models.RuleSet
	if err := decode(name, data, &rules); err != nil {
		return models.RuleSet{}, err
	}
	if err := rules.Validate(); err != nil {
		return models.RuleSet{}, err
	}
	return rules, nil
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("loader: read %s: %w", path, err)
	}
	if err := decode(path, data, v); err != nil {
		return fmt.Errorf("loader: %s: %w", path, err)
	}
	return nil
}

func decode(name string, data []byte, v any) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return json.Unmarshal(data, v)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	default:
		return fmt.Errorf("%q: %w", filepath.Ext(name), ErrUnsupportedFormat)
	}
}

// ReadStaffCSV parses a roster with header columns id, name, roles and
// preferred_days_off. List cells are separated by "|".
func ReadStaffCSV(r io.Reader) ([]models.StaffMember, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read staff header: %w", err)
	}
	cols := make(map[string]int)
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	if _, ok := cols["id"]; !ok {
		return nil, fmt.Errorf("staff header has no id column: %w", models.ErrInvalidStaff)
	}

	cell := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	staff := []models.StaffMember{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("staff line %d: %w", line, err)
		}
		staff = append(staff, models.StaffMember{
			ID:               cell(record, "id"),
			Name:             cell(record, "name"),
			Roles:            splitList(cell(record, "roles")),
			PreferredDaysOff: splitList(cell(record, "preferred_days_off")),
		})
	}
	return staff, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, "|") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
