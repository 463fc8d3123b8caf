package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/arnavshah/care-rota-api/pkg/models"
	"github.com/xuri/excelize/v2"
)

const (
	ScheduleSheet   = "Schedule"
	ViolationsSheet = "Violations"
)

// ScheduleHeader is shared by the workbook and CSV exports
var ScheduleHeader = []string{"date", "start", "end", "staff_ids"}

// ViolationsHeader lists the violation columns
var ViolationsHeader = []string{"priority", "id", "date", "start", "end", "staff_id", "detail"}

// ScheduleRows flattens a schedule into one row per slot
func ScheduleRows(schedule models.Schedule) [][]string {
	var rows [][]string
	for _, day := range schedule {
		for _, sl := range day.Slots {
			rows = append(rows, []string{day.Date, sl.Start, sl.End, strings.Join(sl.StaffIDs, ",")})
		}
	}
	return rows
}

// ViolationRows flattens violations in their original order
func ViolationRows(violations []models.Violation) [][]string {
	rows := make([][]string, 0, len(violations))
	for _, v := range violations {
		rows = append(rows, []string{string(v.Priority), v.ID, v.Date, v.Start, v.End, v.StaffID, v.Detail})
	}
	return rows
}

// WriteCSV writes the schedule as CSV
func WriteCSV(w io.Writer, schedule models.Schedule) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ScheduleHeader); err != nil {
		return err
	}
	if err := writer.WriteAll(ScheduleRows(schedule)); err != nil {
		return fmt.Errorf("write schedule csv: %w", err)
	}
	return nil
}

// Workbook builds an xlsx file with a Schedule and a Violations sheet
func Workbook(schedule models.Schedule, violations []models.Violation) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeSheet(f, ScheduleSheet, ScheduleHeader, ScheduleRows(schedule), headerStyle); err != nil {
		return nil, err
	}
	if err := writeSheet(f, ViolationsSheet, ViolationsHeader, ViolationRows(violations), headerStyle); err != nil {
		return nil, err
	}

	// excelize starts with Sheet1
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(ScheduleSheet); err == nil {
		f.SetActiveSheet(idx)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]string, headerStyle int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d on %s: %w", i+2, sheet, err)
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetColWidth(sheet, "A", lastCol, 16); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	return nil
}
