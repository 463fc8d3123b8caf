package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/arnavshah/care-rota-api/pkg/export"
	"github.com/arnavshah/care-rota-api/pkg/loader"
	"github.com/arnavshah/care-rota-api/pkg/models"
	"github.com/arnavshah/care-rota-api/pkg/report"
	"github.com/arnavshah/care-rota-api/pkg/scheduler"
	"github.com/arnavshah/care-rota-api/pkg/validator"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	month    string
	xlsxPath string
	csvPath  string
	jsonPath string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build a month's rota and report rule violations",
	Long: `Builds the rota for --month from the --staff roster, checks it against
--rules (or the built-in rules) and prints both tables. Violations never
change the exit status; only load and write errors do.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&month, "month", "", "target month, YYYY-MM")
	generateCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write an Excel workbook here")
	generateCmd.Flags().StringVar(&csvPath, "csv", "", "write the schedule as CSV here")
	generateCmd.Flags().StringVar(&jsonPath, "json", "", "write the full result as JSON here")
	generateCmd.Flags().StringVar(&staffPath, "staff", "", staffUsage)
	cobra.CheckErr(generateCmd.MarkFlagRequired("month"))
	cobra.CheckErr(generateCmd.MarkFlagRequired("staff"))
}

func loadRules() (models.RuleSet, error) {
	if rulesPath == "" {
		return models.DefaultRules(), nil
	}
	return loader.LoadRules(rulesPath)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	staff, err := loader.LoadStaff(staffPath)
	if err != nil {
		return err
	}
	rules, err := loadRules()
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	log := logger.With(zap.String("run_id", runID), zap.String("month", month))

	s := scheduler.NewScheduler(staff)
	schedule := s.Build(month)
	if len(schedule) == 0 {
		log.Warn("month did not parse, schedule is empty")
	}
	for _, f := range s.Fallbacks {
		log.Debug("fallback", zap.String("date", f.Date), zap.String("slot", report.SlotLabel(f.Start, f.End)),
			zap.String("kind", string(f.Kind)), zap.String("detail", f.Detail))
	}

	violations := validator.ValidateSchedule(schedule, rules, staff)
	summary := validator.Summarize(violations)
	log.Info("schedule generated", zap.Int("staff", len(staff)), zap.Int("days", len(schedule)),
		zap.Int("violations", summary.Total))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, report.Title("Rota "+month))
	fmt.Fprintln(out, report.Schedule(schedule))
	fmt.Fprintln(out, report.Title("Violations"))
	fmt.Fprintln(out, report.Violations(violations))
	fmt.Fprintln(out, report.Summary(summary))

	resp := models.ScheduleResponse{
		RunID:         runID,
		Month:         month,
		Schedule:      schedule,
		Violations:    violations,
		Summary:       summary,
		Fallbacks:     s.Fallbacks,
		FairnessScore: s.FairnessScore(),
		Staff:         s.Stats(),
	}
	return writeOutputs(resp)
}

func writeOutputs(resp models.ScheduleResponse) error {
	if xlsxPath != "" {
		data, err := export.Workbook(resp.Schedule, resp.Violations)
		if err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
		if err := os.WriteFile(xlsxPath, data, 0o644); err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
	}
	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("csv: %w", err)
		}
		if err := export.WriteCSV(f, resp.Schedule); err != nil {
			f.Close()
			return fmt.Errorf("csv: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("csv: %w", err)
		}
	}
	if jsonPath != "" {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("json: %w", err)
		}
		if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
			return fmt.Errorf("json: %w", err)
		}
	}
	return nil
}
