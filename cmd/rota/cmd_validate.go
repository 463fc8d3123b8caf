package main

import (
	"fmt"

	"github.com/arnavshah/care-rota-api/pkg/loader"
	"github.com/arnavshah/care-rota-api/pkg/models"
	"github.com/arnavshah/care-rota-api/pkg/report"
	"github.com/arnavshah/care-rota-api/pkg/validator"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var schedulePath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check an existing schedule against a rule set",
	Long: `Reads a schedule written by "rota generate --json" (or a bare schedule
array) and prints its violations. Day-off checks run only when --staff is given.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&schedulePath, "schedule", "", "schedule file (.json or .yaml)")
	validateCmd.Flags().StringVar(&staffPath, "staff", "", staffUsage+"; enables day-off checks")
	cobra.CheckErr(validateCmd.MarkFlagRequired("schedule"))
}

func runValidate(cmd *cobra.Command, args []string) error {
	schedule, err := loader.LoadSchedule(schedulePath)
	if err != nil {
		return err
	}
	rules, err := loadRules()
	if err != nil {
		return err
	}

	var staff []models.StaffMember
	if staffPath != "" {
		if staff, err = loader.LoadStaff(staffPath); err != nil {
			return err
		}
	}

	violations := validator.ValidateSchedule(schedule, rules, staff)
	summary := validator.Summarize(violations)
	logger.Info("schedule validated", zap.String("path", schedulePath), zap.Int("days", len(schedule)),
		zap.Int("violations", summary.Total))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, report.Title("Violations"))
	fmt.Fprintln(out, report.Violations(violations))
	fmt.Fprintln(out, report.Summary(summary))
	return nil
}
