// Command rota builds and checks monthly care-home rotas from the shell.
package main

import (
	"fmt"
	"os"

	"github.com/arnavshah/care-rota-api/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var logger *zap.Logger

var (
	verbose   bool
	rulesPath string
	// --staff is local to each subcommand: required by generate, optional for validate
	staffPath string
)

const staffUsage = "staff roster file (.json, .yaml or .csv)"

var rootCmd = &cobra.Command{
	Use:   "rota",
	Short: "Generate and validate monthly care rotas",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadEnv()
		cfg := config.Load()
		if verbose {
			cfg.LogLevel = "debug"
		}
		l, err := cfg.NewLogger()
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		logger = l
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&rulesPath, "rules", "", "rule set file (.json or .yaml); defaults to the built-in rules")

	rootCmd.AddCommand(generateCmd, validateCmd)
}

func main() {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
