package cmd

import (
	"fmt"
	"os"

	"citysense-be/config"
	"citysense-be/logger"
	"citysense-be/output"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Shared dependencies, set in PersistentPreRunE.
var (
	cfg *config.Config
	log *zap.Logger
	ui  *output.UI

	buildVersion = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "citysense",
	Short: "CitySense civic issue reporting service",
	Long: `citysense runs the civic issue reporting API: citizens report
problems, admins move them through the workflow, and a background
simulator keeps the demo city busy.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initDeps(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

// Execute is the entry point called from main.go.
func Execute(version string) {
	buildVersion = version
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		output.New().Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: json or console (overrides LOG_FORMAT)")
}

func initDeps(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.Log.Format = v
	}

	log, err = logger.New(cfg.Log.Level, cfg.Log.Format, "citysense")
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	ui = output.New()
	return nil
}
