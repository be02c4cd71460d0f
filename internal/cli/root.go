// Package cli wires the challanconv commands.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/illusionist-creator/NB-RTV-PDF-to-Excel/internal/config"
)

var version = "dev"

var (
	configPath string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "challanconv",
	Short: "Convert GRN and PRN document exports into spreadsheets",
	Long: `challanconv extracts Goods Receipt Notes and Goods Return Delivery
Challans from PDF, DOCX, HTML, Markdown, CSV and text exports and writes
one row per line item to XLSX, CSV or SQLite.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (json or text)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig resolves configuration with flag overrides and builds the logger.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	return cfg, cfg.NewLogger(cmd.ErrOrStderr()), nil
}
