package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/shashank8104/resume-intelligence/internal/config"
	"github.com/shashank8104/resume-intelligence/internal/logging"
	"github.com/shashank8104/resume-intelligence/schemas"
)

var rootCmd = &cobra.Command{
	Use:   "resume-intel",
	Short: "Resume Intelligence screening toolkit",
	Long: "Resume Intelligence scores structured resumes against job descriptions, " +
		"explains the match, generates synthetic datasets, and serves the same " +
		"capabilities over a REST API.",
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var (
	v       = viper.New()
	cfgFile string

	// Populated by setup before any subcommand runs.
	cfg    *config.Config
	logger *zap.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default resume-intel.{yaml,json} in the working directory)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory holding the flat-file resume and job store")
	rootCmd.PersistentFlags().String("db-url", "", "PostgreSQL URL for the screening results store")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit JSON logs instead of console output")

	_ = v.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = v.BindPFlag("database_url", rootCmd.PersistentFlags().Lookup("db-url"))
	_ = v.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = v.BindPFlag("json_logs", rootCmd.PersistentFlags().Lookup("json-logs"))
}

// setup loads configuration and builds the logger for every subcommand.
func setup(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	logger, err = logging.New(cfg.JSONLogs, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// writeJSON marshals v with indentation to path, or to stdout when path
// is empty.
func writeJSON(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if path == "" {
		_, err = fmt.Fprintln(os.Stdout, string(data))
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// checkOutputSchema validates an emitted document against its embedded
// schema. Problems surface as warnings only; the output has already
// been produced and a schema mismatch should not destroy it.
func checkOutputSchema(validate func([]byte) error, doc any) {
	data, err := json.Marshal(doc)
	if err != nil {
		return
	}
	if err := validate(data); err != nil {
		var validationErr *schemas.ValidationError
		var schemaLoadErr *schemas.SchemaLoadError
		if errors.As(err, &validationErr) {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: output does not validate against schema: %v\n", err)
		} else if errors.As(err, &schemaLoadErr) {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate output against schema (schema loading failed): %v\n", err)
		} else {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate output against schema: %v\n", err)
		}
	}
}
