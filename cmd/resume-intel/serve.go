package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashank8104/resume-intelligence/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the screening REST API server",
	Long: "Start the HTTP server exposing screening, dataset, evaluation, and " +
		"session endpoints. The server runs until interrupted and shuts down " +
		"gracefully.",
	RunE: runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (default from config, :8080)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	addr := serveAddr
	if addr == "" {
		addr = cfg.ServerAddr
	}

	srv, err := server.New(server.Config{
		Addr:           addr,
		DatabaseURL:    cfg.DatabaseURL,
		DataDir:        cfg.DataDir,
		SessionSecret:  []byte(cfg.SessionSecret),
		SessionTimeout: cfg.SessionTimeout(),
		SectionWeights: cfg.Weights.Map(),
		MaxFeatures:    cfg.MaxFeatures,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}
	return srv.Start()
}
