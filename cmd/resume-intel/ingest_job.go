package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shashank8104/resume-intelligence/internal/ingestion"
	"github.com/shashank8104/resume-intelligence/internal/llm"
	"github.com/shashank8104/resume-intelligence/internal/observability"
	"github.com/shashank8104/resume-intelligence/internal/types"
	"github.com/shashank8104/resume-intelligence/schemas"
)

var ingestJobCmd = &cobra.Command{
	Use:   "ingest-job",
	Short: "Ingest a job posting from a URL or file into job description JSON",
	Long: "Fetch a job posting from a URL (or read a local HTML/text file), clean " +
		"the content, and parse it into a structured job description. With a Gemini " +
		"API key the LLM parser runs first with a heuristic fallback; without one " +
		"the heuristic parser runs alone.",
	RunE: runIngestJob,
}

var (
	ingestURL        string
	ingestFile       string
	ingestOutPath    string
	ingestUseBrowser bool
	ingestAPIKey     string
	ingestVerbose    bool
)

// ingestOutput is the JSON document the ingest-job command emits.
type ingestOutput struct {
	Job    *types.JobDescription `json:"job"`
	Source *ingestion.Source     `json:"source"`
}

func init() {
	ingestJobCmd.Flags().StringVarP(&ingestURL, "url", "u", "", "URL to fetch the job posting from")
	ingestJobCmd.Flags().StringVarP(&ingestFile, "file", "f", "", "Path to a local HTML or text file containing the posting")
	ingestJobCmd.Flags().StringVarP(&ingestOutPath, "out", "o", "", "Write the job description JSON to this file instead of stdout")
	ingestJobCmd.Flags().BoolVar(&ingestUseBrowser, "use-browser", false, "Allow the headless-browser fallback for script-rendered postings")
	ingestJobCmd.Flags().StringVar(&ingestAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	ingestJobCmd.Flags().BoolVar(&ingestVerbose, "verbose", false, "Print a human-readable summary to stderr")

	rootCmd.AddCommand(ingestJobCmd)
}

func runIngestJob(_ *cobra.Command, _ []string) error {
	if ingestFile == "" && ingestURL == "" {
		return fmt.Errorf("either --file or --url must be provided")
	}
	if ingestFile != "" && ingestURL != "" {
		return fmt.Errorf("--file and --url are mutually exclusive; provide only one")
	}

	apiKey := ingestAPIKey
	if apiKey == "" {
		apiKey = cfg.GeminiAPIKey
	}

	ctx := context.Background()

	var client llm.Client
	if apiKey != "" {
		c, err := llm.NewClient(ctx, nil, apiKey)
		if err != nil {
			logger.Warn("failed to initialize LLM client, using heuristic parser", zap.Error(err))
		} else {
			client = c
			defer c.Close()
		}
	}

	ingester := ingestion.New(ingestion.Options{
		Logger:     logger,
		Client:     client,
		UseBrowser: ingestUseBrowser || cfg.UseBrowser,
	})

	var job *types.JobDescription
	var source *ingestion.Source
	var err error
	if ingestURL != "" {
		job, source, err = ingester.FromURL(ctx, ingestURL)
		if err != nil {
			return fmt.Errorf("failed to ingest from URL: %w", err)
		}
	} else {
		job, source, err = ingester.FromFile(ctx, ingestFile)
		if err != nil {
			return fmt.Errorf("failed to ingest from file: %w", err)
		}
	}

	if err := writeJSON(ingestOutPath, ingestOutput{Job: job, Source: source}); err != nil {
		return err
	}
	checkOutputSchema(schemas.ValidateJobDescription, job)

	if ingestVerbose {
		observability.NewPrinter(os.Stderr).PrintJobDescription(job)
	}
	return nil
}
