package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashank8104/resume-intelligence/internal/observability"
	"github.com/shashank8104/resume-intelligence/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Screen a directory of resumes against one job description",
	Long: "Load every resume JSON file from a directory (plus any given explicitly), " +
		"screen them against a job description from a file or a posting URL, and emit " +
		"a ranked run report. Files that fail to load are reported per entry without " +
		"failing the run.",
	RunE: runBatch,
}

var (
	batchJobPath    string
	batchJobURL     string
	batchResumeDir  string
	batchResumes    []string
	batchExplain    bool
	batchOutPath    string
	batchLoaders    int
	batchUseBrowser bool
	batchAPIKey     string
	batchVerbose    bool
)

func init() {
	batchCmd.Flags().StringVarP(&batchJobPath, "job", "j", "", "Path to job description JSON file")
	batchCmd.Flags().StringVarP(&batchJobURL, "job-url", "u", "", "URL of a job posting to ingest instead of a file")
	batchCmd.Flags().StringVarP(&batchResumeDir, "resume-dir", "d", "", "Directory scanned for resume JSON files")
	batchCmd.Flags().StringArrayVarP(&batchResumes, "resume", "r", nil, "Resume JSON file to include (repeatable)")
	batchCmd.Flags().BoolVar(&batchExplain, "explain", false, "Attach explanations to every scored resume")
	batchCmd.Flags().StringVarP(&batchOutPath, "out", "o", "", "Write the run report JSON to this file instead of stdout")
	batchCmd.Flags().IntVar(&batchLoaders, "loaders", 0, "Concurrent resume file loaders (default 8)")
	batchCmd.Flags().BoolVar(&batchUseBrowser, "use-browser", false, "Allow the headless-browser fallback when ingesting from a URL")
	batchCmd.Flags().StringVar(&batchAPIKey, "api-key", "", "Gemini API key for URL ingestion (overrides GEMINI_API_KEY env var)")
	batchCmd.Flags().BoolVar(&batchVerbose, "verbose", false, "Print progress and the final leaderboard to stderr")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(_ *cobra.Command, _ []string) error {
	apiKey := batchAPIKey
	if apiKey == "" {
		apiKey = cfg.GeminiAPIKey
	}

	opts := pipeline.RunOptions{
		JobPath:        batchJobPath,
		JobURL:         batchJobURL,
		ResumePaths:    batchResumes,
		ResumeDir:      batchResumeDir,
		Explain:        batchExplain,
		Loaders:        batchLoaders,
		MaxFeatures:    cfg.MaxFeatures,
		SectionWeights: cfg.Weights.Map(),
		GeminiAPIKey:   apiKey,
		UseBrowser:     batchUseBrowser || cfg.UseBrowser,
		DatabaseURL:    cfg.DatabaseURL,
		Logger:         logger,
	}
	if batchVerbose {
		opts.OnProgress = func(ev pipeline.ProgressEvent) {
			_, _ = fmt.Fprintf(os.Stderr, "[%s] %s\n", ev.Step, ev.Message)
		}
	}

	result, err := pipeline.Run(context.Background(), opts)
	if err != nil {
		return err
	}

	if err := writeJSON(batchOutPath, result); err != nil {
		return err
	}

	if batchVerbose {
		observability.NewPrinter(os.Stderr).PrintLeaderboard(result.Items)
	}
	return nil
}
