package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shashank8104/resume-intelligence/internal/documents"
	"github.com/shashank8104/resume-intelligence/internal/explain"
	"github.com/shashank8104/resume-intelligence/internal/observability"
	"github.com/shashank8104/resume-intelligence/internal/screening"
	"github.com/shashank8104/resume-intelligence/internal/types"
	"github.com/shashank8104/resume-intelligence/internal/validation"
	"github.com/shashank8104/resume-intelligence/schemas"
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Screen one resume against a job description",
	Long:  "Screen a resume JSON file against a job description JSON file and emit the scored result, optionally with a detailed explanation.",
	RunE:  runScreen,
}

var (
	screenResumePath string
	screenJobPath    string
	screenExplain    bool
	screenOutPath    string
	screenVerbose    bool
)

// screenOutput is the JSON document the screen command emits.
type screenOutput struct {
	Result      *types.ScreeningResult `json:"screening_result"`
	Explanation *explain.Explanation   `json:"explanation,omitempty"`
}

func init() {
	screenCmd.Flags().StringVarP(&screenResumePath, "resume", "r", "", "Path to resume JSON file (required)")
	screenCmd.Flags().StringVarP(&screenJobPath, "job", "j", "", "Path to job description JSON file (required)")
	screenCmd.Flags().BoolVar(&screenExplain, "explain", false, "Attach a detailed explanation to the result")
	screenCmd.Flags().StringVarP(&screenOutPath, "out", "o", "", "Write the result JSON to this file instead of stdout")
	screenCmd.Flags().BoolVar(&screenVerbose, "verbose", false, "Print a human-readable summary to stderr")

	_ = screenCmd.MarkFlagRequired("resume")
	_ = screenCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(screenCmd)
}

func runScreen(_ *cobra.Command, _ []string) error {
	resume, err := documents.LoadResume(screenResumePath)
	if err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}
	job, err := documents.LoadJob(screenJobPath)
	if err != nil {
		return fmt.Errorf("failed to load job description: %w", err)
	}

	pipe := screening.New(screening.Config{
		SectionWeights: cfg.Weights.Map(),
		MaxFeatures:    cfg.MaxFeatures,
		Logger:         logger,
	})
	result, err := pipe.Screen(resume, job, screenExplain)
	if err != nil {
		return fmt.Errorf("screening failed: %w", err)
	}

	output := screenOutput{Result: result}
	if screenExplain {
		explanation, err := explain.New(logger).Explain(resume, job, result)
		if err != nil {
			logger.Warn("failed to build explanation", zap.Error(err))
		} else {
			output.Explanation = explanation
		}
	}

	if err := writeJSON(screenOutPath, output); err != nil {
		return err
	}
	checkOutputSchema(schemas.ValidateScreeningResult, result)

	if screenVerbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintJobDescription(job)
		printer.PrintScreeningResult(result)
		printer.PrintViolations(validation.CheckResult(result))
	}
	return nil
}
