package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashank8104/resume-intelligence/internal/observability"
	"github.com/shashank8104/resume-intelligence/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report what the data directory holds",
	Long:  "Summarize the stored dataset: document counts, role and level distributions, and the most frequent skills.",
	RunE:  runStats,
}

var statsJSON bool

// statsOutput is the JSON document the stats command emits.
type statsOutput struct {
	Stats     *storage.Stats       `json:"stats"`
	TopSkills []storage.SkillCount `json:"top_skills,omitempty"`
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Emit JSON instead of the human-readable summary")

	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, _ []string) error {
	store, err := storage.New(storage.Config{Dir: cfg.DataDir, Logger: logger})
	if err != nil {
		return fmt.Errorf("failed to open data storage: %w", err)
	}

	output := statsOutput{Stats: store.Stats()}
	if topSkills, err := store.SkillFrequency(10); err == nil {
		output.TopSkills = topSkills
	}

	if statsJSON {
		return writeJSON("", output)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintStats(output.Stats)
	for _, skill := range output.TopSkills {
		_, _ = fmt.Fprintf(os.Stdout, "  %-20s %d\n", skill.Skill, skill.Count)
	}
	return nil
}
