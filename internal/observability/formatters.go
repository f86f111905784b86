// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shashank8104/resume-intelligence/internal/pipeline"
	"github.com/shashank8104/resume-intelligence/internal/skills"
	"github.com/shashank8104/resume-intelligence/internal/storage"
	"github.com/shashank8104/resume-intelligence/internal/types"
	"github.com/shashank8104/resume-intelligence/internal/validation"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobDescription outputs a human-readable summary of the job being
// screened against, including its weighted skill targets.
func (p *Printer) PrintJobDescription(job *types.JobDescription) {
	if job == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Company:  %s\n", job.Company))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", job.Title))
	sb.WriteString(fmt.Sprintf("Location: %s\n", job.Location))
	sb.WriteString(fmt.Sprintf("Type:     %s\n", job.JobType))
	sb.WriteString(fmt.Sprintf("Level:    %s\n", job.ExperienceLevel))

	if targets, err := skills.FromJob(job); err == nil {
		sb.WriteString("\nTarget Skills:\n")
		count := min(len(targets), maxItemsToShow)
		for i := 0; i < count; i++ {
			target := targets[i]
			sb.WriteString(fmt.Sprintf("  • %s (%.1f %s)\n", target.Name, target.Weight, target.Source))
		}
		if len(targets) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(targets)-maxItemsToShow))
		}
	}

	p.printBox("JOB DESCRIPTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScreeningResult outputs the scores, gaps, and guidance for one
// screened resume.
func (p *Printer) PrintScreeningResult(result *types.ScreeningResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall Score: %.1f%%\n", result.OverallScore*100))

	sb.WriteString("\nSections:\n")
	for _, name := range types.SectionOrder {
		section, ok := result.SectionScores[name]
		if !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("  • %-10s %.1f%%\n", name, section.Score*100))
	}

	if len(result.SkillGaps) > 0 {
		sb.WriteString("\nMissing Skills:\n")
		count := min(len(result.SkillGaps), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.SkillGaps[i]))
		}
		if len(result.SkillGaps) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.SkillGaps)-maxItemsToShow))
		}
	}

	if len(result.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		count := min(len(result.Recommendations), 3)
		for i := 0; i < count; i++ {
			rec := result.Recommendations[i]
			if len(rec) > 50 {
				rec = rec[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", rec))
		}
		if len(result.Recommendations) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Recommendations)-3))
		}
	}

	p.printBox("SCREENING RESULT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLeaderboard outputs the top ranked candidates with scores and
// their leading skill gaps.
func (p *Printer) PrintLeaderboard(items []pipeline.Item) {
	scored := make([]pipeline.Item, 0, len(items))
	for _, item := range items {
		if item.Result != nil {
			scored = append(scored, item)
		}
	}
	if len(scored) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total candidates scored: %d\n\n", len(scored)))

	count := min(len(scored), maxItemsToShow)
	for i := 0; i < count; i++ {
		item := scored[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", item.Rank, item.ResumeID))
		sb.WriteString(fmt.Sprintf("    Score: %.2f\n", item.Result.OverallScore))
		if len(item.Result.SkillGaps) > 0 {
			gaps := strings.Join(item.Result.SkillGaps, ", ")
			if len(gaps) > 40 {
				gaps = gaps[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Gaps: %s\n", gaps))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(scored) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(scored)-maxItemsToShow))
	}

	p.printBox("CANDIDATE LEADERBOARD", sb.String())
}

// PrintStats outputs a summary of the synthetic dataset on disk.
func (p *Printer) PrintStats(stats *storage.Stats) {
	if stats == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Data dir: %s\n", stats.DataDirectory))
	sb.WriteString(fmt.Sprintf("Resumes:  %d\n", stats.TotalResumes))
	sb.WriteString(fmt.Sprintf("Jobs:     %d\n", stats.TotalJobDescriptions))

	writeCounts(&sb, "Resume Roles", stats.ResumeRoles)
	writeCounts(&sb, "Job Roles", stats.JobRoles)

	p.printBox("DATASET STATS", strings.TrimSuffix(sb.String(), "\n"))
}

// writeCounts appends a sorted, capped "name: count" list for one group.
func writeCounts(sb *strings.Builder, heading string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	sb.WriteString(fmt.Sprintf("\n%s:\n", heading))
	count := min(len(names), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s: %d\n", names[i], counts[names[i]]))
	}
	if len(names) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(names)-maxItemsToShow))
	}
}

// PrintViolations outputs any screening artifact violations found.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintViolations(violations *validation.Violations) {
	if violations == nil || len(violations.Violations) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO VIOLATIONS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d violations:\n\n", len(violations.Violations)))

	for i, v := range violations.Violations {
		details := v.Details
		if len(details) > 45 {
			details = details[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("⚠ %s (%s)\n", v.Type, v.Severity))
		sb.WriteString(fmt.Sprintf("  %s\n", details))
		if i < len(violations.Violations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("RESULT VIOLATIONS", sb.String())
}
