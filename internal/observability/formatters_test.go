package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashank8104/resume-intelligence/internal/pipeline"
	"github.com/shashank8104/resume-intelligence/internal/storage"
	"github.com/shashank8104/resume-intelligence/internal/types"
	"github.com/shashank8104/resume-intelligence/internal/validation"
)

func TestPrintJobDescription(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	job := &types.JobDescription{
		Title:            "Senior Engineer",
		Company:          "Acme Corp",
		Location:         "Remote",
		JobType:          types.JobTypeFullTime,
		ExperienceLevel:  types.LevelSenior,
		Description:      "Keep services healthy.",
		Requirements:     []string{"5+ years of experience"},
		Responsibilities: []string{"Ship features"},
		RequiredSkills:   []string{"Go"},
		PreferredSkills:  []string{"Kubernetes"},
	}

	p.PrintJobDescription(job)
	output := buf.String()

	assert.Contains(t, output, "JOB DESCRIPTION")
	assert.Contains(t, output, "Acme Corp")
	assert.Contains(t, output, "Senior Engineer")
	assert.Contains(t, output, "full_time")
	assert.Contains(t, output, "go (1.0 required)")
	assert.Contains(t, output, "kubernetes (0.5 preferred)")
}

func TestPrintJobDescription_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobDescription(nil)

	assert.Empty(t, buf.String())
}

func TestPrintJobDescription_NoSkills(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	job := &types.JobDescription{
		Title:       "Groundskeeper",
		Company:     "Acme Corp",
		Description: "Tend the grounds.",
	}

	p.PrintJobDescription(job)
	output := buf.String()

	assert.Contains(t, output, "JOB DESCRIPTION")
	assert.NotContains(t, output, "Target Skills")
}

func TestPrintScreeningResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.ScreeningResult{
		OverallScore: 0.742,
		SectionScores: map[string]types.SectionScore{
			types.SectionSkills:     {Score: 0.8},
			types.SectionExperience: {Score: 0.61},
		},
		SkillGaps:       []string{"kubernetes", "terraform"},
		Recommendations: []string{"Strengthen skills section by adding: kubernetes"},
	}

	p.PrintScreeningResult(result)
	output := buf.String()

	assert.Contains(t, output, "SCREENING RESULT")
	assert.Contains(t, output, "74.2%")
	assert.Contains(t, output, "80.0%")
	assert.Contains(t, output, "kubernetes")
	assert.Contains(t, output, "Strengthen skills section")
}

func TestPrintScreeningResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScreeningResult(nil)

	assert.Empty(t, buf.String())
}

func TestPrintLeaderboard(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	items := []pipeline.Item{
		{
			ResumeID: "dana",
			Rank:     1,
			Result: &types.ScreeningResult{
				OverallScore: 0.82,
				SkillGaps:    []string{"kubernetes"},
			},
		},
		{
			ResumeID: "riley",
			Rank:     2,
			Result:   &types.ScreeningResult{OverallScore: 0.41},
		},
		{ResumeID: "broken", LoadError: "failed to parse document"},
	}

	p.PrintLeaderboard(items)
	output := buf.String()

	assert.Contains(t, output, "CANDIDATE LEADERBOARD")
	assert.Contains(t, output, "Total candidates scored: 2")
	assert.Contains(t, output, "#1  dana")
	assert.Contains(t, output, "0.82")
	assert.Contains(t, output, "Gaps: kubernetes")
	assert.Contains(t, output, "#2  riley")
	assert.NotContains(t, output, "broken")
}

func TestPrintLeaderboard_NothingScored(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLeaderboard([]pipeline.Item{{ResumeID: "broken", LoadError: "unreadable"}})

	assert.Empty(t, buf.String())
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	stats := &storage.Stats{
		TotalResumes:         12,
		TotalJobDescriptions: 4,
		ResumeRoles:          map[string]int{"backend_engineer": 8, "data_scientist": 4},
		JobRoles:             map[string]int{"backend_engineer": 4},
		DataDirectory:        "data",
	}

	p.PrintStats(stats)
	output := buf.String()

	assert.Contains(t, output, "DATASET STATS")
	assert.Contains(t, output, "Resumes:  12")
	assert.Contains(t, output, "Jobs:     4")
	assert.Contains(t, output, "Resume Roles")
	assert.Contains(t, output, "backend_engineer: 8")
	assert.Contains(t, output, "data_scientist: 4")
	assert.Contains(t, output, "Job Roles")
}

func TestPrintViolations_WithViolations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	violations := &validation.Violations{
		Violations: []validation.Violation{
			{
				Type:     "invalid_score",
				Severity: validation.SeverityError,
				Details:  "overall score 1.2 outside [0,1]",
			},
		},
	}

	p.PrintViolations(violations)
	output := buf.String()

	assert.Contains(t, output, "RESULT VIOLATIONS")
	assert.Contains(t, output, "invalid_score")
	assert.Contains(t, output, "overall score 1.2")
}

func TestPrintViolations_NoViolations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	violations := &validation.Violations{
		Violations: []validation.Violation{},
	}

	p.PrintViolations(violations)
	output := buf.String()

	assert.Contains(t, output, "NO VIOLATIONS FOUND")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	job := &types.JobDescription{
		Title:   "Senior Staff Principal Distinguished Engineer Level 99",
		Company: "A Very Long Company Name That Should Be Truncated To Fit",
	}

	p.PrintJobDescription(job)
	output := buf.String()

	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "│"))
}
