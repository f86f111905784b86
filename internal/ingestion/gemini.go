package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shashank8104/resume-intelligence/internal/llm"
	"github.com/shashank8104/resume-intelligence/internal/prompts"
	"github.com/shashank8104/resume-intelligence/internal/types"
)

const (
	parsingPromptFile   = "parsing.json"
	extractionPromptKey = "extract-job-description"
)

// parseWithLLM asks the model to extract a structured job description from
// cleaned posting text, then normalizes enum fields and validates the
// result before handing it back.
func parseWithLLM(ctx context.Context, client llm.Client, text string) (*types.JobDescription, error) {
	template, err := prompts.Get(parsingPromptFile, extractionPromptKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load extraction prompt: %w", err)
	}
	prompt := prompts.Format(template, map[string]string{"JobText": text})

	payload, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to generate extraction: %w", err)
	}
	payload = llm.CleanJSONBlock(payload)

	var job types.JobDescription
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal extraction: %w (content: %s)", err, truncateForError(payload))
	}

	normalizeParsedJob(&job, text)
	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("model returned an invalid job description: %w", err)
	}
	return &job, nil
}

// normalizeParsedJob cleans up model output: trimmed strings, canonical
// enum values, lowercase skills, and heuristic backfill for fields the
// model left empty.
func normalizeParsedJob(job *types.JobDescription, sourceText string) {
	job.Title = strings.TrimSpace(job.Title)
	job.Company = strings.TrimSpace(job.Company)
	job.Location = strings.TrimSpace(job.Location)
	job.Industry = strings.TrimSpace(job.Industry)
	job.Description = strings.TrimSpace(job.Description)

	job.JobType = normalizeJobType(string(job.JobType), sourceText)
	job.ExperienceLevel = normalizeJobLevel(string(job.ExperienceLevel), job.Title, job.Requirements)

	job.Requirements = cleanList(job.Requirements)
	job.PreferredQualifications = cleanList(job.PreferredQualifications)
	job.Responsibilities = cleanList(job.Responsibilities)
	job.Benefits = cleanList(job.Benefits)
	job.RequiredSkills = cleanSkillList(job.RequiredSkills)
	job.PreferredSkills = cleanSkillList(job.PreferredSkills)

	if job.Company == "" {
		job.Company = detectCompany(sourceText)
	}
	if job.Location == "" {
		job.Location = detectLocation(sourceText)
	}
	if len(job.RequiredSkills) == 0 {
		job.RequiredSkills, _ = scanSkills(map[postingSection][]string{}, sourceText)
	}
	if job.SalaryRange != nil && job.SalaryRange.Max < job.SalaryRange.Min {
		job.SalaryRange.Min, job.SalaryRange.Max = job.SalaryRange.Max, job.SalaryRange.Min
	}
}

func normalizeJobType(raw string, sourceText string) types.JobType {
	key := strings.ReplaceAll(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "-", "_"), " ", "_")
	switch key {
	case "full_time", "fulltime", "permanent":
		return types.JobTypeFullTime
	case "part_time", "parttime":
		return types.JobTypePartTime
	case "contract", "contractor", "freelance", "temporary":
		return types.JobTypeContract
	case "internship", "intern":
		return types.JobTypeInternship
	case "remote":
		return types.JobTypeRemote
	}
	return detectJobType(sourceText)
}

func normalizeJobLevel(raw, title string, requirements []string) types.JobLevel {
	key := strings.ReplaceAll(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "-", "_"), " ", "_")
	switch key {
	case "entry", "entry_level", "junior", "graduate", "associate":
		return types.LevelEntry
	case "mid", "mid_level", "intermediate":
		return types.LevelMid
	case "senior", "sr":
		return types.LevelSenior
	case "lead", "staff", "principal":
		return types.LevelLead
	case "executive", "director", "vp", "c_level":
		return types.LevelExecutive
	}
	return detectLevel(title, strings.Join(requirements, "\n"))
}

func cleanList(items []string) []string {
	out := items[:0]
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func cleanSkillList(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := skills[:0]
	for _, skill := range skills {
		key := strings.ToLower(strings.TrimSpace(skill))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}

func truncateForError(payload string) string {
	const limit = 200
	if len(payload) <= limit {
		return payload
	}
	return payload[:limit] + "..."
}
