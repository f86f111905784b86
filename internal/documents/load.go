// Package documents loads resume and job description JSON files into
// validated domain types.
package documents

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shashank8104/resume-intelligence/internal/types"
	"github.com/shashank8104/resume-intelligence/schemas"
)

// LoadResume reads a resume JSON file, checks it against the embedded
// schema, normalizes its skill lists, and validates the result.
func LoadResume(path string) (*types.Resume, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	if err := checkSchema(content, schemas.ValidateResume); err != nil {
		return nil, err
	}

	var resume types.Resume
	if err := json.Unmarshal(content, &resume); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal JSON",
			Cause:   err,
		}
	}

	NormalizeResume(&resume)
	if err := resume.Validate(); err != nil {
		return nil, fmt.Errorf("resume %s failed validation: %w", path, err)
	}
	return &resume, nil
}

// LoadJob reads a job description JSON file through the same chain.
func LoadJob(path string) (*types.JobDescription, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	if err := checkSchema(content, schemas.ValidateJobDescription); err != nil {
		return nil, err
	}

	var job types.JobDescription
	if err := json.Unmarshal(content, &job); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal JSON",
			Cause:   err,
		}
	}

	NormalizeJob(&job)
	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("job description %s failed validation: %w", path, err)
	}
	return &job, nil
}

// checkSchema runs a schema validator over the raw document. A schema
// that cannot be loaded is skipped rather than treated as fatal; struct
// validation still guards the document.
func checkSchema(content []byte, validate func([]byte) error) error {
	err := validate(content)
	if err == nil {
		return nil
	}
	var loadErr *schemas.SchemaLoadError
	if errors.As(err, &loadErr) {
		return nil
	}
	return err
}

// NormalizeResume lowercases, trims, and deduplicates the skill lists in
// place, matching the form the generator and the ingester emit.
func NormalizeResume(resume *types.Resume) {
	if resume == nil {
		return
	}
	for category, skills := range resume.Skills {
		resume.Skills[category] = normalizeSkills(skills)
	}
	for i := range resume.Experience {
		resume.Experience[i].Skills = normalizeSkills(resume.Experience[i].Skills)
	}
}

// NormalizeJob normalizes a job description's skill lists in place.
func NormalizeJob(job *types.JobDescription) {
	if job == nil {
		return
	}
	job.RequiredSkills = normalizeSkills(job.RequiredSkills)
	job.PreferredSkills = normalizeSkills(job.PreferredSkills)
}

func normalizeSkills(skills []string) []string {
	normalized := make([]string, 0, len(skills))
	seen := make(map[string]struct{})
	for _, skill := range skills {
		cleaned := strings.ToLower(strings.TrimSpace(skill))
		if cleaned == "" {
			continue
		}
		if _, exists := seen[cleaned]; exists {
			continue
		}
		seen[cleaned] = struct{}{}
		normalized = append(normalized, cleaned)
	}
	return normalized
}
