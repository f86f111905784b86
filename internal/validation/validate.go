// Package validation checks screening inputs and outputs against the
// engine's structural constraints. Input checks guard the API boundary;
// result checks catch internal inconsistencies before a result ships.
package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/shashank8104/resume-intelligence/internal/types"
)

// Severity levels for violations.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Bounds enforced on screening results.
const (
	maxSkillGaps       = 5
	maxRecommendations = 5
)

// Violation is a single constraint breach found in a screening artifact.
type Violation struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Details  string `json:"details"`
	Section  string `json:"section,omitempty"`
}

// Violations aggregates the breaches found in one artifact.
type Violations struct {
	Violations []Violation `json:"violations"`
}

// HasErrors reports whether any violation is error severity.
func (v *Violations) HasErrors() bool {
	for _, violation := range v.Violations {
		if violation.Severity == SeverityError {
			return true
		}
	}
	return false
}

// CheckResume validates a screening input resume. It returns nil when the
// resume is acceptable and a descriptive error otherwise.
func CheckResume(resume *types.Resume) error {
	if resume == nil {
		return fmt.Errorf("validation error: resume is nil")
	}
	if err := resume.Validate(); err != nil {
		return fmt.Errorf("validation error: %s", firstValidationMessage(err))
	}
	return nil
}

// CheckJob validates a screening input job description.
func CheckJob(job *types.JobDescription) error {
	if job == nil {
		return fmt.Errorf("validation error: job description is nil")
	}
	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation error: %s", firstValidationMessage(err))
	}
	return nil
}

// firstValidationMessage flattens a validator error into a single
// field-and-tag message, falling back to the raw error text.
func firstValidationMessage(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return fmt.Sprintf("%s - %s", ve.Field(), ve.Tag())
	}
	return err.Error()
}

// CheckResult inspects a screening result for breaches of the scoring
// contract: score ranges, section completeness, and list bounds.
func CheckResult(result *types.ScreeningResult) *Violations {
	var all []Violation

	if result == nil {
		return &Violations{Violations: []Violation{{
			Type:     "missing_result",
			Severity: SeverityError,
			Details:  "screening result is nil",
		}}}
	}

	if result.OverallScore < 0 || result.OverallScore > 1 {
		all = append(all, Violation{
			Type:     "score_range",
			Severity: SeverityError,
			Details:  fmt.Sprintf("overall score %.4f outside [0,1]", result.OverallScore),
		})
	}

	for _, name := range types.SectionOrder {
		section, ok := result.SectionScores[name]
		if !ok {
			all = append(all, Violation{
				Type:     "missing_section",
				Severity: SeverityError,
				Details:  fmt.Sprintf("section %q absent from result", name),
				Section:  name,
			})
			continue
		}
		if section.Score < 0 || section.Score > 1 {
			all = append(all, Violation{
				Type:     "score_range",
				Severity: SeverityError,
				Details:  fmt.Sprintf("section %q score %.4f outside [0,1]", name, section.Score),
				Section:  name,
			})
		}
	}

	if len(result.SkillGaps) > maxSkillGaps {
		all = append(all, Violation{
			Type:     "list_bound",
			Severity: SeverityError,
			Details:  fmt.Sprintf("%d skill gaps exceed the cap of %d", len(result.SkillGaps), maxSkillGaps),
		})
	}
	if len(result.Recommendations) > maxRecommendations {
		all = append(all, Violation{
			Type:     "list_bound",
			Severity: SeverityError,
			Details:  fmt.Sprintf("%d recommendations exceed the cap of %d", len(result.Recommendations), maxRecommendations),
		})
	}

	if result.ProcessedAt.IsZero() {
		all = append(all, Violation{
			Type:     "missing_timestamp",
			Severity: SeverityWarning,
			Details:  "processed_at is unset",
		})
	}
	if result.ModelVersion == "" {
		all = append(all, Violation{
			Type:     "missing_version",
			Severity: SeverityWarning,
			Details:  "model_version is empty",
		})
	}

	return &Violations{Violations: all}
}
