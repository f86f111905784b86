package types

import "time"

// Section names produced by the screening pipeline, in scoring order.
const (
	SectionSkills     = "skills"
	SectionExperience = "experience"
	SectionEducation  = "education"
	SectionProjects   = "projects"
	SectionKeywords   = "keywords"
)

// SectionOrder lists the scored sections in their canonical order.
var SectionOrder = []string{
	SectionSkills,
	SectionExperience,
	SectionEducation,
	SectionProjects,
	SectionKeywords,
}

// SectionScore is the per-section outcome of a screening run. Score is
// always clamped into [0,1]; the keyword lists are length-bounded.
type SectionScore struct {
	Score           float64  `json:"score"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
	Feedback        string   `json:"feedback"`
}

// ScreeningResult is the outcome of screening one resume against one job.
// FitPrediction is set only when the pipeline's classifier has been trained.
type ScreeningResult struct {
	OverallScore     float64                 `json:"overall_score"`
	SectionScores    map[string]SectionScore `json:"section_scores"`
	SkillGaps        []string                `json:"skill_gaps"`
	Recommendations  []string                `json:"recommendations"`
	MatchExplanation string                  `json:"match_explanation"`
	FitPrediction    *bool                   `json:"fit_prediction,omitempty"`
	ProcessedAt      time.Time               `json:"processed_at"`
	ModelVersion     string                  `json:"model_version"`
}

// LabeledExample pairs a resume and job with a hiring outcome, used to
// train the optional fit classifier and to evaluate scoring quality.
type LabeledExample struct {
	Resume *Resume         `json:"resume"`
	Job    *JobDescription `json:"job"`
	Fit    bool            `json:"fit"`
}

// ModelInfo describes the scoring model behind a pipeline instance.
type ModelInfo struct {
	Version           string `json:"version"`
	ClassifierTrained bool   `json:"classifier_trained"`
	TrainingSamples   int    `json:"training_samples,omitempty"`
}
