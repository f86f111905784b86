// Package screening scores resumes against job descriptions. A Pipeline
// evaluates five weighted sections (skills, experience, education,
// projects, keywords), aggregates them into an overall score, derives
// skill gaps and recommendations, and can attach a trained fit
// prediction. Pipelines are not safe for concurrent use; run one per
// worker.
package screening

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shashank8104/resume-intelligence/internal/embedding"
	"github.com/shashank8104/resume-intelligence/internal/features"
	"github.com/shashank8104/resume-intelligence/internal/similarity"
	"github.com/shashank8104/resume-intelligence/internal/types"
)

// Default contribution of each section to the overall score.
const (
	skillsWeight     = 0.35
	experienceWeight = 0.25
	educationWeight  = 0.15
	projectsWeight   = 0.15
	keywordsWeight   = 0.10
)

const defaultModelVersion = "1.0"

// Caps on result list sizes.
const (
	maxSkillGaps       = 5
	maxRecommendations = 5
)

// Thresholds below which a section triggers a recommendation.
const (
	skillsRecThreshold     = 0.7
	experienceRecThreshold = 0.6
	projectsRecThreshold   = 0.5
	keywordsRecThreshold   = 0.6
	lowSectionThreshold    = 0.5
	lowSectionRestructure  = 2
)

// DefaultWeights returns a fresh copy of the standard section weights.
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		types.SectionSkills:     skillsWeight,
		types.SectionExperience: experienceWeight,
		types.SectionEducation:  educationWeight,
		types.SectionProjects:   projectsWeight,
		types.SectionKeywords:   keywordsWeight,
	}
}

// Config tunes a Pipeline. Zero values fall back to defaults.
type Config struct {
	// SectionWeights overrides the default section weighting. Sections
	// absent from the map are skipped during aggregation.
	SectionWeights map[string]float64

	// MaxFeatures bounds the TF-IDF vocabulary of the embedding
	// generator.
	MaxFeatures int

	// ModelVersion is stamped onto every result.
	ModelVersion string

	Logger *zap.Logger

	// Now supplies timestamps, overridable in tests.
	Now func() time.Time
}

// Pipeline runs the full screening flow for one resume/job pair at a
// time.
type Pipeline struct {
	features   *features.Extractor
	embeddings *embedding.Generator
	similarity *similarity.Calculator
	weights    map[string]float64
	classifier *fitClassifier
	trainedOn  int
	version    string
	logger     *zap.Logger
	now        func() time.Time
}

// New builds a Pipeline from cfg.
func New(cfg Config) *Pipeline {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	weights := cfg.SectionWeights
	if weights == nil {
		weights = DefaultWeights()
	}
	version := cfg.ModelVersion
	if version == "" {
		version = defaultModelVersion
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		features:   features.NewExtractorAt(now),
		embeddings: embedding.NewGenerator(cfg.MaxFeatures, logger),
		similarity: similarity.NewCalculator(logger),
		weights:    weights,
		version:    version,
		logger:     logger,
		now:        now,
	}
}

// Screen evaluates one resume against one job description. When explain
// is true, section feedback and the match explanation carry full prose;
// otherwise feedback stays compact and the explanation is empty.
func (p *Pipeline) Screen(resume *types.Resume, job *types.JobDescription, explain bool) (*types.ScreeningResult, error) {
	if resume == nil {
		return nil, errors.New("screening: resume is nil")
	}
	if job == nil {
		return nil, errors.New("screening: job description is nil")
	}

	resumeEmb := p.embeddings.ResumeEmbeddings(resume)
	jobEmb := p.embeddings.JobEmbeddings(job)

	sections := map[string]types.SectionScore{
		types.SectionSkills:     p.scoreSkills(resume, job, resumeEmb, jobEmb, explain),
		types.SectionExperience: p.scoreExperience(resume, job, resumeEmb, jobEmb, explain),
		types.SectionEducation:  p.scoreEducation(resume, job, explain),
		types.SectionProjects:   p.scoreProjects(resume, job, explain),
		types.SectionKeywords:   p.scoreKeywords(resume, job, explain),
	}

	overall := p.weightedScore(sections)
	gaps := skillGaps(resume, job)

	result := &types.ScreeningResult{
		OverallScore:    overall,
		SectionScores:   sections,
		SkillGaps:       gaps,
		Recommendations: recommendations(sections, gaps),
		ProcessedAt:     p.now().UTC(),
		ModelVersion:    p.version,
	}
	if explain {
		result.MatchExplanation = p.explanation(overall, sections, gaps)
	}
	if p.classifier != nil {
		fit := p.classifier.Predict(classifierVector(p.features.ResumeFeatures(resume)))
		result.FitPrediction = &fit
	}

	p.logger.Debug("resume screened",
		zap.Float64("overall_score", overall),
		zap.Int("skill_gaps", len(gaps)))
	return result, nil
}

// ScreenBatch evaluates each resume against the same job, sequentially.
// The returned slice always has one entry per input in input order; a
// resume that fails to screen yields a zero-score placeholder rather
// than aborting the batch.
func (p *Pipeline) ScreenBatch(resumes []*types.Resume, job *types.JobDescription, explain bool) []*types.ScreeningResult {
	results := make([]*types.ScreeningResult, 0, len(resumes))
	for i, resume := range resumes {
		result, err := p.Screen(resume, job, explain)
		if err != nil {
			p.logger.Warn("batch entry failed", zap.Int("index", i), zap.Error(err))
			result = p.failedResult()
		}
		results = append(results, result)
	}
	return results
}

// failedResult is the placeholder emitted for unscreenable batch
// entries.
func (p *Pipeline) failedResult() *types.ScreeningResult {
	return &types.ScreeningResult{
		OverallScore:     0,
		SectionScores:    map[string]types.SectionScore{},
		SkillGaps:        []string{},
		Recommendations:  []string{"Resume screening failed - please check format"},
		MatchExplanation: "Error during processing",
		ProcessedAt:      p.now().UTC(),
		ModelVersion:     p.version,
	}
}

// weightedScore aggregates section scores with the configured weights,
// normalizing by the weight mass actually present.
func (p *Pipeline) weightedScore(sections map[string]types.SectionScore) float64 {
	total := 0.0
	weightSum := 0.0
	for _, name := range types.SectionOrder {
		section, ok := sections[name]
		if !ok {
			continue
		}
		weight, ok := p.weights[name]
		if !ok {
			continue
		}
		total += weight * section.Score
		weightSum += weight
	}
	if weightSum == 0 {
		return 0
	}
	return clip01(total / weightSum)
}

// skillGaps lists required skills missing from the resume, in posting
// order, case-insensitively.
func skillGaps(r *types.Resume, j *types.JobDescription) []string {
	have := r.SkillSet()
	gaps := make([]string, 0)
	for _, skill := range j.RequiredSkills {
		if !have[strings.ToLower(skill)] {
			gaps = append(gaps, skill)
		}
	}
	return capList(gaps, maxSkillGaps)
}

// recommendations derives actionable guidance from weak sections.
func recommendations(sections map[string]types.SectionScore, gaps []string) []string {
	recs := make([]string, 0, maxRecommendations)

	if sections[types.SectionSkills].Score < skillsRecThreshold && len(gaps) > 0 {
		recs = append(recs, "Strengthen skills section by adding: "+strings.Join(capList(gaps, 3), ", "))
	}
	if sections[types.SectionExperience].Score < experienceRecThreshold {
		recs = append(recs, "Enhance experience descriptions with more specific achievements and metrics")
	}
	if sections[types.SectionProjects].Score < projectsRecThreshold {
		recs = append(recs, "Add relevant projects that demonstrate key skills mentioned in job requirements")
	}
	if sections[types.SectionKeywords].Score < keywordsRecThreshold {
		if missing := capList(sections[types.SectionKeywords].MissingKeywords, 3); len(missing) > 0 {
			recs = append(recs, "Incorporate key terms throughout resume: "+strings.Join(missing, ", "))
		}
	}

	low := 0
	for _, name := range types.SectionOrder {
		if section, ok := sections[name]; ok && section.Score < lowSectionThreshold {
			low++
		}
	}
	if low > lowSectionRestructure {
		recs = append(recs, "Consider significant resume restructuring to better align with job requirements")
	}

	return capList(recs, maxRecommendations)
}

// explanation renders the banded overall verdict, one line per section,
// and the top missing skills, joined with single spaces.
func (p *Pipeline) explanation(overall float64, sections map[string]types.SectionScore, gaps []string) string {
	parts := make([]string, 0, len(types.SectionOrder)+2)

	switch {
	case overall >= 0.8:
		parts = append(parts, "This resume shows excellent alignment with the job requirements.")
	case overall >= 0.6:
		parts = append(parts, "This resume demonstrates good potential fit with some areas for improvement.")
	case overall >= 0.4:
		parts = append(parts, "This resume shows moderate alignment with significant gaps to address.")
	default:
		parts = append(parts, "This resume requires substantial improvements to match job requirements.")
	}

	for _, name := range types.SectionOrder {
		section, ok := sections[name]
		if !ok {
			continue
		}
		title := titleCase(name)
		switch {
		case section.Score >= 0.7:
			parts = append(parts, fmt.Sprintf("%s: Strong match (%.1f%%)", title, section.Score*100))
		case section.Score >= 0.5:
			parts = append(parts, fmt.Sprintf("%s: Moderate match (%.1f%%)", title, section.Score*100))
		default:
			parts = append(parts, fmt.Sprintf("%s: Needs improvement (%.1f%%)", title, section.Score*100))
		}
	}

	if len(gaps) > 0 {
		parts = append(parts, fmt.Sprintf("Key missing skills: %s", strings.Join(capList(gaps, 3), ", ")))
	}

	return strings.Join(parts, " ")
}

// cosine wraps the calculator so a degenerate vector pair scores zero
// instead of failing the screen.
func (p *Pipeline) cosine(a, b []float64) float64 {
	sim, err := p.similarity.Cosine(a, b)
	if err != nil {
		p.logger.Warn("cosine similarity failed", zap.Error(err))
		return 0
	}
	return sim
}

// ModelInfo reports the pipeline's version and classifier state.
func (p *Pipeline) ModelInfo() types.ModelInfo {
	return types.ModelInfo{
		Version:           p.version,
		ClassifierTrained: p.classifier != nil,
		TrainingSamples:   p.trainedOn,
	}
}

// Weights returns a copy of the active section weights.
func (p *Pipeline) Weights() map[string]float64 {
	out := make(map[string]float64, len(p.weights))
	for name, weight := range p.weights {
		out[name] = weight
	}
	return out
}

// Reset clears the fitted embedding vocabulary so the next screen fits
// fresh. The trained classifier survives.
func (p *Pipeline) Reset() {
	p.embeddings.Reset()
}

// titleCase upper-cases the leading byte of an ASCII section name.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
