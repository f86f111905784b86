// Package explain builds reviewer-facing narratives from screening
// results: an overall assessment, strengths and weaknesses, concrete
// suggestions, and a per-section breakdown. It is the detailed companion
// to the one-paragraph explanation the pipeline embeds in its results.
package explain

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/shashank8104/resume-intelligence/internal/skills"
	"github.com/shashank8104/resume-intelligence/internal/types"
)

// List caps keep the narrative scannable for a human reviewer.
const (
	maxStrengths            = 5
	maxWeaknesses           = 5
	maxSuggestions          = 5
	maxKeyItems             = 3
	maxSectionRecs          = 2
	strongSectionThreshold  = 0.7
	weakSectionThreshold    = 0.5
	suggestSectionThreshold = 0.6
	multiRoleThreshold      = 3
	thinExperienceThreshold = 2
	portfolioThreshold      = 2
)

// SectionAnalysis is the detailed breakdown for one scored section.
type SectionAnalysis struct {
	Score            float64  `json:"score"`
	PerformanceLevel string   `json:"performance_level"`
	MatchedItems     int      `json:"matched_items"`
	MissingItems     int      `json:"missing_items"`
	KeyMatches       []string `json:"key_matches"`
	KeyGaps          []string `json:"key_gaps"`
	Feedback         string   `json:"feedback"`
	Recommendations  []string `json:"recommendations"`
}

// Explanation is the full narrative for a single screening result.
type Explanation struct {
	OverallAssessment      string                     `json:"overall_assessment"`
	Strengths              []string                   `json:"strengths"`
	Weaknesses             []string                   `json:"weaknesses"`
	ImprovementSuggestions []string                   `json:"improvement_suggestions"`
	MatchReasoning         string                     `json:"match_reasoning"`
	SectionAnalysis        map[string]SectionAnalysis `json:"section_analysis"`
}

// Explainer produces Explanations. It is stateless and safe for
// concurrent use.
type Explainer struct {
	logger *zap.Logger
}

// New returns an Explainer. A nil logger is replaced with a no-op one.
func New(logger *zap.Logger) *Explainer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Explainer{logger: logger}
}

// Explain builds the full narrative for one screening result. The job
// description feeds the preferred-skill suggestions; everything else
// derives from the resume and the result.
func (e *Explainer) Explain(resume *types.Resume, job *types.JobDescription, result *types.ScreeningResult) (*Explanation, error) {
	if resume == nil {
		return nil, errors.New("explain: resume is nil")
	}
	if result == nil {
		return nil, errors.New("explain: screening result is nil")
	}

	exp := &Explanation{
		OverallAssessment:      overallAssessment(result.OverallScore),
		Strengths:              e.strengths(resume, result),
		Weaknesses:             e.weaknesses(resume, result),
		ImprovementSuggestions: e.suggestions(resume, job, result),
		MatchReasoning:         matchReasoning(result),
		SectionAnalysis:        sectionAnalysis(result),
	}
	e.logger.Debug("built screening explanation",
		zap.Float64("overall_score", result.OverallScore),
		zap.Int("strengths", len(exp.Strengths)),
		zap.Int("weaknesses", len(exp.Weaknesses)))
	return exp, nil
}

func overallAssessment(score float64) string {
	pct := formatPercent(score)
	switch {
	case score >= 0.8:
		return fmt.Sprintf("Excellent match (%s) - This candidate demonstrates strong alignment with the job requirements across multiple areas.", pct)
	case score >= 0.6:
		return fmt.Sprintf("Good match (%s) - This candidate shows solid potential with some areas that could be strengthened.", pct)
	case score >= 0.4:
		return fmt.Sprintf("Moderate match (%s) - This candidate has some relevant qualifications but significant gaps exist.", pct)
	default:
		return fmt.Sprintf("Limited match (%s) - This candidate requires substantial development to meet the role requirements.", pct)
	}
}

func (e *Explainer) strengths(resume *types.Resume, result *types.ScreeningResult) []string {
	var strengths []string

	for _, section := range types.SectionOrder {
		score, ok := result.SectionScores[section]
		if !ok || score.Score < strongSectionThreshold {
			continue
		}
		strengths = append(strengths, fmt.Sprintf("Strong %s alignment (%s)", section, formatPercent(score.Score)))
		if len(score.MatchedKeywords) > 0 {
			strengths = append(strengths, fmt.Sprintf("Demonstrated expertise in: %s", joinCapped(score.MatchedKeywords, maxKeyItems)))
		}
	}

	if len(resume.Experience) >= multiRoleThreshold {
		strengths = append(strengths, "Substantial work experience with multiple roles")
	}
	for _, edu := range resume.Education {
		if edu.Level.IsAdvanced() {
			strengths = append(strengths, "Advanced education credentials")
			break
		}
	}
	if len(resume.Projects) >= portfolioThreshold {
		strengths = append(strengths, "Strong project portfolio demonstrating practical skills")
	}

	return capList(strengths, maxStrengths)
}

func (e *Explainer) weaknesses(resume *types.Resume, result *types.ScreeningResult) []string {
	var weaknesses []string

	for _, section := range types.SectionOrder {
		score, ok := result.SectionScores[section]
		if !ok || score.Score >= weakSectionThreshold {
			continue
		}
		weaknesses = append(weaknesses, fmt.Sprintf("Limited %s alignment (%s)", section, formatPercent(score.Score)))
		if len(score.MissingKeywords) > 0 {
			weaknesses = append(weaknesses, fmt.Sprintf("Missing key %s: %s", section, joinCapped(score.MissingKeywords, maxKeyItems)))
		}
	}

	if len(result.SkillGaps) > 0 {
		weaknesses = append(weaknesses, fmt.Sprintf("Critical skill gaps: %s", joinCapped(result.SkillGaps, maxKeyItems)))
	}
	if len(resume.Experience) < thinExperienceThreshold {
		weaknesses = append(weaknesses, "Limited professional work experience")
	}

	return capList(weaknesses, maxWeaknesses)
}

func (e *Explainer) suggestions(resume *types.Resume, job *types.JobDescription, result *types.ScreeningResult) []string {
	var suggestions []string
	suggestions = append(suggestions, capList(result.Recommendations, 3)...)

	for _, section := range types.SectionOrder {
		score, ok := result.SectionScores[section]
		if !ok || score.Score >= suggestSectionThreshold || len(score.MissingKeywords) == 0 {
			continue
		}
		suggestions = append(suggestions, fmt.Sprintf("Strengthen %s section by highlighting: %s", section, joinCapped(score.MissingKeywords, 2)))
	}

	// Required gaps already surface through the pipeline recommendations;
	// here the nice-to-haves get their turn, strongest weight first.
	if targets, err := skills.FromJob(job); err == nil {
		var preferred []string
		for _, target := range skills.MissingFrom(targets, resume) {
			if target.Source == skills.SourcePreferred {
				preferred = append(preferred, target.Name)
			}
		}
		if len(preferred) > 0 {
			suggestions = append(suggestions, fmt.Sprintf("Stand out by adding preferred skills: %s", joinCapped(preferred, maxKeyItems)))
		}
	}

	return capList(suggestions, maxSuggestions)
}

func matchReasoning(result *types.ScreeningResult) string {
	var high, low []string
	for _, section := range types.SectionOrder {
		score, ok := result.SectionScores[section]
		if !ok {
			continue
		}
		switch {
		case score.Score >= strongSectionThreshold:
			high = append(high, section)
		case score.Score < weakSectionThreshold:
			low = append(low, section)
		}
	}

	var parts []string
	if len(high) > 0 {
		parts = append(parts, fmt.Sprintf("Strong performance in %s contributed positively to the overall score.", strings.Join(high, ", ")))
	}
	if len(low) > 0 {
		parts = append(parts, fmt.Sprintf("Lower scores in %s reduced the overall match rating.", strings.Join(low, ", ")))
	}
	parts = append(parts, "The overall score represents a weighted combination of skills (35%), experience (25%), education (15%), projects (15%), and keyword matching (10%).")
	return strings.Join(parts, " ")
}

func sectionAnalysis(result *types.ScreeningResult) map[string]SectionAnalysis {
	analysis := make(map[string]SectionAnalysis, len(result.SectionScores))
	for _, section := range types.SectionOrder {
		score, ok := result.SectionScores[section]
		if !ok {
			continue
		}
		analysis[section] = SectionAnalysis{
			Score:            score.Score,
			PerformanceLevel: performanceLevel(score.Score),
			MatchedItems:     len(score.MatchedKeywords),
			MissingItems:     len(score.MissingKeywords),
			KeyMatches:       capList(score.MatchedKeywords, maxKeyItems),
			KeyGaps:          capList(score.MissingKeywords, maxKeyItems),
			Feedback:         score.Feedback,
			Recommendations:  sectionRecommendations(section, score),
		}
	}
	return analysis
}

func performanceLevel(score float64) string {
	switch {
	case score >= 0.8:
		return "Excellent"
	case score >= 0.6:
		return "Good"
	case score >= 0.4:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

func sectionRecommendations(section string, score types.SectionScore) []string {
	if score.Score >= suggestSectionThreshold {
		return nil
	}

	var recs []string
	switch section {
	case types.SectionSkills:
		recs = append(recs, "Consider adding more relevant technical skills to your resume")
		if len(score.MissingKeywords) > 0 {
			recs = append(recs, fmt.Sprintf("Focus on developing: %s", joinCapped(score.MissingKeywords, 2)))
		}
	case types.SectionExperience:
		recs = append(recs,
			"Enhance experience descriptions with more specific achievements",
			"Include quantifiable results and impact metrics")
	case types.SectionProjects:
		recs = append(recs,
			"Add more projects that demonstrate relevant skills",
			"Include project URLs and detailed descriptions")
	case types.SectionEducation:
		recs = append(recs,
			"Highlight relevant coursework and academic projects",
			"Consider pursuing additional certifications")
	}
	return capList(recs, maxSectionRecs)
}

func formatPercent(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}

func joinCapped(items []string, n int) string {
	return strings.Join(capList(items, n), ", ")
}

func capList(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
