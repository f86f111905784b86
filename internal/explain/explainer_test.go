package explain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashank8104/resume-intelligence/internal/types"
)

func resultWith(overall float64, sections map[string]types.SectionScore) *types.ScreeningResult {
	return &types.ScreeningResult{
		OverallScore:  overall,
		SectionScores: sections,
	}
}

func TestExplain_NilResume(t *testing.T) {
	e := New(nil)

	_, err := e.Explain(nil, &types.JobDescription{}, resultWith(0.5, nil))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "resume is nil")
}

func TestExplain_NilResult(t *testing.T) {
	e := New(nil)

	_, err := e.Explain(&types.Resume{}, &types.JobDescription{}, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "result is nil")
}

func TestOverallAssessment_Bands(t *testing.T) {
	e := New(nil)
	resume := &types.Resume{}
	job := &types.JobDescription{}

	cases := []struct {
		score float64
		want  string
	}{
		{0.85, "Excellent match (85.0%) - This candidate demonstrates strong alignment with the job requirements across multiple areas."},
		{0.65, "Good match (65.0%) - This candidate shows solid potential with some areas that could be strengthened."},
		{0.45, "Moderate match (45.0%) - This candidate has some relevant qualifications but significant gaps exist."},
		{0.2, "Limited match (20.0%) - This candidate requires substantial development to meet the role requirements."},
	}
	for _, tc := range cases {
		exp, err := e.Explain(resume, job, resultWith(tc.score, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.want, exp.OverallAssessment)
	}
}

func TestStrengths_StrongCandidateCappedAtFive(t *testing.T) {
	e := New(nil)
	resume := &types.Resume{
		Experience: []types.WorkExperience{
			{Company: "A", Position: "Engineer"},
			{Company: "B", Position: "Engineer"},
			{Company: "C", Position: "Engineer"},
		},
		Education: []types.Education{
			{Institution: "Tech U", Degree: "MS", Level: types.LevelMaster},
		},
		Projects: []types.Project{
			{Name: "One"},
			{Name: "Two"},
		},
	}
	sections := map[string]types.SectionScore{
		types.SectionSkills:     {Score: 0.9, MatchedKeywords: []string{"Go", "Python"}},
		types.SectionExperience: {Score: 0.75},
	}

	exp, err := e.Explain(resume, &types.JobDescription{}, resultWith(0.8, sections))

	require.NoError(t, err)
	// Section strengths come first in section order, then the resume
	// content heuristics. The project portfolio line falls past the cap.
	assert.Equal(t, []string{
		"Strong skills alignment (90.0%)",
		"Demonstrated expertise in: Go, Python",
		"Strong experience alignment (75.0%)",
		"Substantial work experience with multiple roles",
		"Advanced education credentials",
	}, exp.Strengths)
}

func TestStrengths_EmptyForWeakCandidate(t *testing.T) {
	e := New(nil)
	sections := map[string]types.SectionScore{
		types.SectionSkills: {Score: 0.3},
	}

	exp, err := e.Explain(&types.Resume{}, &types.JobDescription{}, resultWith(0.3, sections))

	require.NoError(t, err)
	assert.Empty(t, exp.Strengths)
}

func TestWeaknesses_WeakSectionsAndThinExperience(t *testing.T) {
	e := New(nil)
	resume := &types.Resume{
		Experience: []types.WorkExperience{
			{Company: "A", Position: "Engineer"},
		},
	}
	result := resultWith(0.3, map[string]types.SectionScore{
		types.SectionSkills: {Score: 0.2, MissingKeywords: []string{"Kubernetes", "Terraform"}},
	})
	result.SkillGaps = []string{"Kafka"}

	exp, err := e.Explain(resume, &types.JobDescription{}, result)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"Limited skills alignment (20.0%)",
		"Missing key skills: Kubernetes, Terraform",
		"Critical skill gaps: Kafka",
		"Limited professional work experience",
	}, exp.Weaknesses)
}

func TestSuggestions_MergesRecommendationsAndSectionGaps(t *testing.T) {
	e := New(nil)
	result := resultWith(0.5, map[string]types.SectionScore{
		types.SectionExperience: {Score: 0.5, MissingKeywords: []string{"leadership"}},
		types.SectionKeywords:   {Score: 0.55, MissingKeywords: []string{"cloud", "devops", "extra"}},
	})
	result.Recommendations = []string{"first", "second", "third", "fourth"}

	exp, err := e.Explain(&types.Resume{
		Experience: []types.WorkExperience{{}, {}},
	}, &types.JobDescription{}, result)

	require.NoError(t, err)
	// Top three pipeline recommendations, then section gap suggestions
	// in section order, capped at five.
	assert.Equal(t, []string{
		"first",
		"second",
		"third",
		"Strengthen experience section by highlighting: leadership",
		"Strengthen keywords section by highlighting: cloud, devops",
	}, exp.ImprovementSuggestions)
}

func TestSuggestions_PreferredSkillGapsRankedByWeight(t *testing.T) {
	e := New(nil)
	result := resultWith(0.5, nil)
	result.Recommendations = []string{"first"}
	job := &types.JobDescription{
		Title:           "Platform Engineer",
		Description:     "Keep the lights on.",
		RequiredSkills:  []string{"go"},
		PreferredSkills: []string{"kubernetes", "terraform"},
	}
	resume := &types.Resume{
		Skills:     map[string][]string{"Languages": {"Go"}},
		Experience: []types.WorkExperience{{}, {}},
	}

	exp, err := e.Explain(resume, job, result)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"first",
		"Stand out by adding preferred skills: kubernetes, terraform",
	}, exp.ImprovementSuggestions)
}

func TestMatchReasoning_MixedSections(t *testing.T) {
	e := New(nil)
	result := resultWith(0.55, map[string]types.SectionScore{
		types.SectionSkills:     {Score: 0.8},
		types.SectionExperience: {Score: 0.3},
		types.SectionEducation:  {Score: 0.55},
		types.SectionProjects:   {Score: 0.75},
		types.SectionKeywords:   {Score: 0.2},
	})

	exp, err := e.Explain(&types.Resume{}, &types.JobDescription{}, result)

	require.NoError(t, err)
	assert.Equal(t,
		"Strong performance in skills, projects contributed positively to the overall score. "+
			"Lower scores in experience, keywords reduced the overall match rating. "+
			"The overall score represents a weighted combination of skills (35%), experience (25%), education (15%), projects (15%), and keyword matching (10%).",
		exp.MatchReasoning)
}

func TestMatchReasoning_AlwaysExplainsWeighting(t *testing.T) {
	e := New(nil)

	exp, err := e.Explain(&types.Resume{}, &types.JobDescription{}, resultWith(0.5, nil))

	require.NoError(t, err)
	assert.Equal(t,
		"The overall score represents a weighted combination of skills (35%), experience (25%), education (15%), projects (15%), and keyword matching (10%).",
		exp.MatchReasoning)
}

func TestSectionAnalysis_FairSkillsSection(t *testing.T) {
	e := New(nil)
	result := resultWith(0.45, map[string]types.SectionScore{
		types.SectionSkills: {
			Score:           0.45,
			MatchedKeywords: []string{"Go", "SQL", "Python", "Java"},
			MissingKeywords: []string{"Kafka", "Spark", "Redis", "Flink"},
			Feedback:        "Skills match: 4/8",
		},
	})

	exp, err := e.Explain(&types.Resume{}, &types.JobDescription{}, result)

	require.NoError(t, err)
	analysis, ok := exp.SectionAnalysis[types.SectionSkills]
	require.True(t, ok)
	assert.Equal(t, 0.45, analysis.Score)
	assert.Equal(t, "Fair", analysis.PerformanceLevel)
	assert.Equal(t, 4, analysis.MatchedItems)
	assert.Equal(t, 4, analysis.MissingItems)
	assert.Equal(t, []string{"Go", "SQL", "Python"}, analysis.KeyMatches)
	assert.Equal(t, []string{"Kafka", "Spark", "Redis"}, analysis.KeyGaps)
	assert.Equal(t, "Skills match: 4/8", analysis.Feedback)
	assert.Equal(t, []string{
		"Consider adding more relevant technical skills to your resume",
		"Focus on developing: Kafka, Spark",
	}, analysis.Recommendations)
}

func TestSectionAnalysis_PerformanceLevels(t *testing.T) {
	e := New(nil)
	result := resultWith(0.5, map[string]types.SectionScore{
		types.SectionSkills:     {Score: 0.85},
		types.SectionExperience: {Score: 0.65},
		types.SectionEducation:  {Score: 0.45},
		types.SectionProjects:   {Score: 0.2},
	})

	exp, err := e.Explain(&types.Resume{}, &types.JobDescription{}, result)

	require.NoError(t, err)
	assert.Equal(t, "Excellent", exp.SectionAnalysis[types.SectionSkills].PerformanceLevel)
	assert.Equal(t, "Good", exp.SectionAnalysis[types.SectionExperience].PerformanceLevel)
	assert.Equal(t, "Fair", exp.SectionAnalysis[types.SectionEducation].PerformanceLevel)
	assert.Equal(t, "Needs Improvement", exp.SectionAnalysis[types.SectionProjects].PerformanceLevel)
}

func TestSectionRecommendations_OnlyForLowScores(t *testing.T) {
	e := New(nil)
	result := resultWith(0.6, map[string]types.SectionScore{
		types.SectionExperience: {Score: 0.3},
		types.SectionProjects:   {Score: 0.7},
		types.SectionEducation:  {Score: 0.4},
		types.SectionKeywords:   {Score: 0.1},
	})

	exp, err := e.Explain(&types.Resume{}, &types.JobDescription{}, result)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"Enhance experience descriptions with more specific achievements",
		"Include quantifiable results and impact metrics",
	}, exp.SectionAnalysis[types.SectionExperience].Recommendations)
	assert.Empty(t, exp.SectionAnalysis[types.SectionProjects].Recommendations)
	assert.Equal(t, []string{
		"Highlight relevant coursework and academic projects",
		"Consider pursuing additional certifications",
	}, exp.SectionAnalysis[types.SectionEducation].Recommendations)
	// Keyword matching has no tailored advice even when it scores low.
	assert.Empty(t, exp.SectionAnalysis[types.SectionKeywords].Recommendations)
}
