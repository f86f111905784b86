package schemas

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashank8104/resume-intelligence/internal/types"
)

func marshaledResume(t *testing.T) []byte {
	t.Helper()
	end := types.NewDate(2023, time.June, 30)
	resume := &types.Resume{
		ContactInfo: types.ContactInfo{
			FullName: "Dana Velez",
			Email:    "dana.velez@email.com",
			Location: "Austin, TX",
		},
		Skills: map[string][]string{
			"languages": {"Golang", "Python"},
		},
		Experience: []types.WorkExperience{
			{
				Company:     "Initech",
				Position:    "Software Engineer",
				StartDate:   types.NewDate(2021, time.January, 15),
				EndDate:     &end,
				Description: []string{"Built internal tooling"},
			},
		},
		Education: []types.Education{
			{
				Institution: "UT Austin",
				Degree:      "BS Computer Science",
				Level:       types.LevelBachelor,
			},
		},
	}
	doc, err := json.Marshal(resume)
	require.NoError(t, err)
	return doc
}

func TestValidateResume_AcceptsMarshaledResume(t *testing.T) {
	assert.NoError(t, ValidateResume(marshaledResume(t)))
}

func TestValidateResume_MissingContact(t *testing.T) {
	err := ValidateResume([]byte(`{"skills": {}, "experience": [], "education": []}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidateResume_RejectsUnknownEducationLevel(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal(marshaledResume(t), &doc))
	doc["education"].([]any)[0].(map[string]any)["level"] = "bootcamp"
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	verr := ValidateResume(raw)
	var validationErr *ValidationError
	require.ErrorAs(t, verr, &validationErr)
}

func marshaledJob(t *testing.T) []byte {
	t.Helper()
	job := &types.JobDescription{
		Title:            "Backend Engineer",
		Company:          "Initech",
		Location:         "Remote",
		JobType:          types.JobTypeFullTime,
		ExperienceLevel:  types.LevelSenior,
		Description:      "Own the billing services.",
		Requirements:     []string{"5+ years of backend experience"},
		Responsibilities: []string{"Design APIs"},
		RequiredSkills:   []string{"Golang", "PostgreSQL"},
	}
	doc, err := json.Marshal(job)
	require.NoError(t, err)
	return doc
}

func TestValidateJobDescription_AcceptsMarshaledJob(t *testing.T) {
	assert.NoError(t, ValidateJobDescription(marshaledJob(t)))
}

func TestValidateJobDescription_RejectsUnknownJobType(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal(marshaledJob(t), &doc))
	doc["job_type"] = "gig"
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	verr := ValidateJobDescription(raw)
	var validationErr *ValidationError
	require.ErrorAs(t, verr, &validationErr)
}

func marshaledResult(t *testing.T) []byte {
	t.Helper()
	result := &types.ScreeningResult{
		OverallScore: 0.74,
		SectionScores: map[string]types.SectionScore{
			types.SectionSkills:     {Score: 0.8, Feedback: "Strong overlap"},
			types.SectionExperience: {Score: 0.7, Feedback: "Adequate"},
			types.SectionEducation:  {Score: 0.9, Feedback: "Degree matches"},
			types.SectionProjects:   {Score: 0.5, Feedback: "Few projects"},
			types.SectionKeywords:   {Score: 0.6, Feedback: "Partial coverage"},
		},
		SkillGaps:       []string{"kubernetes"},
		Recommendations: []string{"Add infrastructure work"},
		ProcessedAt:     time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC),
		ModelVersion:    "1.0.0",
	}
	doc, err := json.Marshal(result)
	require.NoError(t, err)
	return doc
}

func TestValidateScreeningResult_AcceptsPipelineShape(t *testing.T) {
	assert.NoError(t, ValidateScreeningResult(marshaledResult(t)))
}

func TestValidateScreeningResult_RejectsOutOfRangeScore(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal(marshaledResult(t), &doc))
	doc["overall_score"] = 1.5
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	verr := ValidateScreeningResult(raw)
	var validationErr *ValidationError
	require.ErrorAs(t, verr, &validationErr)
	assert.Equal(t, "overall_score", validationErr.Errors[0].Field)
}

func TestValidateScreeningResult_RejectsOversizedGapList(t *testing.T) {
	var doc map[string]any
	require.NoError(t, json.Unmarshal(marshaledResult(t), &doc))
	doc["skill_gaps"] = []string{"a", "b", "c", "d", "e", "f"}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	verr := ValidateScreeningResult(raw)
	var validationErr *ValidationError
	require.ErrorAs(t, verr, &validationErr)
}

func TestValidate_UnknownSchemaName(t *testing.T) {
	err := Validate("missing.schema.json", []byte(`{}`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Error(), "not embedded")
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(Resume, []byte(`{ not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse document")
}
