package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashank8104/resume-intelligence/internal/types"
)

func TestFromJob_OnlyRequiredSkills(t *testing.T) {
	job := &types.JobDescription{
		Title:          "Staff Engineer",
		Description:    "Build and operate the core platform.",
		RequiredSkills: []string{"go", "python"},
	}

	targets, err := FromJob(job)
	require.NoError(t, err)
	require.Len(t, targets, 2)

	for _, target := range targets {
		assert.Equal(t, 1.0, target.Weight)
		assert.Equal(t, SourceRequired, target.Source)
		assert.Contains(t, []string{"go", "python"}, target.Name)
	}
}

func TestFromJob_OnlyPreferredSkills(t *testing.T) {
	job := &types.JobDescription{
		Title:           "Staff Engineer",
		Description:     "Build and operate the core platform.",
		PreferredSkills: []string{"kubernetes", "docker"},
	}

	targets, err := FromJob(job)
	require.NoError(t, err)
	require.Len(t, targets, 2)

	for _, target := range targets {
		assert.Equal(t, 0.5, target.Weight)
		assert.Equal(t, SourcePreferred, target.Source)
	}
}

func TestFromJob_KeywordsFromPostingText(t *testing.T) {
	job := &types.JobDescription{
		Title:       "Staff Engineer",
		Description: "Experience with microservices and distributed systems.",
	}

	targets, err := FromJob(job)
	require.NoError(t, err)
	require.Len(t, targets, 2)

	// Equal keyword weights tie-break alphabetically.
	assert.Equal(t, "distributed systems", targets[0].Name)
	assert.Equal(t, "microservices", targets[1].Name)
	for _, target := range targets {
		assert.Equal(t, 0.3, target.Weight)
		assert.Equal(t, SourceKeyword, target.Source)
	}
}

func TestFromJob_MixedSourcesTakeMaxWeight(t *testing.T) {
	job := &types.JobDescription{
		Title:           "Backend Engineer",
		Description:     "Writing Go services. Terraform experience is a plus.",
		RequiredSkills:  []string{"Go"},
		PreferredSkills: []string{"go", "kubernetes"},
	}

	targets, err := FromJob(job)
	require.NoError(t, err)
	require.Len(t, targets, 3)

	assert.Equal(t, Target{Name: "go", Weight: 1.0, Source: SourceRequired}, targets[0])
	assert.Equal(t, Target{Name: "kubernetes", Weight: 0.5, Source: SourcePreferred}, targets[1])
	assert.Equal(t, Target{Name: "terraform", Weight: 0.3, Source: SourceKeyword}, targets[2])
}

func TestFromJob_NormalizesAndDeduplicates(t *testing.T) {
	job := &types.JobDescription{
		Title:          "Data Engineer",
		Description:    "Pipelines all day.",
		RequiredSkills: []string{" PostgreSQL ", "postgresql", ""},
	}

	targets, err := FromJob(job)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "postgresql", targets[0].Name)
	assert.Equal(t, 1.0, targets[0].Weight)
}

func TestFromJob_SortsByWeightThenName(t *testing.T) {
	job := &types.JobDescription{
		Title:           "Platform Engineer",
		Description:     "Ship reliable software.",
		RequiredSkills:  []string{"python", "go"},
		PreferredSkills: []string{"kafka", "docker"},
	}

	targets, err := FromJob(job)
	require.NoError(t, err)
	require.Len(t, targets, 4)

	names := make([]string, len(targets))
	for i, target := range targets {
		names[i] = target.Name
	}
	assert.Equal(t, []string{"go", "python", "docker", "kafka"}, names)
}

func TestFromJob_NoSkills(t *testing.T) {
	job := &types.JobDescription{
		Title:       "Groundskeeper",
		Description: "Tend the grounds.",
	}

	_, err := FromJob(job)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no skills found")
}

func TestFromJob_NilJob(t *testing.T) {
	_, err := FromJob(nil)
	require.Error(t, err)
}

func TestMissingFrom(t *testing.T) {
	targets := []Target{
		{Name: "go", Weight: 1.0, Source: SourceRequired},
		{Name: "kubernetes", Weight: 0.5, Source: SourcePreferred},
		{Name: "terraform", Weight: 0.3, Source: SourceKeyword},
	}
	resume := &types.Resume{
		Skills: map[string][]string{
			"Languages":      {"Go"},
			"Infrastructure": {"Terraform"},
		},
	}

	missing := MissingFrom(targets, resume)
	require.Len(t, missing, 1)
	assert.Equal(t, "kubernetes", missing[0].Name)
}

func TestMissingFrom_NilResume(t *testing.T) {
	targets := []Target{{Name: "go", Weight: 1.0, Source: SourceRequired}}
	assert.Equal(t, targets, MissingFrom(targets, nil))
}
