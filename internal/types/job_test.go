package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validJob() *JobDescription {
	return &JobDescription{
		Title:            "Backend Engineer",
		Company:          "CloudTech",
		Location:         "Remote",
		JobType:          JobTypeFullTime,
		ExperienceLevel:  LevelSenior,
		Description:      "Build scalable backend services",
		Requirements:     []string{"Golang experience"},
		Responsibilities: []string{"Design services"},
		RequiredSkills:   []string{"Golang"},
	}
}

func TestJobType_Valid(t *testing.T) {
	assert.True(t, JobTypeFullTime.Valid())
	assert.True(t, JobTypeRemote.Valid())
	assert.False(t, JobType("gig").Valid())
}

func TestJobLevel_Numeric(t *testing.T) {
	assert.Equal(t, 1, LevelEntry.Numeric())
	assert.Equal(t, 3, LevelSenior.Numeric())
	assert.Equal(t, 5, LevelExecutive.Numeric())
	// Unknown bands land on the mid-level default.
	assert.Equal(t, 2, JobLevel("ninja").Numeric())
}

func TestJobLevel_Valid(t *testing.T) {
	assert.True(t, LevelMid.Valid())
	assert.False(t, JobLevel("ninja").Valid())
}

func TestJobDescription_AllSkills(t *testing.T) {
	j := &JobDescription{
		RequiredSkills:  []string{"Golang", "PostgreSQL"},
		PreferredSkills: []string{"Kubernetes"},
	}

	assert.Equal(t, []string{"Golang", "PostgreSQL", "Kubernetes"}, j.AllSkills())
}

func TestJobDescription_ValidateAcceptsCompletePosting(t *testing.T) {
	assert.NoError(t, validJob().Validate())
}

func TestJobDescription_ValidateRejectsMissingTitle(t *testing.T) {
	j := validJob()
	j.Title = ""
	assert.Error(t, j.Validate())
}

func TestJobDescription_ValidateRejectsUnknownJobType(t *testing.T) {
	j := validJob()
	j.JobType = "gig"

	err := j.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown job type")
}

func TestJobDescription_ValidateRejectsUnknownLevel(t *testing.T) {
	j := validJob()
	j.ExperienceLevel = "ninja"

	err := j.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown experience level")
}

func TestJobDescription_ValidateRejectsInvertedSalary(t *testing.T) {
	j := validJob()
	j.SalaryRange = &SalaryRange{Min: 200000, Max: 100000}
	assert.Error(t, j.Validate())
}
