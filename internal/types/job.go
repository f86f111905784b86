package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// JobType is the employment arrangement for a posting.
type JobType string

// Employment types.
const (
	JobTypeFullTime   JobType = "full_time"
	JobTypePartTime   JobType = "part_time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeRemote     JobType = "remote"
)

// Valid reports whether the job type is one of the defined values.
func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeRemote:
		return true
	}
	return false
}

// JobLevel is the seniority band a posting targets.
type JobLevel string

// Seniority bands, junior to executive.
const (
	LevelEntry     JobLevel = "entry"
	LevelMid       JobLevel = "mid"
	LevelSenior    JobLevel = "senior"
	LevelLead      JobLevel = "lead"
	LevelExecutive JobLevel = "executive"
)

// jobLevelNumerics maps seniority bands to their numeric form.
var jobLevelNumerics = map[JobLevel]int{
	LevelEntry:     1,
	LevelMid:       2,
	LevelSenior:    3,
	LevelLead:      4,
	LevelExecutive: 5,
}

// Numeric returns the band as an integer (entry=1 .. executive=5).
// Unknown bands report 2, the mid-level default.
func (l JobLevel) Numeric() int {
	if n, ok := jobLevelNumerics[l]; ok {
		return n
	}
	return 2
}

// Valid reports whether the level is one of the defined values.
func (l JobLevel) Valid() bool {
	_, ok := jobLevelNumerics[l]
	return ok
}

// SalaryRange is an advertised compensation band.
type SalaryRange struct {
	Min int `json:"min" validate:"gte=0"`
	Max int `json:"max" validate:"gtefield=Min"`
}

// JobDescription is a structured job posting. Requirement, responsibility
// and skill lists preserve their posting order.
type JobDescription struct {
	Title                   string       `json:"title" validate:"required"`
	Company                 string       `json:"company" validate:"required"`
	Location                string       `json:"location" validate:"required"`
	JobType                 JobType      `json:"job_type" validate:"required"`
	ExperienceLevel         JobLevel     `json:"experience_level" validate:"required"`
	Description             string       `json:"description" validate:"required"`
	Requirements            []string     `json:"requirements" validate:"required"`
	PreferredQualifications []string     `json:"preferred_qualifications,omitempty"`
	Responsibilities        []string     `json:"responsibilities" validate:"required"`
	RequiredSkills          []string     `json:"required_skills" validate:"required"`
	PreferredSkills         []string     `json:"preferred_skills,omitempty"`
	Industry                string       `json:"industry,omitempty"`
	SalaryRange             *SalaryRange `json:"salary_range,omitempty"`
	Benefits                []string     `json:"benefits,omitempty"`
}

// Validate checks required fields and enum values.
func (j *JobDescription) Validate() error {
	validate := validator.New()
	if err := validate.Struct(j); err != nil {
		return err
	}
	if !j.JobType.Valid() {
		return fmt.Errorf("unknown job type %q", j.JobType)
	}
	if !j.ExperienceLevel.Valid() {
		return fmt.Errorf("unknown experience level %q", j.ExperienceLevel)
	}
	return nil
}

// AllSkills returns required then preferred skills in posting order.
func (j *JobDescription) AllSkills() []string {
	out := make([]string, 0, len(j.RequiredSkills)+len(j.PreferredSkills))
	out = append(out, j.RequiredSkills...)
	out = append(out, j.PreferredSkills...)
	return out
}
