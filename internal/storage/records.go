package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/shashank8104/resume-intelligence/internal/types"
)

// Tags annotate a stored record with generation metadata. Both fields
// are optional; synthetic data carries them, ingested data may not.
type Tags struct {
	Role            string
	ExperienceLevel string
}

// ResumeRecord is the stored envelope for one resume.
type ResumeRecord struct {
	ID              string        `json:"id"`
	Role            string        `json:"role,omitempty"`
	ExperienceLevel string        `json:"experience_level,omitempty"`
	StoredAt        time.Time     `json:"stored_at"`
	Resume          *types.Resume `json:"resume"`
}

// JobRecord is the stored envelope for one job description.
type JobRecord struct {
	ID       string                `json:"id"`
	Role     string                `json:"role,omitempty"`
	StoredAt time.Time             `json:"stored_at"`
	Job      *types.JobDescription `json:"job_description"`
}

// ResumeSummary is the index entry kept per stored resume.
type ResumeSummary struct {
	ID              string    `json:"id"`
	Role            string    `json:"role,omitempty"`
	ExperienceLevel string    `json:"experience_level,omitempty"`
	StoredAt        time.Time `json:"stored_at"`
	SkillsCount     int       `json:"skills_count"`
	ExperienceCount int       `json:"experience_count"`
	EducationCount  int       `json:"education_count"`
	ProjectsCount   int       `json:"projects_count"`
}

// JobSummary is the index entry kept per stored job description.
type JobSummary struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Company           string    `json:"company"`
	Role              string    `json:"role,omitempty"`
	ExperienceLevel   string    `json:"experience_level"`
	JobType           string    `json:"job_type"`
	Location          string    `json:"location"`
	StoredAt          time.Time `json:"stored_at"`
	RequirementsCount int       `json:"requirements_count"`
	SkillsCount       int       `json:"skills_count"`
}

func summarizeResume(record *ResumeRecord) ResumeSummary {
	r := record.Resume
	return ResumeSummary{
		ID:              record.ID,
		Role:            record.Role,
		ExperienceLevel: record.ExperienceLevel,
		StoredAt:        record.StoredAt,
		SkillsCount:     len(r.Skills),
		ExperienceCount: len(r.Experience),
		EducationCount:  len(r.Education),
		ProjectsCount:   len(r.Projects),
	}
}

func summarizeJob(record *JobRecord) JobSummary {
	j := record.Job
	return JobSummary{
		ID:                record.ID,
		Title:             j.Title,
		Company:           j.Company,
		Role:              record.Role,
		ExperienceLevel:   string(j.ExperienceLevel),
		JobType:           string(j.JobType),
		Location:          j.Location,
		StoredAt:          record.StoredAt,
		RequirementsCount: len(j.Requirements),
		SkillsCount:       len(j.RequiredSkills),
	}
}

// anonymizeResume returns a copy of the resume with the contact block
// scrubbed: initials for the name, a hashed mailbox, a masked phone and
// placeholder profile links. Everything else is shared with the input.
func anonymizeResume(resume *types.Resume) *types.Resume {
	copied := *resume
	contact := copied.ContactInfo

	parts := strings.Fields(contact.FullName)
	if len(parts) == 0 {
		parts = []string{"John", "Doe"}
	}
	first := []rune(parts[0])
	last := []rune(parts[len(parts)-1])
	contact.FullName = fmt.Sprintf("%c*** %c***", first[0], last[0])

	sum := sha256.Sum256([]byte(contact.Email))
	contact.Email = fmt.Sprintf("user%s@email.com", hex.EncodeToString(sum[:])[:6])
	contact.Phone = "+1-XXX-XXX-XXXX"
	if contact.LinkedIn != "" {
		contact.LinkedIn = "https://linkedin.com/in/anonymous"
	}
	if contact.GitHub != "" {
		contact.GitHub = "https://github.com/anonymous"
	}

	copied.ContactInfo = contact
	return &copied
}
