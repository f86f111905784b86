// Package types provides type definitions for structured data used throughout the resume-intelligence system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// dateLayout is the wire format for calendar dates in resume and job records.
const dateLayout = "2006-01-02"

// Date is a calendar date serialized as "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON encodes the date as a quoted "YYYY-MM-DD" string, or null when zero.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON accepts "YYYY-MM-DD", an empty string, or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// EducationLevel classifies an education entry.
type EducationLevel string

// Education levels, lowest to highest. Certificate ranks with high school.
const (
	LevelHighSchool  EducationLevel = "high_school"
	LevelAssociate   EducationLevel = "associate"
	LevelBachelor    EducationLevel = "bachelor"
	LevelMaster      EducationLevel = "master"
	LevelDoctorate   EducationLevel = "doctorate"
	LevelCertificate EducationLevel = "certificate"
)

// educationRanks maps each level to its ordinal strength.
var educationRanks = map[EducationLevel]int{
	LevelHighSchool:  1,
	LevelAssociate:   2,
	LevelBachelor:    3,
	LevelMaster:      4,
	LevelDoctorate:   5,
	LevelCertificate: 1,
}

// Rank returns the ordinal strength of the level (1-5), or 0 for unknown values.
func (l EducationLevel) Rank() int {
	return educationRanks[l]
}

// Valid reports whether the level is one of the defined values.
func (l EducationLevel) Valid() bool {
	_, ok := educationRanks[l]
	return ok
}

// IsDegree reports whether the level is at least a bachelor's degree.
func (l EducationLevel) IsDegree() bool {
	return l == LevelBachelor || l == LevelMaster || l == LevelDoctorate
}

// IsAdvanced reports whether the level is a graduate degree.
func (l EducationLevel) IsAdvanced() bool {
	return l == LevelMaster || l == LevelDoctorate
}

// ContactInfo holds a candidate's contact block.
type ContactInfo struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location" validate:"required"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// WorkExperience is a single role on a resume.
type WorkExperience struct {
	Company     string   `json:"company" validate:"required"`
	Position    string   `json:"position" validate:"required"`
	StartDate   Date     `json:"start_date" validate:"required"`
	EndDate     *Date    `json:"end_date,omitempty"` // nil means current role
	Description []string `json:"description" validate:"required"`
	Skills      []string `json:"skills,omitempty"`
}

// Education is a single education entry.
type Education struct {
	Institution     string         `json:"institution" validate:"required"`
	Degree          string         `json:"degree" validate:"required"`
	Level           EducationLevel `json:"level" validate:"required"`
	Major           string         `json:"major,omitempty"`
	GraduationDate  *Date          `json:"graduation_date,omitempty"`
	GPA             float64        `json:"gpa,omitempty" validate:"omitempty,gte=0,lte=4"`
	RelevantCourses []string       `json:"relevant_courses,omitempty"`
}

// Project is a personal or professional project entry.
type Project struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Technologies []string `json:"technologies" validate:"required"`
	StartDate    *Date    `json:"start_date,omitempty"`
	EndDate      *Date    `json:"end_date,omitempty"`
	URL          string   `json:"url,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Resume is a candidate's structured profile. Skills map category names to
// ordered skill lists; all list fields preserve their input order.
type Resume struct {
	ContactInfo    ContactInfo         `json:"contact_info" validate:"required"`
	Summary        string              `json:"summary,omitempty"`
	Skills         map[string][]string `json:"skills" validate:"required"`
	Experience     []WorkExperience    `json:"experience" validate:"required,dive"`
	Education      []Education         `json:"education" validate:"required,dive"`
	Projects       []Project           `json:"projects,omitempty" validate:"omitempty,dive"`
	Certifications []string            `json:"certifications,omitempty"`
	Languages      []string            `json:"languages,omitempty"`
	Interests      []string            `json:"interests,omitempty"`
}

// Validate checks required fields and structural constraints.
func (r *Resume) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	for i, exp := range r.Experience {
		if exp.EndDate != nil && !exp.EndDate.IsZero() && !exp.EndDate.After(exp.StartDate.Time) {
			return fmt.Errorf("experience[%d]: end date must be after start date", i)
		}
	}
	for i, edu := range r.Education {
		if !edu.Level.Valid() {
			return fmt.Errorf("education[%d]: unknown level %q", i, edu.Level)
		}
	}
	return nil
}

// FlattenedSkills returns every skill across categories, with categories
// visited in sorted order so the result is stable across runs.
func (r *Resume) FlattenedSkills() []string {
	categories := make([]string, 0, len(r.Skills))
	for category := range r.Skills {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var out []string
	for _, category := range categories {
		out = append(out, r.Skills[category]...)
	}
	return out
}

// SkillSet returns the candidate's skills lowercased as a membership set.
func (r *Resume) SkillSet() map[string]bool {
	set := make(map[string]bool)
	for _, skills := range r.Skills {
		for _, skill := range skills {
			set[strings.ToLower(skill)] = true
		}
	}
	return set
}

// HighestEducation returns the entry with the strongest level, or nil when
// the resume lists no education.
func (r *Resume) HighestEducation() *Education {
	var best *Education
	for i := range r.Education {
		if best == nil || r.Education[i].Level.Rank() > best.Level.Rank() {
			best = &r.Education[i]
		}
	}
	return best
}
