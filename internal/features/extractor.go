// Package features derives scalar and categorical features from resumes
// and job descriptions for scoring and classification.
package features

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/shashank8104/resume-intelligence/internal/types"
)

// relevantDegreeFields are the technical fields matched against a
// candidate's major and degree text.
var relevantDegreeFields = []string{
	"computer science",
	"software engineering",
	"data science",
	"information technology",
	"engineering",
	"mathematics",
	"statistics",
	"physics",
}

// degreeKeywords signal that a requirement line asks for formal education.
var degreeKeywords = []string{"bachelor", "master", "doctorate", "degree", "diploma"}

// quantifiedPattern matches numbers, percentages and dollar amounts in
// achievement text.
var quantifiedPattern = regexp.MustCompile(`\d+[%$]?|\$\d+|\d+\+`)

// requiredYearsPatterns are tried in order against lowercased requirement
// text; the first capture group of the first match wins.
var requiredYearsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\+?\s*years?\s*(?:of\s*)?experience`),
	regexp.MustCompile(`minimum\s*(?:of\s*)?(\d+)\s*years?`),
	regexp.MustCompile(`at\s*least\s*(\d+)\s*years?`),
}

// daysPerYear converts summed day spans into years.
const daysPerYear = 365.25

// ResumeFeatures are the engineered features of a candidate profile.
// Absent optional fields default to zero values; extraction never fails.
type ResumeFeatures struct {
	TotalSkills               int     `json:"total_skills"`
	SkillCategories           int     `json:"skill_categories"`
	TotalExperienceRoles      int     `json:"total_experience_roles"`
	TotalEducation            int     `json:"total_education"`
	TotalProjects             int     `json:"total_projects"`
	TotalCertifications       int     `json:"total_certifications"`
	TotalLanguages            int     `json:"total_languages"`
	YearsExperience           float64 `json:"years_experience"`
	HasCurrentRole            bool    `json:"has_current_role"`
	AverageRoleDuration       float64 `json:"average_role_duration"`
	HighestEducationLevel     int     `json:"highest_education_level"`
	HasRelevantDegree         bool    `json:"has_relevant_degree"`
	HasAdvancedDegree         bool    `json:"has_advanced_degree"`
	SummaryLength             int     `json:"summary_length"`
	HasQuantifiedAchievements bool    `json:"has_quantified_achievements"`
	TotalDescriptionLength    int     `json:"total_description_length"`
	TechnicalSkills           int     `json:"technical_skills"`
	SoftSkills                int     `json:"soft_skills"`
	AvgTechnologiesPerProject float64 `json:"avg_technologies_per_project"`
	ProjectURLRatio           float64 `json:"has_project_urls"`
}

// JobFeatures are the engineered features of a job description.
type JobFeatures struct {
	TotalRequirements            int  `json:"total_requirements"`
	TotalPreferredQualifications int  `json:"total_preferred_qualifications"`
	TotalResponsibilities        int  `json:"total_responsibilities"`
	TotalRequiredSkills          int  `json:"total_required_skills"`
	TotalPreferredSkills         int  `json:"total_preferred_skills"`
	ExperienceLevelNumeric       int  `json:"experience_level_numeric"`
	IsRemote                     bool `json:"is_remote"`
	HasSalaryRange               bool `json:"has_salary_range"`
	TotalBenefits                int  `json:"total_benefits"`
	DescriptionLength            int  `json:"description_length"`
	TotalTextLength              int  `json:"total_text_length"`
	RequiresDegree               bool `json:"requires_degree"`
	RequiredExperienceYears      int  `json:"requires_experience"`
	MentionsRemote               bool `json:"mentions_remote"`
}

// Extractor computes features. The clock is injectable so open-ended
// experience spans stay deterministic under test.
type Extractor struct {
	now func() time.Time
}

// NewExtractor returns an Extractor using the wall clock.
func NewExtractor() *Extractor {
	return &Extractor{now: time.Now}
}

// NewExtractorAt returns an Extractor that treats now as "today" when
// closing open-ended experience entries.
func NewExtractorAt(now func() time.Time) *Extractor {
	if now == nil {
		now = time.Now
	}
	return &Extractor{now: now}
}

// ResumeFeatures extracts the candidate-side feature set.
func (e *Extractor) ResumeFeatures(r *types.Resume) ResumeFeatures {
	f := ResumeFeatures{
		SkillCategories:      len(r.Skills),
		TotalExperienceRoles: len(r.Experience),
		TotalEducation:       len(r.Education),
		TotalProjects:        len(r.Projects),
		TotalCertifications:  len(r.Certifications),
		TotalLanguages:       len(r.Languages),
		SummaryLength:        len(r.Summary),
	}

	for _, skills := range r.Skills {
		f.TotalSkills += len(skills)
	}
	f.TechnicalSkills = len(r.Skills["technical"]) + len(r.Skills["programming"])
	f.SoftSkills = len(r.Skills["soft_skills"])

	f.YearsExperience = e.yearsExperience(r.Experience)
	for _, exp := range r.Experience {
		if exp.EndDate == nil || exp.EndDate.IsZero() {
			f.HasCurrentRole = true
		}
		f.TotalDescriptionLength += len(strings.Join(exp.Description, " "))
	}
	if len(r.Experience) > 0 {
		f.AverageRoleDuration = round1(f.YearsExperience / float64(len(r.Experience)))
	}

	f.HighestEducationLevel = highestEducationLevel(r.Education)
	f.HasRelevantDegree = hasRelevantDegree(r.Education)
	for _, edu := range r.Education {
		if edu.Level.IsAdvanced() {
			f.HasAdvancedDegree = true
			break
		}
	}

	f.HasQuantifiedAchievements = hasQuantifiedAchievements(r)

	if len(r.Projects) > 0 {
		totalTech, withURL := 0, 0
		for _, proj := range r.Projects {
			totalTech += len(proj.Technologies)
			if proj.URL != "" {
				withURL++
			}
		}
		f.AvgTechnologiesPerProject = float64(totalTech) / float64(len(r.Projects))
		f.ProjectURLRatio = float64(withURL) / float64(len(r.Projects))
	}

	return f
}

// JobFeatures extracts the job-side feature set.
func (e *Extractor) JobFeatures(j *types.JobDescription) JobFeatures {
	f := JobFeatures{
		TotalRequirements:            len(j.Requirements),
		TotalPreferredQualifications: len(j.PreferredQualifications),
		TotalResponsibilities:        len(j.Responsibilities),
		TotalRequiredSkills:          len(j.RequiredSkills),
		TotalPreferredSkills:         len(j.PreferredSkills),
		ExperienceLevelNumeric:       j.ExperienceLevel.Numeric(),
		IsRemote:                     j.JobType == types.JobTypeRemote,
		HasSalaryRange:               j.SalaryRange != nil,
		TotalBenefits:                len(j.Benefits),
		DescriptionLength:            len(j.Description),
		MentionsRemote:               strings.Contains(strings.ToLower(j.Description), "remote"),
	}

	f.TotalTextLength = len(j.Description)
	for _, req := range j.Requirements {
		f.TotalTextLength += len(req)
	}
	for _, resp := range j.Responsibilities {
		f.TotalTextLength += len(resp)
	}

	reqText := strings.ToLower(strings.Join(j.Requirements, " "))
	f.RequiresDegree = requiresDegree(reqText)
	if years, ok := RequiredYears(reqText); ok {
		f.RequiredExperienceYears = years
	}

	return f
}

// RequiredYears scans lowercased requirement text for an explicit
// years-of-experience demand. The boolean reports whether any pattern
// matched.
func RequiredYears(requirementsText string) (int, bool) {
	for _, pattern := range requiredYearsPatterns {
		if m := pattern.FindStringSubmatch(requirementsText); m != nil {
			years := 0
			for _, ch := range m[1] {
				years = years*10 + int(ch-'0')
			}
			return years, true
		}
	}
	return 0, false
}

// yearsExperience sums date spans across roles, closing open-ended roles
// at "today", and converts to years with one decimal.
func (e *Extractor) yearsExperience(experience []types.WorkExperience) float64 {
	if len(experience) == 0 {
		return 0
	}

	today := e.now()
	totalDays := 0.0
	for _, exp := range experience {
		end := today
		if exp.EndDate != nil && !exp.EndDate.IsZero() {
			end = exp.EndDate.Time
		}
		days := end.Sub(exp.StartDate.Time).Hours() / 24
		totalDays += math.Max(days, 0)
	}
	return round1(totalDays / daysPerYear)
}

// highestEducationLevel returns the strongest level ordinal, 0 without entries.
func highestEducationLevel(education []types.Education) int {
	highest := 0
	for _, edu := range education {
		if rank := edu.Level.Rank(); rank > highest {
			highest = rank
		}
	}
	return highest
}

// hasRelevantDegree scans major and degree text for technical fields.
func hasRelevantDegree(education []types.Education) bool {
	for _, edu := range education {
		major := strings.ToLower(edu.Major)
		degree := strings.ToLower(edu.Degree)
		for _, field := range relevantDegreeFields {
			if strings.Contains(major, field) || strings.Contains(degree, field) {
				return true
			}
		}
	}
	return false
}

// hasQuantifiedAchievements looks for numbers, percentages or dollar
// amounts in the summary and experience descriptions.
func hasQuantifiedAchievements(r *types.Resume) bool {
	var sb strings.Builder
	sb.WriteString(r.Summary)
	for _, exp := range r.Experience {
		sb.WriteString(strings.Join(exp.Description, " "))
	}
	return quantifiedPattern.MatchString(sb.String())
}

// requiresDegree reports whether requirement text mentions formal education.
func requiresDegree(requirementsText string) bool {
	for _, kw := range degreeKeywords {
		if strings.Contains(requirementsText, kw) {
			return true
		}
	}
	return false
}

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
