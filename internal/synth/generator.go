// Package synth generates synthetic resumes and job postings for three
// built-in roles. Generated data feeds pipeline evaluation, classifier
// training and local demos; it never leaves the machine.
package synth

import (
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shashank8104/resume-intelligence/internal/types"
)

// Config configures a Generator. A Seed of zero derives one from the
// clock, which is what demos want; tests pass a fixed seed.
type Config struct {
	Seed   int64
	Logger *zap.Logger
	Now    func() time.Time
}

// Generator produces synthetic resumes and job descriptions. It owns a
// single random source and is not safe for concurrent use.
type Generator struct {
	rng    *rand.Rand
	logger *zap.Logger
	now    func() time.Time
}

// New builds a Generator from cfg, applying defaults for zero fields.
func New(cfg Config) *Generator {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = now().UnixNano()
	}
	return &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
		now:    now,
	}
}

// TaggedResume pairs a generated resume with the role and seniority it
// was built for. The role tag is the ground-truth label when pairing
// resumes with jobs.
type TaggedResume struct {
	Resume      *types.Resume  `json:"resume"`
	Role        string         `json:"role"`
	Level       types.JobLevel `json:"experience_level"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// TaggedJob pairs a generated job description with its source role.
type TaggedJob struct {
	Job         *types.JobDescription `json:"job_description"`
	Role        string                `json:"role"`
	GeneratedAt time.Time             `json:"generated_at"`
}

// Dataset is a batch of generated resumes and job descriptions.
type Dataset struct {
	Resumes []TaggedResume `json:"resumes"`
	Jobs    []TaggedJob    `json:"job_descriptions"`
}

// Resume generates one synthetic resume for a role and seniority band.
// Unknown roles fall back to the software engineer template.
func (g *Generator) Resume(role string, level types.JobLevel) *types.Resume {
	t := templateFor(role)
	resume := &types.Resume{
		ContactInfo:    g.contactInfo(),
		Summary:        summaryFor(role, level),
		Skills:         g.skillMap(t),
		Experience:     g.workHistory(role, level, t),
		Education:      g.education(),
		Projects:       g.projects(t),
		Certifications: g.choices(t.certifications, g.between(1, 2)),
		Languages:      append([]string{"English"}, g.choices(extraLanguages, g.between(0, 2))...),
		Interests:      g.choices(interestPool, g.between(1, 3)),
	}
	g.logger.Debug("generated resume",
		zap.String("role", role), zap.String("level", string(level)))
	return resume
}

// JobDescription generates one synthetic job posting for a role and
// seniority band.
func (g *Generator) JobDescription(role string, level types.JobLevel) *types.JobDescription {
	t := templateFor(role)
	roleWords := strings.ReplaceAll(role, "_", " ")
	levelWord := string(level)

	jobTypes := []types.JobType{
		types.JobTypeFullTime, types.JobTypePartTime, types.JobTypeContract,
		types.JobTypeInternship, types.JobTypeRemote,
	}

	job := &types.JobDescription{
		Title:           titleCase(levelWord) + " " + titleCase(roleWords),
		Company:         g.choice(companyNames),
		Location:        g.choice(jobLocations),
		JobType:         jobTypes[g.rng.Intn(len(jobTypes))],
		ExperienceLevel: level,
		Description: fmt.Sprintf(
			"We are seeking a %s %s to join our growing team...", levelWord, roleWords),
		Requirements:            g.jobRequirements(t, levelWord, roleWords),
		PreferredQualifications: preferredQualifications,
		Responsibilities:        g.jobResponsibilities(t),
		RequiredSkills:          g.choices(t.allSkills(), g.between(5, 8)),
		PreferredSkills:         g.choices(t.allSkills(), g.between(3, 5)),
		Industry:                "Technology",
		SalaryRange:             salaryFor(level),
		Benefits:                standardBenefits,
	}
	g.logger.Debug("generated job description",
		zap.String("role", role), zap.String("level", string(level)))
	return job
}

// Dataset generates a batch of resumes and jobs with random roles and
// levels, each tagged with its source role.
func (g *Generator) Dataset(numResumes, numJobs int) *Dataset {
	levels := []types.JobLevel{
		types.LevelEntry, types.LevelMid, types.LevelSenior,
		types.LevelLead, types.LevelExecutive,
	}
	roles := Roles()

	ds := &Dataset{
		Resumes: make([]TaggedResume, 0, numResumes),
		Jobs:    make([]TaggedJob, 0, numJobs),
	}
	for i := 0; i < numResumes; i++ {
		role := g.choice(roles)
		level := levels[g.rng.Intn(len(levels))]
		ds.Resumes = append(ds.Resumes, TaggedResume{
			Resume:      g.Resume(role, level),
			Role:        role,
			Level:       level,
			GeneratedAt: g.now().UTC(),
		})
	}
	for i := 0; i < numJobs; i++ {
		role := g.choice(roles)
		level := levels[g.rng.Intn(len(levels))]
		ds.Jobs = append(ds.Jobs, TaggedJob{
			Job:         g.JobDescription(role, level),
			Role:        role,
			GeneratedAt: g.now().UTC(),
		})
	}
	g.logger.Info("generated dataset",
		zap.Int("resumes", numResumes), zap.Int("jobs", numJobs))
	return ds
}

// LabeledExamples generates resume/job pairs labeled fit when both were
// built from the same role template.
func (g *Generator) LabeledExamples(count int) []types.LabeledExample {
	roles := Roles()
	examples := make([]types.LabeledExample, 0, count)
	for i := 0; i < count; i++ {
		resumeRole := g.choice(roles)
		jobRole := g.choice(roles)
		examples = append(examples, types.LabeledExample{
			Resume: g.Resume(resumeRole, types.LevelMid),
			Job:    g.JobDescription(jobRole, types.LevelMid),
			Fit:    resumeRole == jobRole,
		})
	}
	return examples
}

func (g *Generator) contactInfo() types.ContactInfo {
	first := g.choice(firstNames)
	last := g.choice(lastNames)
	lowerFirst := strings.ToLower(first)
	lowerLast := strings.ToLower(last)

	return types.ContactInfo{
		FullName: first + " " + last,
		Email:    fmt.Sprintf("%s.%s@email.com", lowerFirst, lowerLast),
		Phone: fmt.Sprintf("+1-%d-%d-%d",
			g.between(100, 999), g.between(100, 999), g.between(1000, 9999)),
		Location: g.choice(candidateLocations),
		LinkedIn: fmt.Sprintf("https://linkedin.com/in/%s%s", lowerFirst, lowerLast),
		GitHub:   fmt.Sprintf("https://github.com/%s%s", lowerFirst, lowerLast),
	}
}

func (g *Generator) skillMap(t roleTemplate) map[string][]string {
	skills := make(map[string][]string, len(t.skillCategories))
	for _, c := range t.skillCategories {
		skills[c.name] = g.choices(c.skills, g.between(3, 6))
	}
	return skills
}

func (g *Generator) workHistory(role string, level types.JobLevel, t roleTemplate) []types.WorkExperience {
	count := g.roleCount(level)
	roleTitle := titleCase(strings.ReplaceAll(role, "_", " "))
	today := g.now()

	history := make([]types.WorkExperience, 0, count)
	for i := 0; i < count; i++ {
		yearsAgo := i * g.between(2, 4)
		start := today.AddDate(0, 0, -(yearsAgo*365 + g.between(0, 365)))

		// The first entry is the current role and stays open-ended.
		var end *types.Date
		if i > 0 {
			d := dateOf(start.AddDate(0, 0, g.between(365, 1095)))
			end = &d
		}

		duties := g.choices(t.responsibilities, g.between(3, 5))
		for j, duty := range duties {
			duties[j] = g.fillPlaceholders(duty, t)
		}

		history = append(history, types.WorkExperience{
			Company:     g.choice(companyNames),
			Position:    g.choice([]string{"Junior", "Senior", "Lead", "Principal"}) + " " + roleTitle,
			StartDate:   dateOf(start),
			EndDate:     end,
			Description: duties,
			Skills:      g.choices(t.allSkills(), 5),
		})
	}
	return history
}

// roleCount maps a seniority band to a number of past roles.
func (g *Generator) roleCount(level types.JobLevel) int {
	switch level {
	case types.LevelEntry:
		return 1
	case types.LevelMid:
		return g.between(2, 3)
	case types.LevelSenior:
		return g.between(3, 4)
	case types.LevelLead:
		return g.between(4, 5)
	case types.LevelExecutive:
		return g.between(5, 7)
	default:
		return 2
	}
}

func (g *Generator) education() []types.Education {
	major := g.choice(majors)
	graduated := dateOf(g.now().AddDate(0, 0, -g.between(365, 3650)))

	return []types.Education{{
		Institution:     g.choice(institutions),
		Degree:          "Bachelor of Science in " + major,
		Level:           types.LevelBachelor,
		Major:           major,
		GraduationDate:  &graduated,
		GPA:             math.Round((3.2+g.rng.Float64()*0.8)*10) / 10,
		RelevantCourses: coreCourses,
	}}
}

func (g *Generator) projects(t roleTemplate) []types.Project {
	count := g.between(2, 4)
	projects := make([]types.Project, 0, count)
	for i := 0; i < count; i++ {
		name := g.choice(t.projectNames)
		techs := g.choices(t.allSkills(), g.between(3, 6))
		start := dateOf(g.now().AddDate(0, 0, -g.between(30, 730)))
		end := dateOf(g.now().AddDate(0, 0, -g.between(0, 30)))

		projects = append(projects, types.Project{
			Name:         fmt.Sprintf("%s %d", name, i+1),
			Description:  fmt.Sprintf("Developed a %s using modern technologies", strings.ToLower(name)),
			Technologies: techs,
			StartDate:    &start,
			EndDate:      &end,
			URL:          fmt.Sprintf("https://github.com/user/project-%d", i+1),
			Achievements: []string{
				fmt.Sprintf("Implemented %s integration", g.choice(techs)),
				fmt.Sprintf("Improved performance by %d%%", g.between(20, 80)),
			},
		})
	}
	return projects
}

func (g *Generator) jobRequirements(t roleTemplate, levelWord, roleWords string) []string {
	base := []string{
		fmt.Sprintf("%s level experience in %s", titleCase(levelWord), roleWords),
		"Bachelor's degree in relevant field or equivalent experience",
		"Strong problem-solving and analytical skills",
		"Excellent communication and teamwork abilities",
	}
	return append(base, g.choices(t.requirements, 2)...)
}

func (g *Generator) jobResponsibilities(t roleTemplate) []string {
	duties := g.choices(t.responsibilities, g.between(4, 6))
	for i, duty := range duties {
		duties[i] = g.fillPlaceholders(duty, t)
	}
	return duties
}

func summaryFor(role string, level types.JobLevel) string {
	years := map[types.JobLevel]string{
		types.LevelEntry:     "1-2",
		types.LevelMid:       "3-5",
		types.LevelSenior:    "5-8",
		types.LevelLead:      "8-12",
		types.LevelExecutive: "12+",
	}
	span, ok := years[level]
	if !ok {
		span = "3-5"
	}
	roleTitle := titleCase(strings.ReplaceAll(role, "_", " "))
	return fmt.Sprintf(
		"Experienced %s with %s years of expertise in developing scalable solutions and leading technical initiatives. Proven track record of delivering high-quality projects and collaborating with cross-functional teams.",
		roleTitle, span)
}

func salaryFor(level types.JobLevel) *types.SalaryRange {
	switch level {
	case types.LevelEntry:
		return &types.SalaryRange{Min: 70000, Max: 100000}
	case types.LevelSenior:
		return &types.SalaryRange{Min: 140000, Max: 180000}
	case types.LevelLead:
		return &types.SalaryRange{Min: 180000, Max: 220000}
	case types.LevelExecutive:
		return &types.SalaryRange{Min: 220000, Max: 300000}
	default:
		return &types.SalaryRange{Min: 100000, Max: 140000}
	}
}

var placeholderPattern = regexp.MustCompile(`\{(\w+)\}`)

// fillPlaceholders substitutes the template markers that appear in
// responsibility lines with role-appropriate values.
func (g *Generator) fillPlaceholders(line string, t roleTemplate) string {
	return placeholderPattern.ReplaceAllStringFunc(line, func(m string) string {
		switch m[1 : len(m)-1] {
		case "framework":
			return g.choice(t.category("frameworks", []string{"React"}))
		case "programming":
			return g.choice(t.category("programming", []string{"Python"}))
		case "database":
			return g.choice(t.category("databases", []string{"PostgreSQL"}))
		case "deployment_tool", "tool":
			return g.choice(t.category("tools", []string{"Docker"}))
		case "percentage":
			return strconv.Itoa(g.between(10, 50))
		case "accuracy":
			return strconv.Itoa(g.between(80, 95))
		case "outcome":
			return g.choice([]string{"customer churn", "sales volume", "user engagement"})
		case "process":
			return g.choice([]string{"reporting", "feature extraction", "model retraining"})
		case "metric":
			return g.choice([]string{"engagement", "conversion rates", "brand awareness"})
		case "platforms":
			return g.choice([]string{"Instagram and Twitter", "LinkedIn and Facebook", "Instagram and TikTok"})
		case "followers":
			return strconv.Itoa(g.between(10, 500))
		case "number":
			return strconv.Itoa(g.between(2, 8))
		case "budget":
			return strconv.Itoa(g.between(50, 500))
		default:
			return m
		}
	})
}

// choice picks one element uniformly.
func (g *Generator) choice(list []string) string {
	return list[g.rng.Intn(len(list))]
}

// choices picks k elements with replacement, so repeats are possible.
func (g *Generator) choices(list []string, k int) []string {
	out := make([]string, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, g.choice(list))
	}
	return out
}

// between returns a uniform integer in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

func dateOf(t time.Time) types.Date {
	return types.NewDate(t.Date())
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
