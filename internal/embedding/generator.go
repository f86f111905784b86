package embedding

import (
	"strings"

	"go.uber.org/zap"

	"github.com/shashank8104/resume-intelligence/internal/types"
)

// DefaultMaxFeatures is the vector width used when no override is given.
const DefaultMaxFeatures = 1000

// Resume embedding section names.
const (
	SectionSkills     = "skills"
	SectionExperience = "experience"
	SectionEducation  = "education"
	SectionProjects   = "projects"
	SectionFullResume = "full_resume"
)

// Job embedding section names.
const (
	SectionRequirements     = "requirements"
	SectionResponsibilities = "responsibilities"
	SectionFullJob          = "full_job"
)

// Generator produces per-section TF-IDF embeddings for resumes and job
// descriptions. It owns a single vectorizer that is fitted on the first
// non-empty text it sees and frozen afterwards, so every vector produced
// by one Generator instance lives in the same term space. Construct one
// Generator per isolation boundary (session, tenant, test); instances are
// not safe for concurrent use.
type Generator struct {
	maxFeatures int
	vectorizer  *Vectorizer
	logger      *zap.Logger
}

// NewGenerator returns a Generator with the given vector width
// (DefaultMaxFeatures when maxFeatures <= 0). A nil logger disables
// warning output.
func NewGenerator(maxFeatures int, logger *zap.Logger) *Generator {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		maxFeatures: maxFeatures,
		vectorizer:  NewVectorizer(maxFeatures, 2),
		logger:      logger,
	}
}

// Embed converts one text into a TF-IDF vector. Empty or whitespace-only
// text yields a zero vector of the configured width without touching the
// vectorizer; the first real text fits the vocabulary, later texts are
// transform-only.
func (g *Generator) Embed(text string) []float64 {
	if strings.TrimSpace(text) == "" {
		return make([]float64, g.maxFeatures)
	}

	if !g.vectorizer.Fitted() {
		vecs, err := g.vectorizer.FitTransform([]string{text})
		if err != nil {
			g.logger.Warn("embedding fit failed", zap.Error(err))
			return make([]float64, g.maxFeatures)
		}
		return vecs[0]
	}

	vec, err := g.vectorizer.Transform(text)
	if err != nil {
		g.logger.Warn("embedding transform failed", zap.Error(err))
		return make([]float64, g.maxFeatures)
	}
	return vec
}

// ResumeEmbeddings returns vectors for the skills, experience, education,
// projects and full_resume sections of a resume.
func (g *Generator) ResumeEmbeddings(r *types.Resume) map[string][]float64 {
	skillsText := strings.Join(r.FlattenedSkills(), " ")

	expParts := make([]string, 0, len(r.Experience))
	for _, exp := range r.Experience {
		expParts = append(expParts, strings.Join(exp.Description, " "))
	}
	experienceText := strings.Join(expParts, " ")

	eduParts := make([]string, 0, len(r.Education))
	for _, edu := range r.Education {
		eduParts = append(eduParts, edu.Degree+" "+edu.Major)
	}
	educationText := strings.Join(eduParts, " ")

	projParts := make([]string, 0, len(r.Projects))
	for _, proj := range r.Projects {
		projParts = append(projParts, proj.Name+" "+proj.Description)
	}
	projectsText := strings.Join(projParts, " ")

	fullText := r.Summary + " " + skillsText + " " + experienceText + " " + educationText + " " + projectsText

	return map[string][]float64{
		SectionSkills:     g.Embed(skillsText),
		SectionExperience: g.Embed(experienceText),
		SectionEducation:  g.Embed(educationText),
		SectionProjects:   g.Embed(projectsText),
		SectionFullResume: g.Embed(fullText),
	}
}

// JobEmbeddings returns vectors for the skills, requirements,
// responsibilities and full_job sections of a job description.
func (g *Generator) JobEmbeddings(j *types.JobDescription) map[string][]float64 {
	skillsText := strings.Join(j.AllSkills(), " ")

	reqParts := make([]string, 0, len(j.Requirements)+len(j.PreferredQualifications))
	reqParts = append(reqParts, j.Requirements...)
	reqParts = append(reqParts, j.PreferredQualifications...)
	requirementsText := strings.Join(reqParts, " ")

	responsibilitiesText := strings.Join(j.Responsibilities, " ")

	fullText := j.Description + " " + skillsText + " " + requirementsText + " " + responsibilitiesText

	return map[string][]float64{
		SectionSkills:           g.Embed(skillsText),
		SectionRequirements:     g.Embed(requirementsText),
		SectionResponsibilities: g.Embed(responsibilitiesText),
		SectionFullJob:          g.Embed(fullText),
	}
}

// BatchEmbeddings vectorizes several texts at once. When the vectorizer is
// unfitted the whole batch forms the corpus; otherwise each text is
// transformed against the frozen vocabulary. Failures yield zero vectors.
func (g *Generator) BatchEmbeddings(texts []string) [][]float64 {
	if len(texts) == 0 {
		return nil
	}

	if !g.vectorizer.Fitted() {
		vecs, err := g.vectorizer.FitTransform(texts)
		if err != nil {
			g.logger.Warn("batch embedding fit failed", zap.Error(err))
			out := make([][]float64, len(texts))
			for i := range out {
				out[i] = make([]float64, g.maxFeatures)
			}
			return out
		}
		return vecs
	}

	out := make([][]float64, len(texts))
	for i, text := range texts {
		out[i] = g.Embed(text)
	}
	return out
}

// Dimensions returns the configured vector width for unfitted input.
func (g *Generator) Dimensions() int {
	return g.maxFeatures
}

// Fitted reports whether the vocabulary has been learned yet.
func (g *Generator) Fitted() bool {
	return g.vectorizer.Fitted()
}

// Reset discards the learned vocabulary so the next text re-fits. Handy
// for tests that need vocabulary isolation.
func (g *Generator) Reset() {
	g.vectorizer = NewVectorizer(g.maxFeatures, 2)
}
