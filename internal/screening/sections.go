package screening

import (
	"fmt"
	"math"
	"strings"

	"github.com/shashank8104/resume-intelligence/internal/embedding"
	"github.com/shashank8104/resume-intelligence/internal/features"
	"github.com/shashank8104/resume-intelligence/internal/types"
)

// Component weights inside each section score.
const (
	skillDirectWeight    = 0.7
	skillEmbeddingWeight = 0.3

	experienceEmbeddingWeight = 0.4
	experienceTextWeight      = 0.4
	experienceTenureWeight    = 0.2

	educationDegreeWeight   = 0.6
	educationFieldWeight    = 0.3
	educationAdvancedWeight = 0.1

	projectTechWeight = 0.6
	projectTextWeight = 0.4

	keywordTextWeight    = 0.7
	keywordDensityWeight = 0.3
)

// sectionKeywordCap bounds matched/missing lists for most sections;
// keyword matching keeps a few more.
const (
	sectionKeywordCap = 10
	keywordSectionCap = 15
)

// educationRelevantFields is the field list the education section scores
// against. It is narrower than the feature extractor's degree list on
// purpose: section scoring rewards clearly technical programs only.
var educationRelevantFields = []string{
	"computer science",
	"engineering",
	"data science",
	"mathematics",
	"technology",
}

// requiredYearsByLevel supplies the fallback experience demand per
// seniority band when a posting states no explicit year count.
var requiredYearsByLevel = map[types.JobLevel]int{
	types.LevelEntry:     1,
	types.LevelMid:       3,
	types.LevelSenior:    5,
	types.LevelLead:      8,
	types.LevelExecutive: 10,
}

// defaultLevelYears is used when the level itself is unknown.
const defaultLevelYears = 3

// scoreSkills combines the direct required∪preferred match ratio with the
// cosine similarity of the skill embeddings.
func (p *Pipeline) scoreSkills(r *types.Resume, j *types.JobDescription, resumeEmb, jobEmb map[string][]float64, explain bool) types.SectionScore {
	resumeSet := toStringSet(r.FlattenedSkills())
	jobSkills := j.AllSkills()
	matched, missing := matchAgainst(jobSkills, resumeSet)

	embSim := p.cosine(resumeEmb[embedding.SectionSkills], jobEmb[embedding.SectionSkills])

	direct := 0.0
	if len(jobSkills) > 0 {
		direct = float64(len(matched)) / float64(len(jobSkills))
	}
	score := clip01(skillDirectWeight*direct + skillEmbeddingWeight*embSim)

	var feedback string
	if explain {
		if len(matched) > 0 {
			feedback = fmt.Sprintf("Strong match in %d key skills: %s. ", len(matched), strings.Join(capList(matched, 5), ", "))
		} else {
			feedback = "Limited direct skill matches found. "
		}
		if len(missing) > 0 {
			feedback += fmt.Sprintf("Consider adding: %s.", strings.Join(capList(missing, 3), ", "))
		}
	} else {
		feedback = fmt.Sprintf("Skills match: %d/%d", len(matched), len(jobSkills))
	}

	return types.SectionScore{
		Score:           score,
		MatchedKeywords: capList(matched, sectionKeywordCap),
		MissingKeywords: capList(missing, sectionKeywordCap),
		Feedback:        feedback,
	}
}

// scoreExperience blends embedding similarity against the job's
// responsibilities, pairwise text similarity against its duties, and a
// tenure ratio of roles held versus years demanded.
func (p *Pipeline) scoreExperience(r *types.Resume, j *types.JobDescription, resumeEmb, jobEmb map[string][]float64, explain bool) types.SectionScore {
	expText := experienceText(r)
	dutyText := jobDutiesText(j)

	embSim := p.cosine(resumeEmb[embedding.SectionExperience], jobEmb[embedding.SectionResponsibilities])
	textSim := p.similarity.TFIDFTextSimilarity(expText, dutyText)

	roleYears := len(r.Experience) * 2
	required := p.requiredYears(j)
	if required < 1 {
		required = 1
	}
	tenure := math.Min(float64(roleYears)/float64(required), 1.0)

	score := clip01(experienceEmbeddingWeight*embSim + experienceTextWeight*textSim + experienceTenureWeight*tenure)

	matched := commonKeywords(expText, dutyText)
	missing := missingKeywords(expText, dutyText)

	var feedback string
	if explain {
		feedback = fmt.Sprintf("Experience shows %d years in relevant roles. ", roleYears)
		if len(matched) > 0 {
			feedback += fmt.Sprintf("Strong alignment in: %s. ", strings.Join(capList(matched, 3), ", "))
		}
		if len(missing) > 0 {
			feedback += fmt.Sprintf("Consider highlighting: %s.", strings.Join(capList(missing, 3), ", "))
		}
	} else {
		feedback = fmt.Sprintf("Experience relevance: %s", formatPercent(score))
	}

	return types.SectionScore{
		Score:           score,
		MatchedKeywords: capList(matched, sectionKeywordCap),
		MissingKeywords: capList(missing, sectionKeywordCap),
		Feedback:        feedback,
	}
}

// scoreEducation applies the additive rule score: bachelor or better,
// relevant field of study, advanced degree. No entries scores zero.
func (p *Pipeline) scoreEducation(r *types.Resume, j *types.JobDescription, explain bool) types.SectionScore {
	score := 0.0
	matched := make([]string, 0)
	missing := make([]string, 0)
	fieldMatch := false

	if len(r.Education) > 0 {
		hasDegree := false
		hasAdvanced := false
		fields := make([]string, 0, len(r.Education))
		for _, edu := range r.Education {
			if edu.Level.IsDegree() {
				hasDegree = true
			}
			if edu.Level.IsAdvanced() {
				hasAdvanced = true
			}
			field := edu.Major
			if field == "" {
				field = edu.Degree
			}
			if field != "" {
				fields = append(fields, field)
			}
		}

		if hasDegree {
			score += educationDegreeWeight
		}

		for _, field := range fields {
			lower := strings.ToLower(field)
			for _, relevant := range educationRelevantFields {
				if strings.Contains(lower, relevant) {
					fieldMatch = true
					break
				}
			}
		}
		if fieldMatch {
			score += educationFieldWeight
			matched = append(matched, fields...)
		}

		if hasAdvanced {
			score += educationAdvancedWeight
		}
	}

	reqText := strings.ToLower(strings.Join(j.Requirements, " "))
	if strings.Contains(reqText, "bachelor") && !hasEducationLevel(r.Education, types.LevelBachelor) {
		missing = append(missing, "Bachelor's degree")
	}
	if strings.Contains(reqText, "master") && !hasEducationLevel(r.Education, types.LevelMaster) {
		missing = append(missing, "Master's degree")
	}

	var feedback string
	if explain {
		if highest := r.HighestEducation(); highest != nil {
			feedback = fmt.Sprintf("Education: %s from %s. ", highest.Degree, highest.Institution)
			if fieldMatch {
				feedback += "Relevant field of study. "
			} else {
				feedback += "Consider highlighting relevant coursework. "
			}
		} else {
			feedback = "No education information provided. "
		}
	} else {
		feedback = fmt.Sprintf("Education match: %s", formatPercent(score))
	}

	return types.SectionScore{
		Score:           clip01(score),
		MatchedKeywords: capList(matched, keywordSectionCap),
		MissingKeywords: capList(missing, keywordSectionCap),
		Feedback:        feedback,
	}
}

// scoreProjects rewards projects whose technologies overlap the job's
// skill list and whose descriptions resemble its duties. No projects is a
// hard zero with fixed guidance.
func (p *Pipeline) scoreProjects(r *types.Resume, j *types.JobDescription, explain bool) types.SectionScore {
	if len(r.Projects) == 0 {
		return types.SectionScore{
			Score:           0,
			MatchedKeywords: []string{},
			MissingKeywords: []string{"Personal projects", "Portfolio"},
			Feedback:        "No projects listed. Consider adding relevant projects to showcase skills.",
		}
	}

	techSet := make(map[string]bool)
	for _, proj := range r.Projects {
		for _, tech := range proj.Technologies {
			techSet[tech] = true
		}
	}

	jobSkills := j.AllSkills()
	matched, missing := matchAgainst(jobSkills, techSet)

	techMatch := 0.0
	if len(jobSkills) > 0 {
		techMatch = float64(len(matched)) / float64(len(jobSkills))
	}

	textSim := p.similarity.TFIDFTextSimilarity(projectsText(r), jobDutiesText(j))
	score := clip01(projectTechWeight*techMatch + projectTextWeight*textSim)

	var feedback string
	if explain {
		feedback = fmt.Sprintf("Projects demonstrate %d relevant technologies. ", len(matched))
		if len(matched) > 0 {
			feedback += fmt.Sprintf("Strong alignment: %s. ", strings.Join(capList(matched, 3), ", "))
		}
		if len(missing) > 0 {
			feedback += fmt.Sprintf("Consider projects with: %s.", strings.Join(capList(missing, 2), ", "))
		}
	} else {
		feedback = fmt.Sprintf("Project relevance: %s", formatPercent(score))
	}

	return types.SectionScore{
		Score:           score,
		MatchedKeywords: capList(matched, sectionKeywordCap),
		MissingKeywords: capList(missing, sectionKeywordCap),
		Feedback:        feedback,
	}
}

// scoreKeywords compares the whole resume text against the whole posting:
// pairwise TF-IDF similarity plus the overlap ratio of the two top-20
// keyword lists.
func (p *Pipeline) scoreKeywords(r *types.Resume, j *types.JobDescription, explain bool) types.SectionScore {
	resumeText := fullResumeText(r)
	jobText := jobFullText(j)

	textSim := p.similarity.TFIDFTextSimilarity(resumeText, jobText)

	resumeKW := topKeywords(resumeText)
	jobKW := topKeywords(jobText)
	resumeKWSet := toStringSet(resumeKW)

	matched := make([]string, 0)
	missing := make([]string, 0)
	for _, kw := range jobKW {
		if resumeKWSet[kw] {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}

	density := 0.0
	if len(jobKW) > 0 {
		density = float64(len(matched)) / float64(len(jobKW))
	}
	score := clip01(keywordTextWeight*textSim + keywordDensityWeight*density)

	var feedback string
	if explain {
		feedback = fmt.Sprintf("Keyword analysis shows %d matches out of %d key terms. ", len(matched), len(jobKW))
		if len(missing) > 0 {
			feedback += fmt.Sprintf("Consider incorporating: %s.", strings.Join(capList(missing, 5), ", "))
		}
	} else {
		feedback = fmt.Sprintf("Keyword match: %s", formatPercent(score))
	}

	return types.SectionScore{
		Score:           score,
		MatchedKeywords: capList(matched, keywordSectionCap),
		MissingKeywords: capList(missing, keywordSectionCap),
		Feedback:        feedback,
	}
}

// requiredYears resolves the posting's experience demand: explicit year
// counts in the requirements win, otherwise the seniority band default.
func (p *Pipeline) requiredYears(j *types.JobDescription) int {
	reqText := strings.ToLower(strings.Join(j.Requirements, " "))
	if years, ok := features.RequiredYears(reqText); ok {
		return years
	}
	if years, ok := requiredYearsByLevel[j.ExperienceLevel]; ok {
		return years
	}
	return defaultLevelYears
}

// matchAgainst splits items into those present in and absent from the
// candidate set. Case-sensitive, input order preserved, duplicates
// dropped.
func matchAgainst(items []string, candidateSet map[string]bool) (matched, missing []string) {
	matched = make([]string, 0)
	missing = make([]string, 0)
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		if candidateSet[item] {
			matched = append(matched, item)
		} else {
			missing = append(missing, item)
		}
	}
	return matched, missing
}

// hasEducationLevel reports whether any entry carries exactly the level.
func hasEducationLevel(education []types.Education, level types.EducationLevel) bool {
	for _, edu := range education {
		if edu.Level == level {
			return true
		}
	}
	return false
}

// toStringSet builds a case-sensitive membership set.
func toStringSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

// capList bounds a list to at most n entries.
func capList(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// formatPercent renders a [0,1] score as a one-decimal percentage.
func formatPercent(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}

// clip01 clamps a score into [0,1].
func clip01(x float64) float64 {
	return math.Min(1, math.Max(0, x))
}
