package screening

import (
	"sort"
	"strings"

	"github.com/shashank8104/resume-intelligence/internal/types"
)

// topKeywordLimit is how many frequency-ranked keywords represent a text.
const topKeywordLimit = 20

// minKeywordLength filters out short tokens during keyword extraction.
const minKeywordLength = 3

// commonFilterWords are frequent words excluded from keyword ranking.
var commonFilterWords = map[string]bool{
	"that": true, "with": true, "from": true, "they": true, "have": true,
	"this": true, "will": true, "were": true, "been": true,
}

// topKeywords returns up to topKeywordLimit keywords from text, ranked by
// frequency. Tokens are lowercased whitespace-split words longer than
// minKeywordLength, minus the common-word filter. Ties rank by first
// occurrence so the output is stable.
func topKeywords(text string) []string {
	words := strings.Fields(strings.ToLower(text))

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := make([]string, 0)
	for i, word := range words {
		if len(word) <= minKeywordLength || commonFilterWords[word] {
			continue
		}
		if _, ok := counts[word]; !ok {
			firstSeen[word] = i
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	if len(order) > topKeywordLimit {
		order = order[:topKeywordLimit]
	}
	return order
}

// commonKeywords returns the alphabetically sorted words (longer than
// minKeywordLength, lowercased) that appear in both texts.
func commonKeywords(text1, text2 string) []string {
	set1 := longWordSet(text1)
	set2 := longWordSet(text2)

	common := make([]string, 0)
	for word := range set1 {
		if set2[word] {
			common = append(common, word)
		}
	}
	sort.Strings(common)
	return common
}

// missingKeywords returns the top job keywords absent from the resume
// text, in keyword-rank order.
func missingKeywords(resumeText, jobText string) []string {
	resumeWords := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(resumeText)) {
		resumeWords[word] = true
	}

	missing := make([]string, 0)
	for _, kw := range topKeywords(jobText) {
		if !resumeWords[kw] {
			missing = append(missing, kw)
		}
	}
	return missing
}

// longWordSet collects lowercased words longer than minKeywordLength.
func longWordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if len(word) > minKeywordLength {
			set[word] = true
		}
	}
	return set
}

// fullResumeText flattens every textual part of a resume into one string:
// summary, skills, experience descriptions, education lines, project
// names, descriptions and technologies.
func fullResumeText(r *types.Resume) string {
	parts := make([]string, 0)
	appendPart := func(s string) {
		if s != "" {
			parts = append(parts, s)
		}
	}

	appendPart(r.Summary)
	for _, skill := range r.FlattenedSkills() {
		appendPart(skill)
	}
	for _, exp := range r.Experience {
		for _, line := range exp.Description {
			appendPart(line)
		}
	}
	for _, edu := range r.Education {
		appendPart(edu.Degree)
		appendPart(edu.Major)
		appendPart(edu.Institution)
	}
	for _, proj := range r.Projects {
		appendPart(proj.Name)
		appendPart(proj.Description)
		for _, tech := range proj.Technologies {
			appendPart(tech)
		}
	}
	return strings.Join(parts, " ")
}

// jobFullText joins the description, requirements and responsibilities of
// a posting, the text used for whole-document keyword comparison.
func jobFullText(j *types.JobDescription) string {
	return j.Description + " " +
		strings.Join(j.Requirements, " ") + " " +
		strings.Join(j.Responsibilities, " ")
}

// jobDutiesText joins responsibilities then requirements, the text the
// experience and project sections are compared against.
func jobDutiesText(j *types.JobDescription) string {
	parts := make([]string, 0, len(j.Responsibilities)+len(j.Requirements))
	parts = append(parts, j.Responsibilities...)
	parts = append(parts, j.Requirements...)
	return strings.Join(parts, " ")
}

// experienceText joins every accomplishment line across roles.
func experienceText(r *types.Resume) string {
	parts := make([]string, 0, len(r.Experience))
	for _, exp := range r.Experience {
		parts = append(parts, strings.Join(exp.Description, " "))
	}
	return strings.Join(parts, " ")
}

// projectsText joins every project description.
func projectsText(r *types.Resume) string {
	parts := make([]string, 0, len(r.Projects))
	for _, proj := range r.Projects {
		parts = append(parts, proj.Description)
	}
	return strings.Join(parts, " ")
}
