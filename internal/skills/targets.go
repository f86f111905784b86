// Package skills builds weighted skill targets from job descriptions.
package skills

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shashank8104/resume-intelligence/internal/ingestion"
	"github.com/shashank8104/resume-intelligence/internal/types"
)

const (
	// Weight constants per requirement level
	weightRequired  = 1.0
	weightPreferred = 0.5
	weightKeyword   = 0.3

	// Source constants
	SourceRequired  = "required"
	SourcePreferred = "preferred"
	SourceKeyword   = "keyword"
)

// Target is one skill a posting asks for and how firmly it asks.
type Target struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Source string  `json:"source"`
}

// FromJob builds a weighted list of target skills for a job description.
// Required skills carry full weight, preferred skills half, and skills
// mentioned only in the posting prose a keyword weight. Names are
// normalized and deduplicated (taking max weight when duplicates exist),
// and the result is sorted by weight descending, ties broken by name.
func FromJob(job *types.JobDescription) ([]Target, error) {
	if job == nil {
		return nil, fmt.Errorf("job description is nil")
	}

	// Map: normalized skill name -> target
	targetMap := make(map[string]*Target)

	for _, skill := range job.RequiredSkills {
		addOrUpdateTarget(targetMap, skill, weightRequired, SourceRequired)
	}
	for _, skill := range job.PreferredSkills {
		addOrUpdateTarget(targetMap, skill, weightPreferred, SourcePreferred)
	}
	for _, skill := range ingestion.KnownSkills(postingText(job)) {
		addOrUpdateTarget(targetMap, skill, weightKeyword, SourceKeyword)
	}

	if len(targetMap) == 0 {
		return nil, fmt.Errorf("no skills found in job description")
	}

	targets := make([]Target, 0, len(targetMap))
	for _, t := range targetMap {
		targets = append(targets, *t)
	}
	sort.Slice(targets, func(i, j int) bool {
		if targets[i].Weight != targets[j].Weight {
			return targets[i].Weight > targets[j].Weight
		}
		return targets[i].Name < targets[j].Name
	})
	return targets, nil
}

// MissingFrom filters targets down to the ones the resume does not
// cover, preserving weight order.
func MissingFrom(targets []Target, resume *types.Resume) []Target {
	if resume == nil {
		return targets
	}
	have := resume.SkillSet()
	missing := make([]Target, 0, len(targets))
	for _, t := range targets {
		if !have[t.Name] {
			missing = append(missing, t)
		}
	}
	return missing
}

// postingText joins the prose fields the keyword scan runs over.
func postingText(job *types.JobDescription) string {
	parts := []string{
		job.Title,
		job.Description,
		strings.Join(job.Requirements, "\n"),
		strings.Join(job.Responsibilities, "\n"),
		strings.Join(job.PreferredQualifications, "\n"),
	}
	return strings.Join(parts, "\n")
}

// addOrUpdateTarget adds a skill to the map or updates it if it exists,
// taking the maximum weight when duplicates are found.
func addOrUpdateTarget(targetMap map[string]*Target, name string, weight float64, source string) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return
	}
	existing, ok := targetMap[normalized]
	if !ok {
		targetMap[normalized] = &Target{Name: normalized, Weight: weight, Source: source}
		return
	}
	if weight > existing.Weight {
		existing.Weight = weight
		existing.Source = source
	}
	// On equal weight, prefer the stronger source: required > preferred > keyword.
	if weight == existing.Weight && sourcePriority(source) > sourcePriority(existing.Source) {
		existing.Source = source
	}
}

func sourcePriority(source string) int {
	switch source {
	case SourceRequired:
		return 3
	case SourcePreferred:
		return 2
	case SourceKeyword:
		return 1
	default:
		return 0
	}
}
