package screening

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashank8104/resume-intelligence/internal/types"
)

func TestTopKeywords_FrequencyRanked(t *testing.T) {
	ranked := topKeywords("data data science science science")

	// "science" appears three times, "data" twice.
	assert.Equal(t, []string{"science", "data"}, ranked)
}

func TestTopKeywords_TieBrokenByFirstOccurrence(t *testing.T) {
	ranked := topKeywords("alpha beta alpha beta gamma")

	assert.Equal(t, []string{"alpha", "beta", "gamma"}, ranked)
}

func TestTopKeywords_FiltersShortAndCommonWords(t *testing.T) {
	assert.Empty(t, topKeywords("go at api that with from they have this will been"))

	ranked := topKeywords("kubernetes cluster kubernetes")
	assert.Equal(t, []string{"kubernetes", "cluster"}, ranked)
}

func TestTopKeywords_CapsAtTwenty(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, "keyword%02d ", i)
	}

	ranked := topKeywords(b.String())

	assert.Len(t, ranked, 20)
	assert.Equal(t, "keyword00", ranked[0])
	assert.Equal(t, "keyword19", ranked[19])
}

func TestTopKeywords_LowercasesInput(t *testing.T) {
	ranked := topKeywords("Docker DOCKER docker")

	assert.Equal(t, []string{"docker"}, ranked)
}

func TestCommonKeywords_AlphabeticalIntersection(t *testing.T) {
	common := commonKeywords("built kafka pipelines daily", "kafka pipelines operations")

	assert.Equal(t, []string{"kafka", "pipelines"}, common)
}

func TestCommonKeywords_NoOverlap(t *testing.T) {
	assert.Empty(t, commonKeywords("frontend styling", "database indexing"))
}

func TestMissingKeywords_JobRankOrder(t *testing.T) {
	missing := missingKeywords("python developer", "terraform terraform ansible python")

	// Present words drop out; the rest keep their frequency rank.
	assert.Equal(t, []string{"terraform", "ansible"}, missing)
}

func TestMissingKeywords_EmptyJobText(t *testing.T) {
	assert.Empty(t, missingKeywords("python developer", ""))
}

func TestFullResumeText_CoversEverySection(t *testing.T) {
	text := fullResumeText(sampleResume())

	assert.Contains(t, text, "Backend engineer")
	assert.Contains(t, text, "Python")
	assert.Contains(t, text, "streaming pipelines")
	assert.Contains(t, text, "Computer Science")
	assert.Contains(t, text, "State University")
	assert.Contains(t, text, "Pipeline Monitor")
	assert.Contains(t, text, "PostgreSQL")
}

func TestFullResumeText_EmptyResume(t *testing.T) {
	assert.Equal(t, "", fullResumeText(&types.Resume{}))
}

func TestJobDutiesText_ResponsibilitiesFirst(t *testing.T) {
	job := &types.JobDescription{
		Requirements:     []string{"req one"},
		Responsibilities: []string{"resp one"},
	}

	assert.Equal(t, "resp one req one", jobDutiesText(job))
}

func TestJobFullText_JoinsAllParts(t *testing.T) {
	job := sampleJob()

	text := jobFullText(job)

	assert.Contains(t, text, job.Description)
	assert.Contains(t, text, "Bachelor's degree in computer science")
	assert.Contains(t, text, "Optimize SQL workloads")
}
