package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosine_IdenticalVectors(t *testing.T) {
	c := NewCalculator(nil)

	sim, err := c.Cosine([]float64{1, 2, 3}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-9)
}

func TestCosine_OrthogonalVectors(t *testing.T) {
	c := NewCalculator(nil)

	sim, err := c.Cosine([]float64{1, 0}, []float64{0, 1})
	require.NoError(t, err)
	assert.Zero(t, sim)
}

func TestCosine_KnownValue(t *testing.T) {
	c := NewCalculator(nil)

	// dot = 1, |a| = sqrt(2), |b| = 1.
	sim, err := c.Cosine([]float64{1, 1, 0}, []float64{1, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1/math.Sqrt2, sim, 1e-9)
}

func TestCosine_ZeroVectorScoresZero(t *testing.T) {
	c := NewCalculator(nil)

	sim, err := c.Cosine([]float64{0, 0, 0}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Zero(t, sim)

	// The zero-vector case is decided before lengths are compared.
	sim, err = c.Cosine([]float64{0, 0}, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Zero(t, sim)
}

func TestCosine_LengthMismatch(t *testing.T) {
	c := NewCalculator(nil)

	_, err := c.Cosine([]float64{1, 2}, []float64{1, 2, 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length mismatch")
}

func TestCosine_NegativeCorrelationClipsToZero(t *testing.T) {
	c := NewCalculator(nil)

	sim, err := c.Cosine([]float64{1, 0}, []float64{-1, 0})
	require.NoError(t, err)
	assert.Zero(t, sim)
}

func TestTFIDFTextSimilarity_IdenticalTexts(t *testing.T) {
	c := NewCalculator(nil)

	sim := c.TFIDFTextSimilarity("golang backend services", "golang backend services")
	assert.InDelta(t, 1.0, sim, 1e-9)
}

func TestTFIDFTextSimilarity_DisjointTexts(t *testing.T) {
	c := NewCalculator(nil)

	sim := c.TFIDFTextSimilarity("golang kubernetes", "marketing campaigns")
	assert.Zero(t, sim)
}

func TestTFIDFTextSimilarity_PartialOverlap(t *testing.T) {
	c := NewCalculator(nil)

	sim := c.TFIDFTextSimilarity("python api development", "python web development")
	assert.Greater(t, sim, 0.0)
	assert.Less(t, sim, 1.0)
}

func TestTFIDFTextSimilarity_EmptyText(t *testing.T) {
	c := NewCalculator(nil)

	assert.Zero(t, c.TFIDFTextSimilarity("", "golang"))
	assert.Zero(t, c.TFIDFTextSimilarity("golang", "   "))
}

func TestJaccard_BothEmptyScoresOne(t *testing.T) {
	c := NewCalculator(nil)

	assert.Equal(t, 1.0, c.Jaccard(nil, nil))
	assert.Equal(t, 1.0, c.Jaccard([]string{}, []string{}))
}

func TestJaccard_OneEmptyScoresZero(t *testing.T) {
	c := NewCalculator(nil)

	assert.Zero(t, c.Jaccard([]string{"golang"}, nil))
}

func TestJaccard_PartialOverlap(t *testing.T) {
	c := NewCalculator(nil)

	// Intersection 2, union 4.
	sim := c.Jaccard([]string{"golang", "python", "sql"}, []string{"golang", "sql", "rust"})
	assert.InDelta(t, 0.5, sim, 1e-9)
}

func TestJaccard_DuplicatesCollapse(t *testing.T) {
	c := NewCalculator(nil)

	assert.Equal(t, 1.0, c.Jaccard([]string{"golang", "golang"}, []string{"golang"}))
}

func TestWeightedAverage_NormalizesWeights(t *testing.T) {
	c := NewCalculator(nil)

	avg, err := c.WeightedAverage([]float64{1, 0}, []float64{3, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, avg, 1e-9)
}

func TestWeightedAverage_EmptyInputIsZero(t *testing.T) {
	c := NewCalculator(nil)

	avg, err := c.WeightedAverage(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, avg)
}

func TestWeightedAverage_LengthMismatch(t *testing.T) {
	c := NewCalculator(nil)

	_, err := c.WeightedAverage([]float64{1}, []float64{1, 2})
	require.Error(t, err)
}

func TestWeightedAverage_ZeroWeightTotal(t *testing.T) {
	c := NewCalculator(nil)

	_, err := c.WeightedAverage([]float64{0.5}, []float64{0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weights sum to zero")
}

func TestWeightedAverage_ClipsIntoUnitRange(t *testing.T) {
	c := NewCalculator(nil)

	avg, err := c.WeightedAverage([]float64{1.5, 1.5}, []float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 1.0, avg)
}

func TestBatchCosine_FailedEntriesScoreZero(t *testing.T) {
	c := NewCalculator(nil)

	scores := c.BatchCosine([]float64{1, 0}, [][]float64{
		{1, 0},
		{0, 1},
		{1, 0, 0}, // length mismatch
	})
	require.Len(t, scores, 3)
	assert.InDelta(t, 1.0, scores[0], 1e-9)
	assert.Zero(t, scores[1])
	assert.Zero(t, scores[2])
}

func TestMostSimilar_PicksBestCandidate(t *testing.T) {
	c := NewCalculator(nil)

	idx, score := c.MostSimilar([]float64{1, 0}, [][]float64{
		{0, 1},
		{1, 0},
		{0.5, 0.5},
	})
	assert.Equal(t, 1, idx)
	assert.InDelta(t, 1.0, score, 1e-9)
}

func TestMostSimilar_NoCandidates(t *testing.T) {
	c := NewCalculator(nil)

	idx, score := c.MostSimilar([]float64{1, 0}, nil)
	assert.Equal(t, -1, idx)
	assert.Zero(t, score)
}
