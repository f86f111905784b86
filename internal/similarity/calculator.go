// Package similarity provides the numeric primitives behind section
// scoring: cosine similarity, ad-hoc pairwise text similarity, Jaccard
// overlap and weighted averaging.
package similarity

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/shashank8104/resume-intelligence/internal/embedding"
)

// zeroTolerance bounds the magnitude below which a component counts as zero.
const zeroTolerance = 1e-9

// Calculator computes similarity metrics. All methods are pure functions
// of their inputs; the struct only carries a logger for soft-failure
// warnings, so a Calculator is safe for concurrent use.
type Calculator struct {
	logger *zap.Logger
}

// NewCalculator returns a Calculator. A nil logger disables warnings.
func NewCalculator(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger}
}

// isZeroVector reports whether every component is (numerically) zero.
func isZeroVector(v []float64) bool {
	for _, x := range v {
		if math.Abs(x) > zeroTolerance {
			return false
		}
	}
	return true
}

// Cosine returns the cosine similarity of a and b clipped into [0,1].
// Either vector being all-zero is a defined case and yields 0; negative
// correlation is deliberately treated the same as no correlation. Length
// mismatches and non-finite input are reported as errors.
func (c *Calculator) Cosine(a, b []float64) (float64, error) {
	if isZeroVector(a) || isZeroVector(b) {
		return 0, nil
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("similarity: vector length mismatch %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		return 0, fmt.Errorf("similarity: non-finite cosine result")
	}
	return clip01(sim), nil
}

// TFIDFTextSimilarity builds an independent TF-IDF space containing only
// the two texts and returns their cosine similarity in [0,1]. Empty or
// whitespace-only input yields 0. Each call is self-contained; no state
// from the persistent embedding generator is involved.
func (c *Calculator) TFIDFTextSimilarity(text1, text2 string) float64 {
	if strings.TrimSpace(text1) == "" || strings.TrimSpace(text2) == "" {
		return 0
	}

	vec := embedding.NewVectorizer(0, 1)
	docs, err := vec.FitTransform([]string{text1, text2})
	if err != nil {
		c.logger.Warn("text similarity fit failed", zap.Error(err))
		return 0
	}

	sim, err := c.Cosine(docs[0], docs[1])
	if err != nil {
		c.logger.Warn("text similarity cosine failed", zap.Error(err))
		return 0
	}
	return sim
}

// Jaccard returns |A∩B| / |A∪B| over the two string collections, treated
// as sets. Two empty sets are identical by definition and score 1.
func (c *Calculator) Jaccard(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 1
	}

	intersection := 0
	for item := range setA {
		if setB[item] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// WeightedAverage normalizes weights to sum to one and returns the
// weighted mean of scores, clipped into [0,1]. A length mismatch or a
// zero weight total is an error; empty input is a defined 0.
func (c *Calculator) WeightedAverage(scores, weights []float64) (float64, error) {
	if len(scores) != len(weights) {
		return 0, fmt.Errorf("similarity: %d scores vs %d weights", len(scores), len(weights))
	}
	if len(scores) == 0 {
		return 0, nil
	}

	var total float64
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		return 0, fmt.Errorf("similarity: weights sum to zero")
	}

	var sum float64
	for i, s := range scores {
		sum += s * weights[i] / total
	}
	return clip01(sum), nil
}

// BatchCosine scores one base vector against each of the others. Entries
// that fail to compare score 0.
func (c *Calculator) BatchCosine(base []float64, others [][]float64) []float64 {
	out := make([]float64, len(others))
	for i, other := range others {
		sim, err := c.Cosine(base, other)
		if err != nil {
			c.logger.Warn("batch cosine entry failed", zap.Int("index", i), zap.Error(err))
			sim = 0
		}
		out[i] = sim
	}
	return out
}

// MostSimilar returns the index and score of the candidate closest to the
// query, or (-1, 0) when there are no candidates.
func (c *Calculator) MostSimilar(query []float64, candidates [][]float64) (int, float64) {
	if len(candidates) == 0 {
		return -1, 0
	}

	scores := c.BatchCosine(query, candidates)
	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return best, scores[best]
}

// toSet builds a membership set from a slice.
func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

// clip01 clamps x into [0,1].
func clip01(x float64) float64 {
	return math.Min(1, math.Max(0, x))
}
