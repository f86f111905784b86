package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean_Basic(t *testing.T) {
	assert.InDelta(t, 2.5, mean([]float64{1, 2, 3, 4}), 1e-12)
	assert.Equal(t, 0.0, mean(nil))
}

func TestPopStd_KnownValue(t *testing.T) {
	// Mean 5, squared deviations sum to 32 over 8 values.
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	assert.InDelta(t, 2.0, popStd(values), 1e-12)
	assert.Equal(t, 0.0, popStd(nil))
	assert.Equal(t, 0.0, popStd([]float64{3.3}))
}

func TestMinMax_Bounds(t *testing.T) {
	lo, hi := minMax([]float64{0.4, 0.1, 0.9, 0.5})
	assert.Equal(t, 0.1, lo)
	assert.Equal(t, 0.9, hi)

	lo, hi = minMax(nil)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 0.0, hi)
}

func TestPercentile_LinearInterpolation(t *testing.T) {
	values := []float64{1, 2, 3, 4}

	assert.InDelta(t, 1.75, percentile(values, 25), 1e-12)
	assert.InDelta(t, 2.5, percentile(values, 50), 1e-12)
	assert.InDelta(t, 3.25, percentile(values, 75), 1e-12)
	assert.InDelta(t, 1.0, percentile(values, 0), 1e-12)
	assert.InDelta(t, 4.0, percentile(values, 100), 1e-12)
}

func TestPercentile_UnsortedInputLeftIntact(t *testing.T) {
	values := []float64{0.9, 0.1, 0.5}

	assert.InDelta(t, 0.5, percentile(values, 50), 1e-12)
	assert.Equal(t, []float64{0.9, 0.1, 0.5}, values)
}

func TestPercentile_SingleAndEmpty(t *testing.T) {
	assert.Equal(t, 0.7, percentile([]float64{0.7}, 95))
	assert.Equal(t, 0.0, percentile(nil, 50))
}

func TestMedian_OddCount(t *testing.T) {
	assert.InDelta(t, 2.0, median([]float64{3, 1, 2}), 1e-12)
}
