package embedding

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vectorNorm(vec []float64) float64 {
	var sum float64
	for _, x := range vec {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func TestVectorizer_TransformBeforeFit(t *testing.T) {
	v := NewVectorizer(0, 1)

	_, err := v.Transform("python golang")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFitted))
	assert.False(t, v.Fitted())
}

func TestVectorizer_FitOnStopWordsOnly(t *testing.T) {
	v := NewVectorizer(0, 1)

	// "a" is too short, the rest are stop words.
	err := v.Fit([]string{"a an the", "with without"})
	assert.True(t, errors.Is(err, ErrEmptyVocabulary))
	assert.False(t, v.Fitted())
}

func TestVectorizer_TransformIsL2Normalized(t *testing.T) {
	v := NewVectorizer(0, 1)
	require.NoError(t, v.Fit([]string{"python golang kubernetes", "python rust"}))

	vec, err := v.Transform("python golang")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, vectorNorm(vec), 1e-9)
}

func TestVectorizer_SingleKnownTermScoresOne(t *testing.T) {
	v := NewVectorizer(0, 1)
	require.NoError(t, v.Fit([]string{"python golang", "python rust"}))

	vec, err := v.Transform("python")
	require.NoError(t, err)

	nonzero := 0
	for _, x := range vec {
		if x != 0 {
			nonzero++
			assert.InDelta(t, 1.0, x, 1e-9)
		}
	}
	assert.Equal(t, 1, nonzero)
}

func TestVectorizer_RarerTermsWeighHeavier(t *testing.T) {
	v := NewVectorizer(0, 1)
	// "python" appears in both documents, "golang" only in one.
	require.NoError(t, v.Fit([]string{"python golang", "python rust"}))

	vec, err := v.Transform("python golang")
	require.NoError(t, err)

	var components []float64
	for _, x := range vec {
		if x != 0 {
			components = append(components, x)
		}
	}
	require.Len(t, components, 2)
	lo, hi := components[0], components[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	assert.Less(t, lo, hi)
}

func TestVectorizer_UnknownTermsYieldZeroVector(t *testing.T) {
	v := NewVectorizer(0, 1)
	require.NoError(t, v.Fit([]string{"python golang"}))

	vec, err := v.Transform("cobol fortran")
	require.NoError(t, err)
	assert.Len(t, vec, 2)
	for _, x := range vec {
		assert.Zero(t, x)
	}
}

func TestVectorizer_MaxFeaturesKeepsMostFrequent(t *testing.T) {
	v := NewVectorizer(2, 1)
	require.NoError(t, v.Fit([]string{"python golang", "python golang", "python rust"}))

	assert.Equal(t, 2, v.VocabularySize())

	// "rust" fell off the vocabulary, "python" survived.
	rustVec, err := v.Transform("rust")
	require.NoError(t, err)
	assert.Zero(t, vectorNorm(rustVec))

	pythonVec, err := v.Transform("python")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, vectorNorm(pythonVec), 1e-9)
}

func TestVectorizer_BigramsExtendVocabulary(t *testing.T) {
	unigrams := NewVectorizer(0, 1)
	require.NoError(t, unigrams.Fit([]string{"machine learning pipeline"}))
	assert.Equal(t, 3, unigrams.VocabularySize())

	bigrams := NewVectorizer(0, 2)
	require.NoError(t, bigrams.Fit([]string{"machine learning pipeline"}))
	// Three unigrams plus "machine learning" and "learning pipeline".
	assert.Equal(t, 5, bigrams.VocabularySize())
}

func TestVectorizer_StopWordsNeverEnterNgrams(t *testing.T) {
	v := NewVectorizer(0, 2)
	// The stop word "with" is removed before pairing, so the bigram
	// joins the surviving neighbors.
	require.NoError(t, v.Fit([]string{"python with golang"}))

	assert.Equal(t, 3, v.VocabularySize())
	vec, err := v.Transform("python golang")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, vectorNorm(vec), 1e-9)
}

func TestVectorizer_TokenizeDropsSingleCharacters(t *testing.T) {
	v := NewVectorizer(0, 1)
	require.NoError(t, v.Fit([]string{"r c python"}))

	// Only "python" survives the minimum token length.
	assert.Equal(t, 1, v.VocabularySize())
}

func TestVectorizer_FitTransformReturnsInputOrder(t *testing.T) {
	v := NewVectorizer(0, 1)
	docs := []string{"python golang", "kubernetes docker", "python kubernetes"}

	vecs, err := v.FitTransform(docs)
	require.NoError(t, err)
	require.Len(t, vecs, 3)
	for i, vec := range vecs {
		assert.Len(t, vec, v.VocabularySize())
		assert.InDelta(t, 1.0, vectorNorm(vec), 1e-9, "doc %d", i)
	}
	assert.True(t, v.Fitted())
}

func TestIsStopWord(t *testing.T) {
	assert.True(t, IsStopWord("the"))
	assert.True(t, IsStopWord("go"))
	assert.False(t, IsStopWord("golang"))
	assert.False(t, IsStopWord("python"))
}
