// Package embedding converts free text into fixed-length TF-IDF term
// vectors for section-level similarity scoring.
package embedding

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches word runs of at least two letters, digits or
// underscores. Single-character tokens are discarded.
var tokenPattern = regexp.MustCompile(`[\pL\pN_]{2,}`)

// ErrNotFitted is returned by Transform before any fit has happened.
var ErrNotFitted = errors.New("embedding: vectorizer is not fitted")

// ErrEmptyVocabulary is returned when fitting produces no terms, which
// happens when every input token is a stop word or too short.
var ErrEmptyVocabulary = errors.New("embedding: empty vocabulary")

// Vectorizer builds L2-normalized TF-IDF vectors over a vocabulary learned
// from the documents given to Fit. The vocabulary and inverse-document
// frequencies are frozen after fitting; Transform never updates them.
type Vectorizer struct {
	maxFeatures int // 0 means unlimited
	ngramMax    int // 1 for unigrams, 2 to add bigrams
	vocabulary  map[string]int
	idf         []float64
	fitted      bool
}

// NewVectorizer returns an unfitted vectorizer. maxFeatures caps the
// vocabulary size (0 = unlimited); ngramMax of 2 adds bigrams over the
// stop-word-filtered token stream.
func NewVectorizer(maxFeatures, ngramMax int) *Vectorizer {
	if ngramMax < 1 {
		ngramMax = 1
	}
	return &Vectorizer{maxFeatures: maxFeatures, ngramMax: ngramMax}
}

// tokenize lowercases the text, extracts word tokens, drops stop words and
// expands the surviving sequence into n-grams.
func (v *Vectorizer) tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)

	kept := raw[:0]
	for _, tok := range raw {
		if !IsStopWord(tok) {
			kept = append(kept, tok)
		}
	}

	if v.ngramMax < 2 {
		return kept
	}

	grams := make([]string, 0, 2*len(kept))
	grams = append(grams, kept...)
	for i := 0; i+1 < len(kept); i++ {
		grams = append(grams, kept[i]+" "+kept[i+1])
	}
	return grams
}

// Fit learns the vocabulary and IDF weights from docs. When the term count
// exceeds maxFeatures, the most frequent terms across the corpus are kept,
// with lexicographic order breaking ties.
func (v *Vectorizer) Fit(docs []string) error {
	termCounts := make(map[string]int) // total occurrences across docs
	docCounts := make(map[string]int)  // number of docs containing the term

	for _, doc := range docs {
		tokens := v.tokenize(doc)
		seen := make(map[string]bool, len(tokens))
		for _, tok := range tokens {
			termCounts[tok]++
			if !seen[tok] {
				seen[tok] = true
				docCounts[tok]++
			}
		}
	}

	if len(termCounts) == 0 {
		return ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(termCounts))
	for term := range termCounts {
		terms = append(terms, term)
	}

	if v.maxFeatures > 0 && len(terms) > v.maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if termCounts[terms[i]] != termCounts[terms[j]] {
				return termCounts[terms[i]] > termCounts[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:v.maxFeatures]
	}
	sort.Strings(terms)

	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		v.vocabulary[term] = i
		df := float64(docCounts[term])
		v.idf[i] = math.Log((1+n)/(1+df)) + 1
	}
	v.fitted = true
	return nil
}

// Transform converts one document into an L2-normalized TF-IDF vector over
// the fitted vocabulary. Terms outside the vocabulary are ignored; a
// document with no known terms yields a zero vector.
func (v *Vectorizer) Transform(doc string) ([]float64, error) {
	if !v.fitted {
		return nil, ErrNotFitted
	}

	vec := make([]float64, len(v.idf))
	for _, tok := range v.tokenize(doc) {
		if col, ok := v.vocabulary[tok]; ok {
			vec[col]++
		}
	}

	var norm float64
	for i, count := range vec {
		vec[i] = count * v.idf[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

// FitTransform fits on docs and returns their vectors in input order.
func (v *Vectorizer) FitTransform(docs []string) ([][]float64, error) {
	if err := v.Fit(docs); err != nil {
		return nil, err
	}
	out := make([][]float64, len(docs))
	for i, doc := range docs {
		vec, err := v.Transform(doc)
		if err != nil {
			return nil, fmt.Errorf("transform doc %d: %w", i, err)
		}
		out[i] = vec
	}
	return out, nil
}

// Fitted reports whether the vocabulary has been learned.
func (v *Vectorizer) Fitted() bool {
	return v.fitted
}

// VocabularySize returns the number of learned terms, 0 before fitting.
func (v *Vectorizer) VocabularySize() int {
	return len(v.vocabulary)
}
