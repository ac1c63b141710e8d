// Package vectorspace builds dense document-term matrices from raw text.
//
// Both builders are pure: all working state is local to the call, so they may
// be invoked concurrently without coordination.
package vectorspace

import (
	"math"
	"strings"

	"github.com/kailas-cloud/textvec/internal/domain"
)

// Result is a document-term matrix together with its column vocabulary.
type Result struct {
	Matrix     *Matrix
	Vocabulary *Vocabulary
}

// Option configures a builder call.
type Option func(*options)

type options struct {
	tieBreak TieBreak
}

// WithTieBreak sets the ordering of equal-frequency terms. Default: TieBreakFirstSeen.
func WithTieBreak(tb TieBreak) Option {
	return func(o *options) { o.tieBreak = tb }
}

func applyOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Tokenize lowercases doc and splits it on whitespace runs.
func Tokenize(doc string) []string {
	return strings.Fields(strings.ToLower(doc))
}

func tokenizeAll(documents []string) [][]string {
	out := make([][]string, len(documents))
	for i, d := range documents {
		out[i] = Tokenize(d)
	}
	return out
}

func validateMaxFeatures(maxFeatures int) error {
	if maxFeatures < 1 {
		return domain.NewInvalidInput("max_features", "must be a positive integer")
	}
	return nil
}

// BuildBagOfWords returns raw term counts over the maxFeatures most frequent terms.
// Every occurrence counts towards vocabulary selection.
func BuildBagOfWords(documents []string, maxFeatures int, opts ...Option) (Result, error) {
	if err := validateMaxFeatures(maxFeatures); err != nil {
		return Result{}, err
	}
	o := applyOptions(opts)
	docs := tokenizeAll(documents)

	counter := newTermCounter()
	for _, tokens := range docs {
		for _, t := range tokens {
			counter.add(t)
		}
	}
	vocab := counter.top(maxFeatures, o.tieBreak)

	m := NewMatrix(len(docs), vocab.Len())
	for i, tokens := range docs {
		for _, t := range tokens {
			if j, ok := vocab.Index(t); ok {
				m.inc(i, j)
			}
		}
	}

	return Result{Matrix: m, Vocabulary: vocab}, nil
}

// BuildTFIDF returns L2-normalized TF-IDF weights over the maxFeatures terms
// with the highest document frequency.
//
// tf = count / tokens in document, idf = ln((N+1)/(df+1)) + 1.
// Empty documents and documents with no vocabulary terms produce zero rows.
func BuildTFIDF(documents []string, maxFeatures int, opts ...Option) (Result, error) {
	if err := validateMaxFeatures(maxFeatures); err != nil {
		return Result{}, err
	}
	o := applyOptions(opts)
	docs := tokenizeAll(documents)

	// Vocabulary ranks by document presence, not occurrence.
	sets := make([]map[string]struct{}, len(docs))
	counter := newTermCounter()
	for i, tokens := range docs {
		seen := make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			counter.add(t)
		}
		sets[i] = seen
	}
	vocab := counter.top(maxFeatures, o.tieBreak)

	m := NewMatrix(len(docs), vocab.Len())
	for i, tokens := range docs {
		for _, t := range tokens {
			if j, ok := vocab.Index(t); ok {
				m.inc(i, j)
			}
		}
		if total := len(tokens); total > 0 {
			row := m.Row(i)
			for j := range row {
				row[j] /= float64(total)
			}
		}
	}

	n := len(docs)
	idf := make([]float64, vocab.Len())
	for j := range idf {
		term := vocab.Term(j)
		df := 0
		for _, set := range sets {
			if _, ok := set[term]; ok {
				df++
			}
		}
		idf[j] = math.Log(float64(n+1)/float64(df+1)) + 1
	}

	for i := 0; i < m.Rows(); i++ {
		row := m.Row(i)
		var sq float64
		for j := range row {
			row[j] *= idf[j]
			sq += row[j] * row[j]
		}
		norm := math.Sqrt(sq)
		if norm == 0 {
			continue
		}
		for j := range row {
			row[j] /= norm
		}
	}

	return Result{Matrix: m, Vocabulary: vocab}, nil
}
