// Package latent projects text collections into low-dimensional spaces via
// truncated SVD.
package latent

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"unicode"

	"github.com/james-bowman/nlp"
	"gonum.org/v1/gonum/mat"

	"github.com/kailas-cloud/textvec/internal/domain"
)

// ErrDecomposition signals that the SVD factorization did not converge.
var ErrDecomposition = errors.New("svd factorization failed")

// LSAResult holds a latent semantic analysis of a collection.
type LSAResult struct {
	Components  *mat.Dense // components x features
	Transformed *mat.Dense // documents x components
	Variance    []float64  // explained variance ratio per component
	Vocabulary  []string   // feature order
}

// EmbeddingResult holds per-document SVD embeddings of raw term counts.
type EmbeddingResult struct {
	Embeddings *mat.Dense // documents x components
	Vocabulary []string
}

// LSA builds sklearn-style TF-IDF over the maxFeatures most frequent terms
// and reduces it to components dimensions.
func LSA(documents []string, maxFeatures, components int) (LSAResult, error) {
	counts, vocab, err := countMatrix(documents, maxFeatures, components)
	if err != nil {
		return LSAResult{}, err
	}

	weighted, err := nlp.NewTfidfTransformer().FitTransform(counts)
	if err != nil {
		return LSAResult{}, fmt.Errorf("tf-idf transform: %w", err)
	}

	// terms x docs -> docs x terms, each document unit length
	x := mat.DenseCopyOf(weighted.T())
	normalizeRows(x)

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return LSAResult{}, ErrDecomposition
	}
	values := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	docs, features := x.Dims()
	transformed := mat.NewDense(docs, components, nil)
	comps := mat.NewDense(components, features, nil)
	for k := 0; k < components; k++ {
		sign := flipSign(v.ColView(k))
		for j := 0; j < features; j++ {
			comps.Set(k, j, sign*v.At(j, k))
		}
		for i := 0; i < docs; i++ {
			transformed.Set(i, k, sign*u.At(i, k)*values[k])
		}
	}

	total := 0.0
	for j := 0; j < features; j++ {
		total += variance(mat.Col(nil, j, x))
	}
	ratios := make([]float64, components)
	if total > 0 {
		for k := range ratios {
			ratios[k] = variance(mat.Col(nil, k, transformed)) / total
		}
	}

	return LSAResult{
		Components:  comps,
		Transformed: transformed,
		Variance:    ratios,
		Vocabulary:  vocab,
	}, nil
}

// Embeddings reduces the raw count matrix of the maxFeatures most frequent
// terms to components dimensions per document.
func Embeddings(documents []string, maxFeatures, components int) (EmbeddingResult, error) {
	counts, vocab, err := countMatrix(documents, maxFeatures, components)
	if err != nil {
		return EmbeddingResult{}, err
	}

	reduced, err := nlp.NewTruncatedSVD(components).FitTransform(counts)
	if err != nil {
		return EmbeddingResult{}, fmt.Errorf("truncated svd: %w", err)
	}

	return EmbeddingResult{
		Embeddings: mat.DenseCopyOf(reduced.T()),
		Vocabulary: vocab,
	}, nil
}

// ToSlice copies m into nested row slices.
func ToSlice(m mat.Matrix) [][]float64 {
	if m == nil {
		return [][]float64{}
	}
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		row := make([]float64, c)
		for j := range row {
			row[j] = m.At(i, j)
		}
		out[i] = row
	}
	return out
}

// countMatrix returns a terms x documents count matrix restricted to the
// maxFeatures terms with the highest corpus count, and the kept terms in
// alphabetical row order.
func countMatrix(documents []string, maxFeatures, components int) (*mat.Dense, []string, error) {
	if len(documents) == 0 {
		return nil, nil, domain.NewInvalidInput("texts", "must contain at least one document")
	}
	if maxFeatures < 1 {
		return nil, nil, domain.NewInvalidInput("max_features", "must be a positive integer")
	}
	if components < 1 {
		return nil, nil, domain.NewInvalidInput("n_components", "must be a positive integer")
	}

	if !hasLetters(documents) {
		return nil, nil, domain.NewInvalidInput("texts", "contain no terms")
	}

	vectoriser := nlp.NewCountVectoriser()
	raw, err := vectoriser.FitTransform(documents...)
	if err != nil {
		return nil, nil, fmt.Errorf("count vectorise: %w", err)
	}
	if len(vectoriser.Vocabulary) == 0 {
		return nil, nil, domain.NewInvalidInput("texts", "contain no terms")
	}

	type ranked struct {
		term  string
		row   int
		total float64
	}
	_, nDocs := raw.Dims()
	terms := make([]ranked, 0, len(vectoriser.Vocabulary))
	for term, row := range vectoriser.Vocabulary {
		var sum float64
		for j := 0; j < nDocs; j++ {
			sum += raw.At(row, j)
		}
		terms = append(terms, ranked{term: term, row: row, total: sum})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].total != terms[j].total {
			return terms[i].total > terms[j].total
		}
		return terms[i].term < terms[j].term
	})
	if len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	// Kept features are laid out alphabetically.
	sort.Slice(terms, func(i, j int) bool { return terms[i].term < terms[j].term })

	if limit := min(nDocs, len(terms)); components > limit {
		return nil, nil, domain.NewInvalidInput("n_components",
			fmt.Sprintf("must not exceed min(documents, features) = %d", limit))
	}

	counts := mat.NewDense(len(terms), nDocs, nil)
	vocab := make([]string, len(terms))
	for i, t := range terms {
		vocab[i] = t.term
		for j := 0; j < nDocs; j++ {
			counts.Set(i, j, raw.At(t.row, j))
		}
	}
	return counts, vocab, nil
}

// hasLetters reports whether any document contains a letter, the only runes
// the count vectoriser keeps.
func hasLetters(documents []string) bool {
	for _, d := range documents {
		for _, r := range d {
			if unicode.IsLetter(r) {
				return true
			}
		}
	}
	return false
}

func normalizeRows(m *mat.Dense) {
	r, _ := m.Dims()
	for i := 0; i < r; i++ {
		row := m.RawRowView(i)
		var sq float64
		for _, v := range row {
			sq += v * v
		}
		if sq == 0 {
			continue
		}
		norm := math.Sqrt(sq)
		for j := range row {
			row[j] /= norm
		}
	}
}

// flipSign returns -1 when the largest-magnitude entry of v is negative,
// making component signs deterministic.
func flipSign(v mat.Vector) float64 {
	best, bestAbs := 0.0, -1.0
	for i := 0; i < v.Len(); i++ {
		if a := math.Abs(v.AtVec(i)); a > bestAbs {
			best, bestAbs = v.AtVec(i), a
		}
	}
	if best < 0 {
		return -1
	}
	return 1
}

// variance is the population variance of xs.
func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	var acc float64
	for _, x := range xs {
		d := x - mean
		acc += d * d
	}
	return acc / float64(len(xs))
}
