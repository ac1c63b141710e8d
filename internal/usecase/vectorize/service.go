package vectorize

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/textvec/internal/domain"
	"github.com/kailas-cloud/textvec/internal/domain/latent"
	"github.com/kailas-cloud/textvec/internal/domain/vectorspace"
	"github.com/kailas-cloud/textvec/internal/logger"
	"github.com/kailas-cloud/textvec/internal/metrics"
)

// Operation names used in metrics, logs and cache keys.
const (
	OpTFIDF      = "tfidf"
	OpBagOfWords = "bag_of_words"
	OpLSA        = "lsa"
	OpEmbeddings = "word2vec"
)

// Request is a vectorization request. Nil pointers take the configured defaults.
type Request struct {
	Texts       []string
	MaxFeatures *int
	Components  *int
}

// MatrixResult is a document-term matrix with its vocabulary.
type MatrixResult struct {
	Matrix     [][]float64    `json:"matrix"`
	Vocabulary map[int]string `json:"vocabulary"`
	Shape      [2]int         `json:"shape"`
}

// LSAResult is a latent semantic analysis of a collection.
type LSAResult struct {
	Components  [][]float64 `json:"components"`
	Transformed [][]float64 `json:"transformed"`
	Variance    []float64   `json:"variance"`
	Vocabulary  []string    `json:"vocabulary"`
}

// EmbeddingResult holds per-document embeddings.
type EmbeddingResult struct {
	Embeddings [][]float64 `json:"embeddings"`
	Vocabulary []string    `json:"vocabulary"`
}

// Limits bounds request parameters.
type Limits struct {
	DefaultMaxFeatures int
	DefaultComponents  int
	MaxDocuments       int // 0 = unlimited
	MaxFeatures        int // 0 = unlimited
}

// DefaultLimits returns the defaults used when no configuration is given.
func DefaultLimits() Limits {
	return Limits{
		DefaultMaxFeatures: domain.DefaultMaxFeatures,
		DefaultComponents:  domain.DefaultComponents,
	}
}

// Service runs vectorization computations.
type Service struct {
	limits   Limits
	tieBreak vectorspace.TieBreak
	cache    ResultCache
}

// New creates a Service.
func New(limits Limits, tieBreak vectorspace.TieBreak) *Service {
	if limits.DefaultMaxFeatures <= 0 {
		limits.DefaultMaxFeatures = domain.DefaultMaxFeatures
	}
	if limits.DefaultComponents <= 0 {
		limits.DefaultComponents = domain.DefaultComponents
	}
	return &Service{limits: limits, tieBreak: tieBreak}
}

// WithCache enables result caching. A nil cache disables it.
func (s *Service) WithCache(c ResultCache) *Service {
	s.cache = c
	return s
}

// TFIDF builds an L2-normalized TF-IDF matrix.
func (s *Service) TFIDF(ctx context.Context, req Request) (MatrixResult, error) {
	return s.matrix(ctx, OpTFIDF, req, vectorspace.BuildTFIDF)
}

// BagOfWords builds a raw count matrix.
func (s *Service) BagOfWords(ctx context.Context, req Request) (MatrixResult, error) {
	return s.matrix(ctx, OpBagOfWords, req, vectorspace.BuildBagOfWords)
}

type builder func([]string, int, ...vectorspace.Option) (vectorspace.Result, error)

func (s *Service) matrix(ctx context.Context, op string, req Request, build builder) (MatrixResult, error) {
	maxFeatures, err := s.validate(req, false)
	if err != nil {
		return MatrixResult{}, err
	}
	key := domain.ResultKey{
		Operation: op,
		Params:    []string{strconv.Itoa(maxFeatures), s.tieBreak.String()},
		Texts:     req.Texts,
	}

	return cached(ctx, s, op, key, func() (MatrixResult, int, error) {
		res, err := build(req.Texts, maxFeatures, vectorspace.WithTieBreak(s.tieBreak))
		if err != nil {
			return MatrixResult{}, 0, err
		}
		return MatrixResult{
			Matrix:     res.Matrix.Slice(),
			Vocabulary: res.Vocabulary.Map(),
			Shape:      res.Matrix.Shape(),
		}, res.Vocabulary.Len(), nil
	})
}

// LSA runs latent semantic analysis.
func (s *Service) LSA(ctx context.Context, req Request) (LSAResult, error) {
	maxFeatures, err := s.validate(req, true)
	if err != nil {
		return LSAResult{}, err
	}
	components := s.components(req)
	key := domain.ResultKey{
		Operation: OpLSA,
		Params:    []string{strconv.Itoa(maxFeatures), strconv.Itoa(components)},
		Texts:     req.Texts,
	}

	return cached(ctx, s, OpLSA, key, func() (LSAResult, int, error) {
		res, err := latent.LSA(req.Texts, maxFeatures, components)
		if err != nil {
			return LSAResult{}, 0, err
		}
		return LSAResult{
			Components:  latent.ToSlice(res.Components),
			Transformed: latent.ToSlice(res.Transformed),
			Variance:    res.Variance,
			Vocabulary:  res.Vocabulary,
		}, len(res.Vocabulary), nil
	})
}

// Embeddings reduces raw term counts to dense per-document vectors.
func (s *Service) Embeddings(ctx context.Context, req Request) (EmbeddingResult, error) {
	maxFeatures, err := s.validate(req, true)
	if err != nil {
		return EmbeddingResult{}, err
	}
	components := s.components(req)
	key := domain.ResultKey{
		Operation: OpEmbeddings,
		Params:    []string{strconv.Itoa(maxFeatures), strconv.Itoa(components)},
		Texts:     req.Texts,
	}

	return cached(ctx, s, OpEmbeddings, key, func() (EmbeddingResult, int, error) {
		res, err := latent.Embeddings(req.Texts, maxFeatures, components)
		if err != nil {
			return EmbeddingResult{}, 0, err
		}
		return EmbeddingResult{
			Embeddings: latent.ToSlice(res.Embeddings),
			Vocabulary: res.Vocabulary,
		}, len(res.Vocabulary), nil
	})
}

// validate checks request-level limits and returns the effective max_features.
func (s *Service) validate(req Request, withComponents bool) (int, error) {
	if req.Texts == nil {
		return 0, domain.NewInvalidInput("texts", "is required")
	}
	if s.limits.MaxDocuments > 0 && len(req.Texts) > s.limits.MaxDocuments {
		return 0, domain.NewInvalidInput("texts",
			fmt.Sprintf("must contain at most %d documents", s.limits.MaxDocuments))
	}

	maxFeatures := s.limits.DefaultMaxFeatures
	if req.MaxFeatures != nil {
		maxFeatures = *req.MaxFeatures
	}
	if maxFeatures < 1 {
		return 0, domain.NewInvalidInput("max_features", "must be a positive integer")
	}
	if s.limits.MaxFeatures > 0 && maxFeatures > s.limits.MaxFeatures {
		return 0, domain.NewInvalidInput("max_features",
			fmt.Sprintf("must not exceed %d", s.limits.MaxFeatures))
	}

	if withComponents && req.Components != nil && *req.Components < 1 {
		return 0, domain.NewInvalidInput("n_components", "must be a positive integer")
	}
	return maxFeatures, nil
}

func (s *Service) components(req Request) int {
	if req.Components != nil {
		return *req.Components
	}
	return s.limits.DefaultComponents
}

// cached serves key from the cache or runs compute, recording metrics for computations.
func cached[T any](
	ctx context.Context,
	s *Service,
	op string,
	key domain.ResultKey,
	compute func() (T, int, error),
) (T, error) {
	log := logger.FromContext(ctx)

	var out T
	if s.cache != nil && s.cache.Get(ctx, key, &out) {
		log.Debug("Served from result cache", zap.String("operation", op))
		return out, nil
	}

	start := time.Now()
	out, vocab, err := compute()
	metrics.ObserveVectorize(op, start, vocab, err)
	if err != nil {
		return out, fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("Vectorized collection",
		zap.String("operation", op),
		zap.Int("documents", len(key.Texts)),
		zap.Int("vocabulary", vocab),
		zap.Duration("elapsed", time.Since(start)),
	)

	if s.cache != nil {
		s.cache.Put(ctx, key, out)
	}
	return out, nil
}
