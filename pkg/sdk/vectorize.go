package textvec

import (
	"context"
	"net/http"
	"time"
)

// VectorizeService calls the vectorization endpoints.
type VectorizeService struct {
	c *Client
}

// TFIDF builds an L2-normalized TF-IDF matrix.
func (s *VectorizeService) TFIDF(
	ctx context.Context, texts []string, opts ...VectorizeOption,
) (res MatrixResult, err error) {
	start := time.Now()
	defer func() { s.c.obs.observe("tfidf", start, err) }()

	err = s.c.do(ctx, http.MethodPost, "/tf-idf", newVectorizeRequest(texts, opts), &res)
	return res, err
}

// BagOfWords builds a raw term-count matrix.
func (s *VectorizeService) BagOfWords(
	ctx context.Context, texts []string, opts ...VectorizeOption,
) (res MatrixResult, err error) {
	start := time.Now()
	defer func() { s.c.obs.observe("bag_of_words", start, err) }()

	err = s.c.do(ctx, http.MethodPost, "/bag-of-words", newVectorizeRequest(texts, opts), &res)
	return res, err
}

// LSA runs latent semantic analysis over TF-IDF features.
func (s *VectorizeService) LSA(
	ctx context.Context, texts []string, opts ...VectorizeOption,
) (res LSAResult, err error) {
	start := time.Now()
	defer func() { s.c.obs.observe("lsa", start, err) }()

	err = s.c.do(ctx, http.MethodPost, "/lsa", newVectorizeRequest(texts, opts), &res)
	return res, err
}

// Embeddings reduces term counts to dense per-document vectors (the /word2vec endpoint).
func (s *VectorizeService) Embeddings(
	ctx context.Context, texts []string, opts ...VectorizeOption,
) (res EmbeddingResult, err error) {
	start := time.Now()
	defer func() { s.c.obs.observe("word2vec", start, err) }()

	err = s.c.do(ctx, http.MethodPost, "/word2vec", newVectorizeRequest(texts, opts), &res)
	return res, err
}

func newVectorizeRequest(texts []string, opts []VectorizeOption) *vectorizeRequest {
	if texts == nil {
		texts = []string{}
	}
	req := &vectorizeRequest{Texts: texts}
	for _, o := range opts {
		o(req)
	}
	return req
}
