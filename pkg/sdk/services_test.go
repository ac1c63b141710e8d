package textvec

import (
	"context"
	"errors"
	"math"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/textvec/internal/domain/annotation"
	"github.com/kailas-cloud/textvec/internal/domain/vectorspace"
	chiTransport "github.com/kailas-cloud/textvec/internal/transport/chi"
	annotateuc "github.com/kailas-cloud/textvec/internal/usecase/annotate"
	healthuc "github.com/kailas-cloud/textvec/internal/usecase/health"
	vectorizeuc "github.com/kailas-cloud/textvec/internal/usecase/vectorize"
)

// stubNLP is a whitespace tokenizer that tags capitalized words as proper nouns.
type stubNLP struct{}

func (stubNLP) Tokenize(_ context.Context, text string) ([]string, error) {
	return strings.Fields(text), nil
}

func (stubNLP) Tag(_ context.Context, text string) ([]annotation.TaggedToken, error) {
	var out []annotation.TaggedToken
	for _, w := range strings.Fields(text) {
		tag := "NN"
		if w != strings.ToLower(w) {
			tag = "NNP"
		}
		out = append(out, annotation.TaggedToken{Text: w, Tag: tag})
	}
	return out, nil
}

func (s stubNLP) Entities(ctx context.Context, text string) ([]annotation.Entity, error) {
	tagged, _ := s.Tag(ctx, text)
	var out []annotation.Entity
	for _, t := range tagged {
		if t.Tag == "NNP" {
			out = append(out, annotation.Entity{Text: t.Text, Type: "PERSON"})
		}
	}
	return out, nil
}

func (stubNLP) Stem(word string) string { return strings.TrimSuffix(word, "s") }

func (stubNLP) Lemma(word string, _ annotation.LemmaClass) string { return strings.ToLower(word) }

func (stubNLP) HealthCheck(context.Context) error { return nil }

func newTestClient(t *testing.T, apiKey string) *Client {
	t.Helper()
	nlp := stubNLP{}
	server := chiTransport.NewServer(
		vectorizeuc.New(vectorizeuc.DefaultLimits(), vectorspace.TieBreakFirstSeen),
		annotateuc.New(nlp, nlp, nlp, nlp),
		healthuc.New(nlp, nil),
		zap.NewNop(),
	)
	srv := httptest.NewServer(chiTransport.NewRouter(server, []string{"secret"}, zap.NewNop()))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, WithAPIKey(apiKey))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestVectorizeService(t *testing.T) {
	c := newTestClient(t, "secret")
	ctx := context.Background()

	bow, err := c.Vectorize().BagOfWords(ctx, []string{"cat dog", "dog dog bird"}, WithMaxFeatures(3))
	if err != nil {
		t.Fatalf("bag of words: %v", err)
	}
	if bow.Shape != [2]int{2, 3} || bow.Vocabulary[0] != "dog" || bow.Matrix[1][0] != 2 {
		t.Errorf("unexpected bag of words %+v", bow)
	}

	tfidf, err := c.Vectorize().TFIDF(ctx, []string{"a b", "a a"}, WithMaxFeatures(2))
	if err != nil {
		t.Fatalf("tfidf: %v", err)
	}
	if math.Abs(tfidf.Matrix[1][0]-1) > 1e-9 || tfidf.Matrix[1][1] != 0 {
		t.Errorf("unexpected tfidf row %v", tfidf.Matrix[1])
	}

	texts := []string{"cats chase mice", "dogs chase cats", "mice eat cheese", "dogs eat meat"}
	lsa, err := c.Vectorize().LSA(ctx, texts, WithComponents(2))
	if err != nil {
		t.Fatalf("lsa: %v", err)
	}
	if len(lsa.Transformed) != 4 || len(lsa.Variance) != 2 {
		t.Errorf("unexpected lsa shapes: %d docs, %d variances", len(lsa.Transformed), len(lsa.Variance))
	}

	emb, err := c.Vectorize().Embeddings(ctx, texts, WithComponents(3))
	if err != nil {
		t.Fatalf("embeddings: %v", err)
	}
	if len(emb.Embeddings) != 4 || len(emb.Embeddings[0]) != 3 {
		t.Errorf("unexpected embeddings shape %dx%d", len(emb.Embeddings), len(emb.Embeddings[0]))
	}

	_, err = c.Vectorize().TFIDF(ctx, []string{"a"}, WithMaxFeatures(-1))
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAnnotateService(t *testing.T) {
	c := newTestClient(t, "secret")
	ctx := context.Background()
	const text = "Alice feeds cats"

	tokens, err := c.Annotate().Tokenize(ctx, text)
	if err != nil || len(tokens) != 3 {
		t.Fatalf("tokenize: %v %v", tokens, err)
	}

	stems, err := c.Annotate().Stem(ctx, text)
	if err != nil || stems[2] != "cat" {
		t.Fatalf("stem: %v %v", stems, err)
	}

	lemmas, err := c.Annotate().Lemmatize(ctx, text)
	if err != nil || lemmas[0] != "alice" {
		t.Fatalf("lemmatize: %v %v", lemmas, err)
	}

	tagged, err := c.Annotate().POSTag(ctx, text)
	if err != nil {
		t.Fatalf("pos tag: %v", err)
	}
	if len(tagged) != 3 || tagged[0] != (TaggedToken{Text: "Alice", Tag: "NNP"}) {
		t.Errorf("unexpected tags %v", tagged)
	}

	entities, err := c.Annotate().NER(ctx, text)
	if err != nil {
		t.Fatalf("ner: %v", err)
	}
	if len(entities) != 1 || entities[0] != (Entity{Text: "Alice", Type: "PERSON"}) {
		t.Errorf("unexpected entities %v", entities)
	}
}

func TestClient_Unauthorized(t *testing.T) {
	c := newTestClient(t, "wrong")
	ctx := context.Background()

	_, err := c.Annotate().Tokenize(ctx, "x")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	// health and index bypass auth
	status, err := c.Health(ctx)
	if err != nil || status.Status != "ok" {
		t.Errorf("health: %+v %v", status, err)
	}
	info, err := c.Info(ctx)
	if err != nil || len(info.Endpoints) == 0 {
		t.Errorf("info: %+v %v", info, err)
	}
}
