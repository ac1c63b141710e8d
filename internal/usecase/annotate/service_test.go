package annotate

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/kailas-cloud/textvec/internal/domain/annotation"
)

// --- Mocks ---

type mockTokenizer struct {
	err error
}

func (m *mockTokenizer) Tokenize(_ context.Context, text string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return strings.Fields(text), nil
}

type mockTagger struct {
	tagged   []annotation.TaggedToken
	entities []annotation.Entity
	err      error
}

func (m *mockTagger) Tag(_ context.Context, _ string) ([]annotation.TaggedToken, error) {
	return m.tagged, m.err
}

func (m *mockTagger) Entities(_ context.Context, _ string) ([]annotation.Entity, error) {
	return m.entities, m.err
}

type suffixStemmer struct{}

func (suffixStemmer) Stem(w string) string { return strings.TrimSuffix(strings.ToLower(w), "ing") }

// recordingLemmatizer returns word+"/"+class so tests can see which class was used.
type recordingLemmatizer struct{}

func (recordingLemmatizer) Lemma(w string, c annotation.LemmaClass) string { return w + "/" + string(c) }

func newTestService(tok *mockTokenizer, tag *mockTagger) *Service {
	return New(tok, tag, suffixStemmer{}, recordingLemmatizer{})
}

// --- Tests ---

func TestTokenize(t *testing.T) {
	svc := newTestService(&mockTokenizer{}, &mockTagger{})
	got, err := svc.Tokenize(context.Background(), "hello big world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"hello", "big", "world"}) {
		t.Errorf("tokens = %q", got)
	}
}

func TestStem(t *testing.T) {
	svc := newTestService(&mockTokenizer{}, &mockTagger{})
	got, err := svc.Stem(context.Background(), "Running jumping cat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"runn", "jump", "cat"}) {
		t.Errorf("stems = %q", got)
	}
}

func TestStem_EmptyText(t *testing.T) {
	svc := newTestService(&mockTokenizer{}, &mockTagger{})
	got, err := svc.Stem(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("stems = %#v, want empty non-nil", got)
	}
}

func TestLemmatize_UsesTagClass(t *testing.T) {
	tagger := &mockTagger{tagged: []annotation.TaggedToken{
		{Text: "boys", Tag: "NNS"},
		{Text: "were", Tag: "VBD"},
		{Text: "quickly", Tag: "RB"},
		{Text: "beautiful", Tag: "JJ"},
		{Text: "in", Tag: "IN"},
	}}
	svc := newTestService(&mockTokenizer{}, tagger)

	got, err := svc.Lemmatize(context.Background(), "ignored")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"boys/n", "were/v", "quickly/r", "beautiful/a", "in/n"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("lemmas = %q, want %q", got, want)
	}
}

func TestPOSTagAndNER(t *testing.T) {
	tagger := &mockTagger{
		tagged:   []annotation.TaggedToken{{Text: "cats", Tag: "NNS"}},
		entities: []annotation.Entity{{Text: "New York", Type: "GPE"}},
	}
	svc := newTestService(&mockTokenizer{}, tagger)
	ctx := context.Background()

	tagged, err := svc.POSTag(ctx, "cats")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(tagged, tagger.tagged) {
		t.Errorf("tagged = %v", tagged)
	}

	ents, err := svc.NER(ctx, "New York")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ents, tagger.entities) {
		t.Errorf("entities = %v", ents)
	}
}

func TestErrorsPropagate(t *testing.T) {
	boom := errors.New("model missing")
	svc := newTestService(&mockTokenizer{err: boom}, &mockTagger{err: boom})
	ctx := context.Background()

	calls := map[string]func() error{
		OpTokenize:  func() error { _, err := svc.Tokenize(ctx, "x"); return err },
		OpStem:      func() error { _, err := svc.Stem(ctx, "x"); return err },
		OpLemmatize: func() error { _, err := svc.Lemmatize(ctx, "x"); return err },
		OpPOSTag:    func() error { _, err := svc.POSTag(ctx, "x"); return err },
		OpNER:       func() error { _, err := svc.NER(ctx, "x"); return err },
	}
	for op, call := range calls {
		if err := call(); !errors.Is(err, boom) {
			t.Errorf("%s: expected wrapped error, got %v", op, err)
		}
	}
}
