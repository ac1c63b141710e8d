package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
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

type stubNLP struct{}

func (stubNLP) Tokenize(_ context.Context, text string) ([]string, error) {
	return strings.Fields(text), nil
}

func (stubNLP) Tag(_ context.Context, text string) ([]annotation.TaggedToken, error) {
	out := []annotation.TaggedToken{}
	for _, w := range strings.Fields(text) {
		out = append(out, annotation.TaggedToken{Text: w, Tag: "NN"})
	}
	return out, nil
}

func (stubNLP) Entities(context.Context, string) ([]annotation.Entity, error) {
	return []annotation.Entity{{Text: "John Smith", Type: "PERSON"}}, nil
}

func (stubNLP) Stem(word string) string { return strings.TrimSuffix(word, "ing") }
func (stubNLP) Lemma(word string, _ annotation.LemmaClass) string { return word }
func (stubNLP) HealthCheck(context.Context) error { return nil }

func newTestServer(t *testing.T) string {
	t.Helper()
	nlp := stubNLP{}
	server := chiTransport.NewServer(
		vectorizeuc.New(vectorizeuc.DefaultLimits(), vectorspace.TieBreakFirstSeen),
		annotateuc.New(nlp, nlp, nlp, nlp),
		healthuc.New(nlp, nil),
		zap.NewNop(),
	)
	srv := httptest.NewServer(chiTransport.NewRouter(server, []string{"k"}, zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestReadTexts(t *testing.T) {
	texts, err := readTexts(strings.NewReader("  first line \n\n\t\nsecond\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(texts) != 2 || texts[0] != "first line" || texts[1] != "second" {
		t.Errorf("texts = %q", texts)
	}
}

func TestLoadTexts_Fallback(t *testing.T) {
	var out bytes.Buffer
	texts := loadTexts(filepath.Join(t.TempDir(), "missing.txt"), &out)
	if len(texts) != len(sampleTexts) {
		t.Errorf("expected %d sample texts, got %d", len(sampleTexts), len(texts))
	}
	if !strings.Contains(out.String(), "sample texts") {
		t.Errorf("expected fallback notice, got %q", out.String())
	}

	empty := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(empty, []byte("\n\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if texts := loadTexts(empty, &out); len(texts) != len(sampleTexts) {
		t.Errorf("empty file should fall back to samples, got %d texts", len(texts))
	}
}

func TestFirstN(t *testing.T) {
	if got := firstN([]string{"a", "b"}, 3); len(got) != 2 {
		t.Errorf("firstN = %v", got)
	}
	if got := firstN([]string{"a", "b", "c", "d"}, 3); len(got) != 3 {
		t.Errorf("firstN = %v", got)
	}
}

func TestCheckCommand(t *testing.T) {
	url := newTestServer(t)

	out, err := run(t, "", "check", "--url", url, "--api-key", "k", "--file", filepath.Join(t.TempDir(), "none.txt"))
	if err != nil {
		t.Fatalf("check failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "All 9 checks passed") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestCheckCommand_Unauthorized(t *testing.T) {
	url := newTestServer(t)

	out, err := run(t, "", "check", "--url", url, "--api-key", "bad", "--file", filepath.Join(t.TempDir(), "none.txt"))
	if err == nil {
		t.Fatalf("expected failure, output:\n%s", out)
	}
	if !strings.Contains(err.Error(), "9 of 9 checks failed") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestVectorizeCommand(t *testing.T) {
	url := newTestServer(t)

	out, err := run(t, "cat dog\ndog dog bird\n",
		"vectorize", "bag-of-words", "--url", url, "--api-key", "k", "--file", "-", "--max-features", "3")
	if err != nil {
		t.Fatalf("vectorize failed: %v\n%s", err, out)
	}
	var res struct {
		Matrix [][]float64 `json:"matrix"`
		Shape  [2]int      `json:"shape"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if res.Shape != [2]int{2, 3} || res.Matrix[1][0] != 2 {
		t.Errorf("unexpected result %+v", res)
	}

	if _, err := run(t, "", "vectorize", "tf-idf", "--url", url); err == nil {
		t.Error("expected error when no texts are given")
	}
	if _, err := run(t, "", "vectorize", "pca", "a b", "--url", url, "--api-key", "k"); err == nil {
		t.Error("expected error for unknown method")
	}
}

func TestAnnotateCommand(t *testing.T) {
	url := newTestServer(t)

	out, err := run(t, "", "annotate", "stem", "running", "jumping", "--url", url, "--api-key", "k")
	if err != nil {
		t.Fatalf("annotate failed: %v\n%s", err, out)
	}
	var stems []string
	if err := json.Unmarshal([]byte(out), &stems); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(stems) != 2 || stems[0] != "runn" || stems[1] != "jump" {
		t.Errorf("stems = %q", stems)
	}

	if _, err := run(t, "", "annotate", "tokenize", "--url", url); err == nil {
		t.Error("expected error without text")
	}
}
