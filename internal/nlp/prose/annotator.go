// Package prose adapts github.com/jdkato/prose/v2 to the annotate contracts:
// word tokenization, averaged-perceptron POS tagging and entity extraction.
package prose

import (
	"context"
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/kailas-cloud/textvec/internal/domain/annotation"
)

// healthProbe is tagged by HealthCheck to prove the model loads.
const healthProbe = "John lives in London."

// Annotator runs prose pipelines. It holds no state and is safe for concurrent use.
type Annotator struct{}

// New creates an Annotator.
func New() *Annotator { return &Annotator{} }

// Tokenize splits text into Treebank-style word tokens.
func (a *Annotator) Tokenize(ctx context.Context, text string) ([]string, error) {
	doc, err := a.document(ctx, text,
		prose.WithTagging(false), prose.WithExtraction(false))
	if err != nil || doc == nil {
		return []string{}, err
	}

	toks := doc.Tokens()
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out, nil
}

// Tag returns each token with its Penn Treebank tag.
func (a *Annotator) Tag(ctx context.Context, text string) ([]annotation.TaggedToken, error) {
	doc, err := a.document(ctx, text, prose.WithExtraction(false))
	if err != nil || doc == nil {
		return []annotation.TaggedToken{}, err
	}

	toks := doc.Tokens()
	out := make([]annotation.TaggedToken, len(toks))
	for i, t := range toks {
		out[i] = annotation.TaggedToken{Text: t.Text, Tag: t.Tag}
	}
	return out, nil
}

// Entities extracts named entities.
func (a *Annotator) Entities(ctx context.Context, text string) ([]annotation.Entity, error) {
	doc, err := a.document(ctx, text)
	if err != nil || doc == nil {
		return []annotation.Entity{}, err
	}

	ents := doc.Entities()
	out := make([]annotation.Entity, len(ents))
	for i, e := range ents {
		out[i] = annotation.Entity{Text: e.Text, Type: e.Label}
	}
	return out, nil
}

// HealthCheck runs the full pipeline over a fixed sentence.
func (a *Annotator) HealthCheck(ctx context.Context) error {
	if _, err := a.document(ctx, healthProbe); err != nil {
		return fmt.Errorf("prose health check: %w", err)
	}
	return nil
}

// document returns nil for blank text.
func (a *Annotator) document(ctx context.Context, text string, opts ...prose.DocOpt) (*prose.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	opts = append(opts, prose.WithSegmentation(false))
	doc, err := prose.NewDocument(text, opts...)
	if err != nil {
		return nil, fmt.Errorf("prose document: %w", err)
	}
	return doc, nil
}
