package annotate

import (
	"context"

	"github.com/kailas-cloud/textvec/internal/domain/annotation"
)

// Tokenizer splits text into word tokens.
type Tokenizer interface {
	Tokenize(ctx context.Context, text string) ([]string, error)
}

// Tagger assigns part-of-speech tags and extracts entities.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]annotation.TaggedToken, error)
	Entities(ctx context.Context, text string) ([]annotation.Entity, error)
}

// Stemmer reduces a word to its stem.
type Stemmer interface {
	Stem(word string) string
}

// Lemmatizer reduces a word to its dictionary form for the given class.
type Lemmatizer interface {
	Lemma(word string, class annotation.LemmaClass) string
}
