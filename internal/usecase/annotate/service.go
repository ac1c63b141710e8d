package annotate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/textvec/internal/domain/annotation"
	"github.com/kailas-cloud/textvec/internal/logger"
	"github.com/kailas-cloud/textvec/internal/metrics"
)

// Operation names used in metrics and logs.
const (
	OpTokenize  = "tokenize"
	OpStem      = "stem"
	OpLemmatize = "lemmatize"
	OpPOSTag    = "pos_tag"
	OpNER       = "ner"
)

// Service annotates single texts.
type Service struct {
	tokenizer  Tokenizer
	tagger     Tagger
	stemmer    Stemmer
	lemmatizer Lemmatizer
}

// New creates a Service.
func New(tokenizer Tokenizer, tagger Tagger, stemmer Stemmer, lemmatizer Lemmatizer) *Service {
	return &Service{
		tokenizer:  tokenizer,
		tagger:     tagger,
		stemmer:    stemmer,
		lemmatizer: lemmatizer,
	}
}

// Tokenize splits text into word tokens.
func (s *Service) Tokenize(ctx context.Context, text string) (tokens []string, err error) {
	defer func() { observe(ctx, OpTokenize, err) }()

	tokens, err = s.tokenizer.Tokenize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	return tokens, nil
}

// Stem tokenizes text and stems every token.
func (s *Service) Stem(ctx context.Context, text string) (stems []string, err error) {
	defer func() { observe(ctx, OpStem, err) }()

	tokens, err := s.tokenizer.Tokenize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	stems = make([]string, len(tokens))
	for i, t := range tokens {
		stems[i] = s.stemmer.Stem(t)
	}
	return stems, nil
}

// Lemmatize tags text and lemmatizes every token using its part of speech.
func (s *Service) Lemmatize(ctx context.Context, text string) (lemmas []string, err error) {
	defer func() { observe(ctx, OpLemmatize, err) }()

	tagged, err := s.tagger.Tag(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("pos tag: %w", err)
	}
	lemmas = make([]string, len(tagged))
	for i, t := range tagged {
		lemmas[i] = s.lemmatizer.Lemma(t.Text, annotation.ClassFromTag(t.Tag))
	}
	return lemmas, nil
}

// POSTag returns tokens with Penn Treebank tags.
func (s *Service) POSTag(ctx context.Context, text string) (tagged []annotation.TaggedToken, err error) {
	defer func() { observe(ctx, OpPOSTag, err) }()

	tagged, err = s.tagger.Tag(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("pos tag: %w", err)
	}
	return tagged, nil
}

// NER extracts named entities.
func (s *Service) NER(ctx context.Context, text string) (entities []annotation.Entity, err error) {
	defer func() { observe(ctx, OpNER, err) }()

	entities, err = s.tagger.Entities(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("extract entities: %w", err)
	}
	return entities, nil
}

func observe(ctx context.Context, op string, err error) {
	metrics.ObserveAnnotate(op, err)
	if err != nil {
		logger.FromContext(ctx).Warn("Annotation failed", zap.String("operation", op), zap.Error(err))
	}
}
