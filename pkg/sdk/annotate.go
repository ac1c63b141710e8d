package textvec

import (
	"context"
	"net/http"
	"time"
)

// AnnotateService calls the single-text NLP endpoints.
type AnnotateService struct {
	c *Client
}

// Tokenize splits text into word tokens.
func (s *AnnotateService) Tokenize(ctx context.Context, text string) (tokens []string, err error) {
	start := time.Now()
	defer func() { s.c.obs.observe("tokenize", start, err) }()

	var resp struct {
		Tokens []string `json:"tokens"`
	}
	err = s.c.do(ctx, http.MethodPost, "/text_nltk/tokenize", textRequest{Text: text}, &resp)
	return resp.Tokens, err
}

// Stem returns the stem of every token.
func (s *AnnotateService) Stem(ctx context.Context, text string) (stems []string, err error) {
	start := time.Now()
	defer func() { s.c.obs.observe("stem", start, err) }()

	var resp struct {
		Stems []string `json:"stems"`
	}
	err = s.c.do(ctx, http.MethodPost, "/text_nltk/stem", textRequest{Text: text}, &resp)
	return resp.Stems, err
}

// Lemmatize returns the dictionary form of every token.
func (s *AnnotateService) Lemmatize(ctx context.Context, text string) (lemmas []string, err error) {
	start := time.Now()
	defer func() { s.c.obs.observe("lemmatize", start, err) }()

	var resp struct {
		Lemmas []string `json:"lemmas"`
	}
	err = s.c.do(ctx, http.MethodPost, "/text_nltk/lemmatize", textRequest{Text: text}, &resp)
	return resp.Lemmas, err
}

// POSTag returns tokens with their part-of-speech tags.
func (s *AnnotateService) POSTag(ctx context.Context, text string) (tagged []TaggedToken, err error) {
	start := time.Now()
	defer func() { s.c.obs.observe("pos_tag", start, err) }()

	var resp struct {
		POSTags [][2]string `json:"pos_tags"`
	}
	if err = s.c.do(ctx, http.MethodPost, "/text_nltk/pos_tag", textRequest{Text: text}, &resp); err != nil {
		return nil, err
	}
	tagged = make([]TaggedToken, len(resp.POSTags))
	for i, p := range resp.POSTags {
		tagged[i] = TaggedToken{Text: p[0], Tag: p[1]}
	}
	return tagged, nil
}

// NER returns the named entities in text.
func (s *AnnotateService) NER(ctx context.Context, text string) (entities []Entity, err error) {
	start := time.Now()
	defer func() { s.c.obs.observe("ner", start, err) }()

	var resp struct {
		Entities []Entity `json:"entities"`
	}
	err = s.c.do(ctx, http.MethodPost, "/text_nltk/ner", textRequest{Text: text}, &resp)
	return resp.Entities, err
}
