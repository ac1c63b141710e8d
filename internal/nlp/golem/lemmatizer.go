// Package golem adapts the golem English lemma dictionary.
package golem

import (
	"fmt"
	"slices"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"

	"github.com/kailas-cloud/textvec/internal/domain/annotation"
)

// Lemmatizer looks words up in the English dictionary. Safe for concurrent use.
type Lemmatizer struct {
	dict *golem.Lemmatizer
}

// New loads the English dictionary.
func New() (*Lemmatizer, error) {
	l, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load english lemma dictionary: %w", err)
	}
	return &Lemmatizer{dict: l}, nil
}

// Lemma returns the base form of word for class, or word unchanged when it is
// unknown or an adverb.
//
// The dictionary carries no part of speech, so class picks among the
// candidates: a noun keeps its own form when that form is itself a lemma
// ("running" the noun), verbs and adjectives take the first other candidate
// ("running" the verb becomes "run").
func (l *Lemmatizer) Lemma(word string, class annotation.LemmaClass) string {
	if class == annotation.Adverb || !l.dict.InDict(word) {
		return word
	}
	return pick(word, class, l.dict.Lemmas(word))
}

func pick(word string, class annotation.LemmaClass, candidates []string) string {
	if len(candidates) == 0 {
		return word
	}
	if class == annotation.Noun && slices.Contains(candidates, word) {
		return word
	}
	for _, c := range candidates {
		if c != word {
			return c
		}
	}
	return word
}
