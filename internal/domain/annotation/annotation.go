// Package annotation holds the linguistic annotation types returned for a single text.
package annotation

import "strings"

// TaggedToken is a token with its Penn Treebank part-of-speech tag.
type TaggedToken struct {
	Text string
	Tag  string
}

// Entity is a named entity span.
type Entity struct {
	Text string
	Type string // PERSON, GPE, ORGANIZATION, ...
}

// LemmaClass is the coarse part of speech used to pick a lemma.
type LemmaClass string

const (
	Noun      LemmaClass = "n"
	Verb      LemmaClass = "v"
	Adjective LemmaClass = "a"
	Adverb    LemmaClass = "r"
)

// ClassFromTag maps a Penn Treebank tag to a LemmaClass. Unknown tags map to Noun.
func ClassFromTag(tag string) LemmaClass {
	switch {
	case strings.HasPrefix(tag, "J"):
		return Adjective
	case strings.HasPrefix(tag, "V"):
		return Verb
	case strings.HasPrefix(tag, "R"):
		return Adverb
	default:
		return Noun
	}
}
