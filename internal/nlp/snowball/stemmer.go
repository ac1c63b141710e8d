// Package snowball adapts the Snowball English (Porter2) stemmer.
package snowball

import "github.com/kljensen/snowball/english"

// Stemmer stems English words. Stop words are stemmed too, matching a plain Porter pass.
type Stemmer struct{}

// Stem returns the lowercased stem of word.
func (Stemmer) Stem(word string) string {
	return english.Stem(word, true)
}
