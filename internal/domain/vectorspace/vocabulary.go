package vectorspace

import (
	"sort"
	"strconv"
)

// TieBreak orders terms whose frequencies are equal during vocabulary selection.
type TieBreak int

const (
	// TieBreakFirstSeen keeps equal-frequency terms in order of first appearance.
	TieBreakFirstSeen TieBreak = iota
	// TieBreakLexical orders equal-frequency terms lexicographically.
	TieBreakLexical
)

// ParseTieBreak maps a config value to a TieBreak. Empty means first_seen.
func ParseTieBreak(s string) (TieBreak, bool) {
	switch s {
	case "", "first_seen":
		return TieBreakFirstSeen, true
	case "lexical":
		return TieBreakLexical, true
	default:
		return TieBreakFirstSeen, false
	}
}

func (t TieBreak) String() string {
	switch t {
	case TieBreakFirstSeen:
		return "first_seen"
	case TieBreakLexical:
		return "lexical"
	default:
		return "tiebreak(" + strconv.Itoa(int(t)) + ")"
	}
}

// Vocabulary maps selected terms to stable column indexes.
type Vocabulary struct {
	terms []string
	index map[string]int
}

func newVocabulary(terms []string) *Vocabulary {
	idx := make(map[string]int, len(terms))
	for i, t := range terms {
		idx[t] = i
	}
	return &Vocabulary{terms: terms, index: idx}
}

// Len returns the number of terms.
func (v *Vocabulary) Len() int { return len(v.terms) }

// Term returns the term at column i.
func (v *Vocabulary) Term(i int) string { return v.terms[i] }

// Index returns the column of term.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Terms returns a copy of the terms in column order.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Map returns the column -> term mapping.
func (v *Vocabulary) Map() map[int]string {
	out := make(map[int]string, len(v.terms))
	for i, t := range v.terms {
		out[i] = t
	}
	return out
}

// termCounter accumulates frequencies and remembers first-appearance order.
type termCounter struct {
	counts map[string]int
	order  []string
}

func newTermCounter() *termCounter {
	return &termCounter{counts: make(map[string]int)}
}

func (c *termCounter) add(term string) {
	if _, ok := c.counts[term]; !ok {
		c.order = append(c.order, term)
	}
	c.counts[term]++
}

// top selects up to n terms by descending count.
func (c *termCounter) top(n int, tb TieBreak) *Vocabulary {
	ranked := make([]string, len(c.order))
	copy(ranked, c.order)

	sort.SliceStable(ranked, func(i, j int) bool {
		ci, cj := c.counts[ranked[i]], c.counts[ranked[j]]
		if ci != cj {
			return ci > cj
		}
		if tb == TieBreakLexical {
			return ranked[i] < ranked[j]
		}
		return false
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return newVocabulary(ranked)
}
