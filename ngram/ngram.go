// Package ngram extracts word and character n-gram counts and aggregates
// statistics over multiple references.
package ngram

import (
	"strings"

	"github.com/jamesainslie/go-sacrebleu/tokenizer"
)

// Counts maps an n-gram to the number of times it occurs. Word n-grams are
// keyed by their tokens joined with a single space.
type Counts map[string]int

// Fields splits s around runs of whitespace.
func Fields(s string) []string {
	return strings.FieldsFunc(s, tokenizer.IsSpace)
}

// StripSpace removes every whitespace rune from s.
func StripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if tokenizer.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Words counts the word n-grams of line for every order in [minOrder, maxOrder].
func Words(line string, minOrder, maxOrder int) Counts {
	return FromTokens(Fields(line), minOrder, maxOrder)
}

// FromTokens counts the word n-grams of an already split segment.
func FromTokens(tokens []string, minOrder, maxOrder int) Counts {
	counts := make(Counts)
	for n := minOrder; n <= maxOrder; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			counts[strings.Join(tokens[i:i+n], " ")]++
		}
	}
	return counts
}

// Chars counts the character n-grams of order n in s. Characters are runes.
func Chars(s string, n int) Counts {
	counts := make(Counts)
	if n <= 0 {
		return counts
	}
	runes := []rune(s)
	for i := 0; i+n <= len(runes); i++ {
		counts[string(runes[i:i+n])]++
	}
	return counts
}

// Order returns the number of tokens in a word n-gram key.
func Order(key string) int {
	return strings.Count(key, " ") + 1
}

// Total returns the sum of all counts.
func (c Counts) Total() int {
	total := 0
	for _, v := range c {
		total += v
	}
	return total
}

// Common returns the size of the multiset intersection of c and other.
func (c Counts) Common(other Counts) int {
	common := 0
	for k, v := range c {
		common += min(v, other[k])
	}
	return common
}

// MergeMax raises every count in c to at least its count in other.
func (c Counts) MergeMax(other Counts) {
	for k, v := range other {
		if v > c[k] {
			c[k] = v
		}
	}
}

