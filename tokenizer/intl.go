package tokenizer

import (
	"regexp"
	"sync"
)

type intlPatterns struct {
	nonDigitPunct *regexp.Regexp
	punctNonDigit *regexp.Regexp
	symbol        *regexp.Regexp
}

// intlRules compiles the Unicode punctuation and symbol classes on first use.
// Backslash is left out of the punctuation class, as in the sacreBLEU
// tokenizer that published intl scores were computed with.
var intlRules = sync.OnceValue(func() *intlPatterns {
	return &intlPatterns{
		nonDigitPunct: regexp.MustCompile(`(\P{Nd})([^\P{P}\\])`),
		punctNonDigit: regexp.MustCompile(`([^\P{P}\\])(\P{Nd})`),
		symbol:        regexp.MustCompile(`(\p{S})`),
	}
})

// tokenizeIntl follows mteval-v14.pl --international-tokenization.
//
// Punctuation is split from a preceding non-digit first and from a following
// non-digit second, so a number followed by a sentence-final period keeps the
// period attached ("2019." stays one token). Scores published with this
// tokenizer include that behaviour.
func tokenizeIntl(line string) string {
	p := intlRules()
	s := p.nonDigitPunct.ReplaceAllString(line, "${1} ${2} ")
	s = p.punctNonDigit.ReplaceAllString(s, " ${1} ${2}")
	s = p.symbol.ReplaceAllString(s, " ${1} ")
	return trimSpace(s)
}
