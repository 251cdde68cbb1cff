package tokenizer

import (
	"regexp"
	"strings"
	"unicode"
)

// Patterns shared by the 13a and zh tokenizers. Replacement order matters.
var (
	// ASCII punctuation and symbols, except apostrophe, comma, dash and period.
	asciiPunct = regexp.MustCompile("([{-~\\[-` -&(-+:-@/])")

	// Period and comma are split unless they sit between digits.
	periodCommaAfterNonDigit  = regexp.MustCompile(`([^0-9])([\.,])`)
	periodCommaBeforeNonDigit = regexp.MustCompile(`([\.,])([^0-9])`)

	dashAfterDigit = regexp.MustCompile(`([0-9])(-)`)

	// Whitespace as str.split understands it: White_Space plus the
	// information separators U+001C..U+001F.
	whitespaceRun = regexp.MustCompile(`[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]+`)
)

var entityReplacer = strings.NewReplacer(
	"&quot;", `"`,
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
)

func tokenize13a(line string) string {
	norm := strings.ReplaceAll(line, "<skipped>", "")
	norm = strings.ReplaceAll(norm, "-\n", "")
	norm = strings.ReplaceAll(norm, "\n", " ")
	norm = entityReplacer.Replace(norm)

	return splitPunctuation(" " + norm + " ")
}

// splitPunctuation applies the language-dependent part of mteval-v13a.
func splitPunctuation(s string) string {
	s = asciiPunct.ReplaceAllString(s, " ${1} ")
	s = periodCommaAfterNonDigit.ReplaceAllString(s, "${1} ${2} ")
	s = periodCommaBeforeNonDigit.ReplaceAllString(s, " ${1} ${2}")
	s = dashAfterDigit.ReplaceAllString(s, "${1} ${2} ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.Trim(s, " ")
}

// IsSpace reports whether r separates tokens. It matches unicode.IsSpace
// extended with the information separators U+001C..U+001F.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, IsSpace)
}
