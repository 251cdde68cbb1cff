// Package tokenizer implements the segment tokenizers used before BLEU n-gram
// extraction: the mteval-v13a rules, the mteval-v14 international rules, the
// Chinese character splitter and the identity tokenizer.
//
// All tokenizers are pure functions of their input and are safe for concurrent
// use.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknown indicates a tokenizer name that is not one of the known variants.
var ErrUnknown = errors.New("tokenizer: unknown tokenizer")

// Kind identifies a tokenizer variant.
type Kind int

const (
	// Mteval13a reproduces mteval-v13a.pl, the WMT standard. It is the default.
	Mteval13a Kind = iota
	// Intl reproduces the international tokenization of mteval-v14.pl.
	Intl
	// Zh splits Chinese characters and then applies the 13a punctuation rules.
	Zh
	// None leaves the input untouched.
	None
)

// Kinds lists every tokenizer variant in a stable order.
var Kinds = []Kind{Mteval13a, Intl, Zh, None}

// Parse returns the tokenizer registered under name.
func Parse(name string) (Kind, error) {
	switch name {
	case "13a":
		return Mteval13a, nil
	case "intl":
		return Intl, nil
	case "zh":
		return Zh, nil
	case "none":
		return None, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// Default picks the tokenizer used when none was chosen explicitly.
// langPair has the form "src-tgt"; a Chinese target selects Zh.
func Default(langPair string) Kind {
	if _, tgt, ok := strings.Cut(langPair, "-"); ok && tgt == "zh" {
		return Zh
	}
	return Mteval13a
}

// String returns the name used in signatures and on the command line.
func (k Kind) String() string {
	switch k {
	case Mteval13a:
		return "13a"
	case Intl:
		return "intl"
	case Zh:
		return "zh"
	case None:
		return "none"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is one of the declared variants.
func (k Kind) Valid() bool {
	return k >= Mteval13a && k <= None
}

// Tokenize applies the tokenizer to a single line.
func (k Kind) Tokenize(line string) string {
	switch k {
	case Mteval13a:
		return tokenize13a(line)
	case Intl:
		return tokenizeIntl(line)
	case Zh:
		return tokenizeZh(line)
	case None:
		return line
	}
	panic(fmt.Sprintf("tokenizer: invalid kind %d", int(k)))
}
