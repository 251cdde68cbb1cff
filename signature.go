package sacrebleu

import (
	"slices"
	"strconv"
	"strings"
)

// Version is the metric version recorded in signatures. Scores carrying it
// are comparable with sacreBLEU 1.4.2.
const Version = "1.4.2"

// Signature keys.
const (
	keyTest     = "test"
	keyLang     = "lang"
	keySmooth   = "smooth"
	keyCase     = "case"
	keyTok      = "tok"
	keyNumRefs  = "numrefs"
	keyVersion  = "version"
	keyOrigLang = "origlang"
	keySubset   = "subset"
	keyNumChars = "numchars"
	keySpace    = "space"
)

// abbreviations maps signature keys to their short form.
var abbreviations = map[string]string{
	keyTest:     "t",
	keyLang:     "l",
	keySmooth:   "s",
	keyCase:     "c",
	keyTok:      "tok",
	keyNumRefs:  "#",
	keyVersion:  "v",
	keyOrigLang: "o",
	keySubset:   "S",
	keyNumChars: "n",
	keySpace:    "s",
}

// Metadata carries the optional, test-set related signature fields.
type Metadata struct {
	TestSet  string
	LangPair string
	OrigLang string
	Subset   string
}

type sigEntry struct {
	key   string
	value string
}

// Signature identifies the configuration a score was computed with. Two
// scores are comparable only when their signatures are equal.
type Signature struct {
	entries []sigEntry
}

func newSignature(fields map[string]string, meta Metadata) Signature {
	optional := []sigEntry{
		{keyTest, meta.TestSet},
		{keyLang, meta.LangPair},
		{keyOrigLang, meta.OrigLang},
		{keySubset, meta.Subset},
	}

	entries := make([]sigEntry, 0, len(fields)+len(optional))
	for k, v := range fields {
		entries = append(entries, sigEntry{k, v})
	}
	for _, e := range optional {
		if e.value != "" {
			entries = append(entries, e)
		}
	}
	slices.SortFunc(entries, func(a, b sigEntry) int {
		return strings.Compare(a.key, b.key)
	})
	return Signature{entries: entries}
}

// String returns the verbose encoding, e.g.
// "case.mixed+numrefs.1+smooth.exp+tok.13a+version.1.4.2".
func (s Signature) String() string {
	return s.encode(func(key string) string { return key })
}

// Short returns the abbreviated encoding, e.g. "c.mixed+#.1+s.exp+tok.13a+v.1.4.2".
func (s Signature) Short() string {
	return s.encode(func(key string) string { return abbreviations[key] })
}

// Format returns the short encoding when short is set, the verbose one otherwise.
func (s Signature) Format(short bool) string {
	if short {
		return s.Short()
	}
	return s.String()
}

// Get returns the value recorded for a verbose key.
func (s Signature) Get(key string) (string, bool) {
	for _, e := range s.entries {
		if e.key == key {
			return e.value, true
		}
	}
	return "", false
}

func (s Signature) encode(name func(string) string) string {
	parts := make([]string, len(s.entries))
	for i, e := range s.entries {
		parts[i] = name(e.key) + "." + e.value
	}
	return strings.Join(parts, "+")
}

func caseName(lowercase bool) string {
	if lowercase {
		return "lc"
	}
	return "mixed"
}

// Signature describes the BLEU configuration for numRefs references.
func (s *BLEUScorer) Signature(numRefs int, meta Metadata) Signature {
	return s.signature(s.cfg.smoothing, numRefs, meta)
}

// SentenceSignature describes the configuration Sentence scores with, which
// always smooths with floor.
func (s *BLEUScorer) SentenceSignature(numRefs int, meta Metadata) Signature {
	return s.signature(SmoothFloor, numRefs, meta)
}

func (s *BLEUScorer) signature(smoothing Smoothing, numRefs int, meta Metadata) Signature {
	if meta.LangPair == "" {
		meta.LangPair = s.cfg.langPair
	}
	return newSignature(map[string]string{
		keyTok:     s.cfg.tokenizer.String(),
		keyVersion: Version,
		keySmooth:  smoothing.String(),
		keyNumRefs: strconv.Itoa(numRefs),
		keyCase:    caseName(s.cfg.lowercase),
	}, meta)
}

// Signature describes the chrF configuration for numRefs references.
func (s *ChrFScorer) Signature(numRefs int, meta Metadata) Signature {
	if meta.LangPair == "" {
		meta.LangPair = s.cfg.langPair
	}
	return newSignature(map[string]string{
		keyVersion:  Version,
		keySpace:    pythonBool(s.cfg.whitespace),
		keyNumChars: strconv.Itoa(s.cfg.chrfOrder),
		keyNumRefs:  strconv.Itoa(numRefs),
		keyCase:     caseName(s.cfg.lowercase),
	}, meta)
}

// SentenceSignature is the same as Signature; chrF scores sentences with
// the corpus configuration.
func (s *ChrFScorer) SentenceSignature(numRefs int, meta Metadata) Signature {
	return s.Signature(numRefs, meta)
}

// pythonBool spells booleans the way published chrF signatures do.
func pythonBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
