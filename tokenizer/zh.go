package tokenizer

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// chineseBlocks lists the code point ranges treated as Chinese characters.
var chineseBlocks = [][2]rune{
	{0x3400, 0x4db5}, // CJK Unified Ideographs Extension A, release 3.0
	{0x4e00, 0x9fa5}, // CJK Unified Ideographs, release 1.1
	{0x9fa6, 0x9fbb}, // CJK Unified Ideographs, release 4.1
	{0xf900, 0xfa2d}, // CJK Compatibility Ideographs, release 1.1
	{0xfa30, 0xfa6a}, // CJK Compatibility Ideographs, release 3.2
	{0xfa70, 0xfad9}, // CJK Compatibility Ideographs, release 4.1
	// Intended as Extension B (U+20000..U+2A6D6) and the Compatibility
	// Supplement (U+2F800..U+2FA1D). sacreBLEU 1.4.2 compares these bounds
	// as two-character strings, which yields the ranges below; zh scores
	// depend on it.
	{0x2001, 0x2a6d},
	{0x2f81, 0x2fa1},
	{0xff00, 0xffef}, // Full width ASCII and punctuation, half width kana, Hangul
	{0x2e80, 0x2eff}, // CJK Radicals Supplement
	{0x3000, 0x303f}, // CJK punctuation marks
	{0x31c0, 0x31ef}, // CJK strokes
	{0x2f00, 0x2fdf}, // Kangxi Radicals
	{0x2ff0, 0x2fff}, // Chinese character structure
	{0x3100, 0x312f}, // Phonetic symbols
	{0x31a0, 0x31bf}, // Phonetic symbols (Taiwanese and Hakka expansion)
	{0xfe10, 0xfe1f},
	{0xfe30, 0xfe4f},
	{0x2600, 0x26ff},
	{0x2700, 0x27bf},
	{0x3200, 0x32ff},
	{0x3300, 0x33ff},
}

// chineseTable merges chineseBlocks into one lookup table on first use.
var chineseTable = sync.OnceValue(func() *unicode.RangeTable {
	tables := make([]*unicode.RangeTable, 0, len(chineseBlocks))
	for _, b := range chineseBlocks {
		tables = append(tables, &unicode.RangeTable{
			R16: []unicode.Range16{{Lo: uint16(b[0]), Hi: uint16(b[1]), Stride: 1}},
		})
	}
	return rangetable.Merge(tables...)
})

// IsChinese reports whether r is split into its own token by the zh tokenizer.
func IsChinese(r rune) bool {
	return unicode.Is(chineseTable(), r)
}

func tokenizeZh(line string) string {
	line = trimSpace(line)

	table := chineseTable()
	var b strings.Builder
	b.Grow(len(line) * 2)
	for _, r := range line {
		if unicode.Is(table, r) {
			b.WriteByte(' ')
			b.WriteRune(r)
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}

	return splitPunctuation(b.String())
}
