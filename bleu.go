package sacrebleu

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jamesainslie/go-sacrebleu/internal/corpus"
	"github.com/jamesainslie/go-sacrebleu/ngram"
	"github.com/jamesainslie/go-sacrebleu/tokenizer"
)

// logFloor stands in for log(0) in the geometric mean.
const logFloor = -9999999999

// BLEU is a BLEU score together with its sufficient statistics.
type BLEU struct {
	// Score is the 4-gram BLEU score, on a 0-100 scale.
	Score float64
	// Scores holds the cumulative 1..4-gram scores.
	Scores     [NgramOrder]float64
	Correct    [NgramOrder]int
	Total      [NgramOrder]int
	Precisions [NgramOrder]float64

	BrevityPenalty float64
	SysLen         int
	RefLen         int

	// EffectiveOrder is the order the geometric mean was taken over.
	EffectiveOrder int

	Warnings []Warning
}

// Name implements Result.
func (b BLEU) Name() string { return "BLEU" }

// Value implements Result.
func (b BLEU) Value() float64 { return b.Score }

// Format renders the score the way sacreBLEU prints it, with width decimals.
func (b BLEU) Format(width int) string {
	precisions := make([]string, NgramOrder)
	for i, p := range b.Precisions {
		precisions[i] = fmt.Sprintf("%.1f", p)
	}
	ratio := 0.0
	if b.RefLen > 0 {
		ratio = float64(b.SysLen) / float64(b.RefLen)
	}
	return fmt.Sprintf("BLEU = %.*f %s (BP = %.3f ratio = %.3f hyp_len = %d ref_len = %d)",
		width, b.Score, strings.Join(precisions, "/"), b.BrevityPenalty, ratio, b.SysLen, b.RefLen)
}

// BLEUScorer computes BLEU. It is immutable and safe for concurrent use;
// every call accumulates into its own statistics.
type BLEUScorer struct {
	cfg config
}

// NewBLEU creates a BLEU scorer.
func NewBLEU(opts ...Option) (*BLEUScorer, error) {
	cfg := newConfig(opts)
	if !cfg.tokenizer.Valid() {
		return nil, configError(tokenizer.ErrUnknown, cfg.tokenizer)
	}
	if !cfg.smoothing.Valid() {
		return nil, configError(ErrUnknownSmoothing, cfg.smoothing)
	}
	return &BLEUScorer{cfg: cfg}, nil
}

// Tokenizer returns the tokenizer applied to every segment.
func (s *BLEUScorer) Tokenizer() tokenizer.Kind { return s.cfg.tokenizer }

// Smoothing returns the configured smoothing method.
func (s *BLEUScorer) Smoothing() Smoothing { return s.cfg.smoothing }

// Corpus scores a system stream against one or more reference streams.
// Every reference stream must have as many segments as sys.
func (s *BLEUScorer) Corpus(sys []string, refs [][]string) (BLEU, error) {
	if len(refs) == 0 {
		return BLEU{}, ErrNoReferences
	}
	if err := checkAlignment(len(sys), refs); err != nil {
		return BLEU{}, err
	}

	acc := newBLEUAccumulator(&s.cfg)
	segRefs := make([]string, len(refs))
	for i, hyp := range sys {
		for j := range refs {
			segRefs[j] = refs[j][i]
		}
		acc.add(hyp, segRefs)
	}
	return acc.finish(s.cfg.smoothing, s.cfg.smoothValue, s.cfg.useEffectiveOrder), nil
}

// CorpusStream scores line-oriented streams read in lock-step. A stream that
// ends early is an *AlignmentError; the streams are read to the end to report
// their lengths.
func (s *BLEUScorer) CorpusStream(sys io.Reader, refs ...io.Reader) (BLEU, error) {
	if len(refs) == 0 {
		return BLEU{}, ErrNoReferences
	}

	sysScanner := corpus.NewScanner(sys)
	refScanners := make([]scannedStream, len(refs))
	for i, r := range refs {
		refScanners[i] = scannedStream{sc: corpus.NewScanner(r)}
	}

	acc := newBLEUAccumulator(&s.cfg)
	segRefs := make([]string, len(refs))
	segments := 0
	for {
		more := sysScanner.Scan()
		aligned := true
		for j := range refScanners {
			if refScanners[j].scan() != more {
				aligned = false
			}
		}
		if err := sysScanner.Err(); err != nil {
			return BLEU{}, fmt.Errorf("reading system stream: %w", err)
		}
		for j := range refScanners {
			if err := refScanners[j].sc.Err(); err != nil {
				return BLEU{}, fmt.Errorf("reading reference stream %d: %w", j, err)
			}
		}
		if !aligned {
			return BLEU{}, drainMismatch(sysScanner, segments, more, refScanners)
		}
		if !more {
			break
		}
		segments++
		for j := range refScanners {
			segRefs[j] = refScanners[j].sc.Text()
		}
		acc.add(sysScanner.Text(), segRefs)
	}
	return acc.finish(s.cfg.smoothing, s.cfg.smoothValue, s.cfg.useEffectiveOrder), nil
}

// Sentence scores a single hypothesis against its references. Floor
// smoothing and the effective order are always used; BLEU is a corpus-level
// metric and sentence scores are not comparable to it.
func (s *BLEUScorer) Sentence(hyp string, refs []string) (BLEU, error) {
	if len(refs) == 0 {
		return BLEU{}, ErrNoReferences
	}
	acc := newBLEUAccumulator(&s.cfg)
	acc.add(hyp, refs)
	return acc.finish(SmoothFloor, s.cfg.smoothValue, true), nil
}

// CorpusBLEU scores sys against refs with a scorer built from opts.
func CorpusBLEU(sys []string, refs [][]string, opts ...Option) (BLEU, error) {
	s, err := NewBLEU(opts...)
	if err != nil {
		return BLEU{}, err
	}
	return s.Corpus(sys, refs)
}

// SentenceBLEU scores one hypothesis with a scorer built from opts.
func SentenceBLEU(hyp string, refs []string, opts ...Option) (BLEU, error) {
	s, err := NewBLEU(opts...)
	if err != nil {
		return BLEU{}, err
	}
	return s.Sentence(hyp, refs)
}

// RawCorpusBLEU scores untokenized text with floor smoothing and the
// effective order, which suits scoring on a development set.
func RawCorpusBLEU(sys []string, refs [][]string, smoothValue float64) (BLEU, error) {
	return CorpusBLEU(sys, refs,
		WithTokenizer(tokenizer.None),
		WithSmoothing(SmoothFloor),
		WithSmoothValue(smoothValue),
		WithForce(true),
		WithEffectiveOrder(true),
	)
}

// ComputeBLEU derives a BLEU score from sufficient statistics.
func ComputeBLEU(correct, total [NgramOrder]int, sysLen, refLen int, smoothing Smoothing, smoothValue float64, useEffectiveOrder bool) BLEU {
	var c, t [NgramOrder]float64
	for n := range NgramOrder {
		c[n] = float64(correct[n])
		t[n] = float64(total[n])
	}

	var precisions [NgramOrder]float64
	smoothMteval := 1.0
	effectiveOrder := NgramOrder
	for n := range NgramOrder {
		if smoothing == SmoothAddK && n > 1 {
			c[n] += smoothValue
			t[n] += smoothValue
		}
		if t[n] == 0 {
			break
		}
		if useEffectiveOrder {
			effectiveOrder = n + 1
		}

		if c[n] != 0 {
			precisions[n] = 100 * c[n] / t[n]
			continue
		}
		switch smoothing {
		case SmoothExp:
			smoothMteval *= 2
			precisions[n] = 100 / (smoothMteval * t[n])
		case SmoothFloor:
			precisions[n] = 100 * smoothValue / t[n]
		case SmoothAddK, SmoothNone:
		}
	}

	bp := brevityPenalty(sysLen, refLen)

	var scores [NgramOrder]float64
	for k := 1; k <= NgramOrder; k++ {
		order := min(k, effectiveOrder)
		sum := 0.0
		for _, p := range precisions[:order] {
			sum += flooredLog(p)
		}
		scores[k-1] = bp * math.Exp(sum/float64(order))
	}

	return BLEU{
		Score:          scores[NgramOrder-1],
		Scores:         scores,
		Correct:        correct,
		Total:          total,
		Precisions:     precisions,
		BrevityPenalty: bp,
		SysLen:         sysLen,
		RefLen:         refLen,
		EffectiveOrder: effectiveOrder,
	}
}

func brevityPenalty(sysLen, refLen int) float64 {
	if sysLen >= refLen {
		return 1.0
	}
	if sysLen == 0 {
		return 0.0
	}
	return math.Exp(1 - float64(refLen)/float64(sysLen))
}

func flooredLog(x float64) float64 {
	if x == 0 {
		return logFloor
	}
	return math.Log(x)
}

type bleuAccumulator struct {
	cfg   *config
	lower cases.Caser

	correct [NgramOrder]int
	total   [NgramOrder]int
	sysLen  int
	refLen  int

	segments       int
	tokenizedLines int
	tokRefs        []string
	warn           warnings
}

func newBLEUAccumulator(cfg *config) *bleuAccumulator {
	a := &bleuAccumulator{
		cfg:  cfg,
		warn: warnings{logger: cfg.logger, metric: "BLEU"},
	}
	if cfg.lowercase {
		a.lower = cases.Lower(language.Und)
	}
	return a
}

func (a *bleuAccumulator) prepare(line string) string {
	if a.cfg.lowercase {
		line = a.lower.String(line)
	}
	return strings.TrimRightFunc(line, tokenizer.IsSpace)
}

func (a *bleuAccumulator) add(hyp string, refs []string) {
	a.segments++

	hyp = a.prepare(hyp)
	if !a.cfg.force && a.cfg.tokenizer != tokenizer.None && strings.HasSuffix(hyp, " .") {
		a.tokenizedLines++
		if a.tokenizedLines == tokenizedLineLimit {
			a.warn.add(WarnTokenizedInput, fmt.Sprintf(
				"%d system lines end in a tokenized period; the input looks tokenized, use force to silence this",
				tokenizedLineLimit))
		}
	}

	a.tokRefs = a.tokRefs[:0]
	for _, ref := range refs {
		a.tokRefs = append(a.tokRefs, a.cfg.tokenizer.Tokenize(a.prepare(ref)))
	}

	hypTokens := ngram.Fields(a.cfg.tokenizer.Tokenize(hyp))
	ref := ngram.References(len(hypTokens), a.tokRefs, NgramOrder)

	a.sysLen += len(hypTokens)
	a.refLen += ref.ClosestLen

	for key, count := range ngram.FromTokens(hypTokens, 1, NgramOrder) {
		n := ngram.Order(key)
		a.correct[n-1] += min(count, ref.Ngrams[key])
		a.total[n-1] += count
	}
}

func (a *bleuAccumulator) finish(smoothing Smoothing, smoothValue float64, useEffectiveOrder bool) BLEU {
	switch {
	case a.segments == 0:
		a.warn.add(WarnEmptyHypothesis, "system stream has no segments")
	case a.sysLen == 0:
		a.warn.add(WarnEmptyHypothesis, "system stream has no tokens")
	case a.correct[0] == 0:
		a.warn.add(WarnNoOverlap, "no hypothesis unigram matches a reference")
	}

	b := ComputeBLEU(a.correct, a.total, a.sysLen, a.refLen, smoothing, smoothValue, useEffectiveOrder)
	b.Warnings = a.warn.list
	return b
}

type scannedStream struct {
	sc    *bufio.Scanner
	count int
}

func (s *scannedStream) scan() bool {
	if s.sc.Scan() {
		s.count++
		return true
	}
	return false
}

// drainMismatch reads every stream to its end and reports the first
// reference stream whose length differs from the system stream.
func drainMismatch(sys *bufio.Scanner, segments int, sysMore bool, refs []scannedStream) error {
	sysCount := segments
	if sysMore {
		sysCount++
		for sys.Scan() {
			sysCount++
		}
	}
	for j := range refs {
		for refs[j].scan() {
		}
	}
	for j, r := range refs {
		if r.count != sysCount {
			return &AlignmentError{Stream: j, Expected: sysCount, Actual: r.count}
		}
	}
	return ErrAlignment
}
