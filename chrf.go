package sacrebleu

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jamesainslie/go-sacrebleu/ngram"
)

// ChrF is a character n-gram F-score in [0, 1].
type ChrF struct {
	Score     float64
	Precision float64 // averaged over the effective orders
	Recall    float64 // averaged over the effective orders
	Beta      float64
	Order     int

	Warnings []Warning
}

// Name implements Result.
func (c ChrF) Name() string { return fmt.Sprintf("chrF%g", c.Beta) }

// Value implements Result.
func (c ChrF) Value() float64 { return c.Score }

// Format renders the score with width decimals, e.g. "chrF2 = 0.543".
func (c ChrF) Format(width int) string {
	return fmt.Sprintf("%s = %.*f", c.Name(), width, c.Score)
}

// chrfStats holds per-order hypothesis, reference and common n-gram counts.
type chrfStats [][3]int

// ChrFScorer computes chrF against a single reference per segment. It is
// immutable and safe for concurrent use.
type ChrFScorer struct {
	cfg config
}

// NewChrF creates a chrF scorer.
func NewChrF(opts ...Option) (*ChrFScorer, error) {
	cfg := newConfig(opts)
	if cfg.chrfOrder <= 0 {
		return nil, configError(ErrInvalidOrder, cfg.chrfOrder)
	}
	if cfg.chrfBeta <= 0 {
		return nil, configError(ErrInvalidBeta, cfg.chrfBeta)
	}
	return &ChrFScorer{cfg: cfg}, nil
}

// Order returns the maximum character n-gram order.
func (s *ChrFScorer) Order() int { return s.cfg.chrfOrder }

// Beta returns the recall weight.
func (s *ChrFScorer) Beta() float64 { return s.cfg.chrfBeta }

// Corpus scores hyps against refs, which must have the same length. Counts
// are summed over the corpus before precision and recall are taken.
func (s *ChrFScorer) Corpus(hyps, refs []string) (ChrF, error) {
	if err := checkAlignment(len(hyps), [][]string{refs}); err != nil {
		return ChrF{}, err
	}

	acc := s.newAccumulator()
	for i := range hyps {
		acc.add(hyps[i], refs[i])
	}
	return acc.finish(len(hyps)), nil
}

// Sentence scores a single hypothesis against a single reference.
func (s *ChrFScorer) Sentence(hyp, ref string) ChrF {
	acc := s.newAccumulator()
	acc.add(hyp, ref)
	return acc.finish(1)
}

// CorpusChrF scores hyps against refs with a scorer built from opts.
func CorpusChrF(hyps, refs []string, opts ...Option) (ChrF, error) {
	s, err := NewChrF(opts...)
	if err != nil {
		return ChrF{}, err
	}
	return s.Corpus(hyps, refs)
}

// SentenceChrF scores one pair with a scorer built from opts.
func SentenceChrF(hyp, ref string, opts ...Option) (ChrF, error) {
	s, err := NewChrF(opts...)
	if err != nil {
		return ChrF{}, err
	}
	return s.Sentence(hyp, ref), nil
}

type chrfAccumulator struct {
	cfg   *config
	lower cases.Caser
	stats chrfStats
	warn  warnings
}

func (s *ChrFScorer) newAccumulator() *chrfAccumulator {
	a := &chrfAccumulator{
		cfg:   &s.cfg,
		stats: make(chrfStats, s.cfg.chrfOrder),
		warn:  warnings{logger: s.cfg.logger, metric: "chrF"},
	}
	if s.cfg.lowercase {
		a.lower = cases.Lower(language.Und)
	}
	return a
}

func (a *chrfAccumulator) add(hyp, ref string) {
	if a.cfg.lowercase {
		hyp = a.lower.String(hyp)
		ref = a.lower.String(ref)
	}
	if !a.cfg.whitespace {
		hyp = ngram.StripSpace(hyp)
		ref = ngram.StripSpace(ref)
	}

	for i := range a.stats {
		n := i + 1
		hypNgrams := ngram.Chars(hyp, n)
		refNgrams := ngram.Chars(ref, n)
		a.stats[i][0] += hypNgrams.Total()
		a.stats[i][1] += refNgrams.Total()
		a.stats[i][2] += hypNgrams.Common(refNgrams)
	}
}

func (a *chrfAccumulator) finish(segments int) ChrF {
	precision, recall := a.stats.average()
	switch {
	case segments == 0 || a.stats[0][0] == 0:
		a.warn.add(WarnEmptyHypothesis, "hypothesis stream has no characters")
	case a.stats[0][2] == 0:
		a.warn.add(WarnNoOverlap, "no hypothesis character matches the reference")
	}

	return ChrF{
		Score:     fScore(precision, recall, a.cfg.chrfBeta),
		Precision: precision,
		Recall:    recall,
		Beta:      a.cfg.chrfBeta,
		Order:     a.cfg.chrfOrder,
		Warnings:  a.warn.list,
	}
}

// average returns precision and recall averaged over the orders where both
// the hypothesis and the reference have n-grams.
func (st chrfStats) average() (precision, recall float64) {
	effective := 0
	for _, s := range st {
		hyp, ref, common := s[0], s[1], s[2]
		if hyp > 0 && ref > 0 {
			precision += float64(common) / float64(hyp)
			recall += float64(common) / float64(ref)
			effective++
		}
	}
	if effective == 0 {
		return 0, 0
	}
	return precision / float64(effective), recall / float64(effective)
}

func fScore(precision, recall, beta float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	beta2 := beta * beta
	return (1 + beta2) * (precision * recall) / (beta2*precision + recall)
}
