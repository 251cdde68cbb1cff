package sacrebleu

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Result is a metric score that can be printed.
type Result interface {
	Name() string
	Value() float64
	Format(width int) string
}

// Metric is a configured scorer usable with Evaluate.
type Metric interface {
	Name() string
	// Score computes the corpus-level score.
	Score(sys []string, refs [][]string) (Result, error)
	// SentenceScore scores one segment against its references.
	SentenceScore(hyp string, refs []string) (Result, error)
	// Signature describes the configuration for numRefs references.
	Signature(numRefs int, meta Metadata) Signature
	// SentenceSignature describes the configuration SentenceScore uses.
	SentenceSignature(numRefs int, meta Metadata) Signature
}

var (
	_ Metric = (*BLEUScorer)(nil)
	_ Metric = (*ChrFScorer)(nil)
)

// Name implements Metric.
func (s *BLEUScorer) Name() string { return "BLEU" }

// Score implements Metric.
func (s *BLEUScorer) Score(sys []string, refs [][]string) (Result, error) {
	b, err := s.Corpus(sys, refs)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// SentenceScore implements Metric.
func (s *BLEUScorer) SentenceScore(hyp string, refs []string) (Result, error) {
	b, err := s.Sentence(hyp, refs)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Name implements Metric.
func (s *ChrFScorer) Name() string { return fmt.Sprintf("chrF%g", s.cfg.chrfBeta) }

// Score implements Metric. chrF uses the first reference stream only; every
// stream must still be aligned with sys.
func (s *ChrFScorer) Score(sys []string, refs [][]string) (Result, error) {
	if len(refs) == 0 {
		return nil, ErrNoReferences
	}
	if err := checkAlignment(len(sys), refs); err != nil {
		return nil, err
	}
	if len(refs) > 1 {
		s.cfg.logger.Warn("chrF uses only the first reference stream", "references", len(refs))
	}
	c, err := s.Corpus(sys, refs[0])
	if err != nil {
		return nil, err
	}
	return c, nil
}

// SentenceScore implements Metric using the first reference.
func (s *ChrFScorer) SentenceScore(hyp string, refs []string) (Result, error) {
	if len(refs) == 0 {
		return nil, ErrNoReferences
	}
	return s.Sentence(hyp, refs[0]), nil
}

// Evaluate scores the corpus with every metric concurrently. Results are
// returned in the order of metrics. Inputs are only read.
func Evaluate(ctx context.Context, sys []string, refs [][]string, metrics ...Metric) ([]Result, error) {
	results := make([]Result, len(metrics))
	g, ctx := errgroup.WithContext(ctx)
	for i, m := range metrics {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := m.Score(sys, refs)
			if err != nil {
				return fmt.Errorf("metric %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// EvaluateSentences scores every segment independently on up to workers
// goroutines (runtime.NumCPU() when workers <= 0). Results keep input order.
func EvaluateSentences(ctx context.Context, sys []string, refs [][]string, m Metric, workers int) ([]Result, error) {
	if len(refs) == 0 {
		return nil, ErrNoReferences
	}
	if err := checkAlignment(len(sys), refs); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Result, len(sys))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, hyp := range sys {
		segRefs := make([]string, len(refs))
		for j := range refs {
			segRefs[j] = refs[j][i]
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := m.SentenceScore(hyp, segRefs)
			if err != nil {
				return fmt.Errorf("segment %d: %w", i+1, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
