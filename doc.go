// Package sacrebleu computes shareable, reproducible BLEU and chrF scores
// that match sacreBLEU 1.4.2.
//
// # Quick Start
//
//	bleu, err := sacrebleu.CorpusBLEU(hypotheses, [][]string{references})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(bleu.Format(1))
//
// Scorers can be built once and reused:
//
//	scorer, err := sacrebleu.NewBLEU(
//	    sacrebleu.WithTokenizer(tokenizer.Intl),
//	    sacrebleu.WithSmoothing(sacrebleu.SmoothFloor),
//	    sacrebleu.WithSmoothValue(0.1),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	bleu, err := scorer.Corpus(hypotheses, [][]string{refsA, refsB})
//	sig := scorer.Signature(2, sacrebleu.Metadata{TestSet: "wmt14", LangPair: "en-de"})
//	fmt.Printf("BLEU+%s = %.1f\n", sig, bleu.Score)
//
// # Signatures
//
// A score is only comparable with another score computed under the same
// signature: tokenizer, smoothing, case handling, number of references and
// metric version.
//
// # Thread Safety
//
// BLEUScorer and ChrFScorer are immutable and safe for concurrent use. Each
// scoring call owns its statistics, so independent calls can run in parallel
// with no synchronization; Evaluate and EvaluateSentences do exactly that.
package sacrebleu
