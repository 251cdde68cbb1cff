package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	sacrebleu "github.com/jamesainslie/go-sacrebleu"
	"github.com/jamesainslie/go-sacrebleu/internal/config"
	"github.com/jamesainslie/go-sacrebleu/internal/corpus"
	"github.com/jamesainslie/go-sacrebleu/internal/report"
)

const usage = `Usage: sacrebleu [OPTIONS] REF [REF...] < SYSTEM

Scores a detokenized system output against one or more reference files.
Files may be gzip-compressed. With -nr N > 1 a single tab-separated
reference file holding N references per line is expected.

Options:
`

// Set by the build with -ldflags.
var (
	build  = "dev"
	commit = "none"
	date   = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type flags struct {
	input       string
	metrics     string
	tok         string
	smooth      string
	smoothValue float64
	lowercase   bool
	langPair    string
	testSet     string
	origLang    string
	subset      string
	numRefs     int
	chrfOrder   int
	chrfBeta    float64
	chrfSpace   bool
	force       bool

	short     bool
	scoreOnly bool
	width     int
	sentence  bool
	format    string
	profile   string
	workers   int
	quiet     bool
	version   bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, *flag.FlagSet, error) {
	f := &flags{}
	fs := flag.NewFlagSet("sacrebleu", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "sacrebleu %s (%s, %s), metric version %s\n\n", build, commit, date, sacrebleu.Version)
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	fs.StringVar(&f.input, "i", "-", "System output file, - for stdin")
	fs.StringVar(&f.metrics, "m", config.MetricBLEU, "Comma-separated metrics: bleu, chrf")
	fs.StringVar(&f.tok, "tok", "", "Tokenizer: 13a, intl, zh, none (default 13a, zh for a Chinese target)")
	fs.StringVar(&f.smooth, "s", sacrebleu.SmoothExp.String(), "Smoothing: exp, floor, add-k, none")
	fs.Float64Var(&f.smoothValue, "sv", sacrebleu.DefaultSmoothValue, "Value for floor and add-k smoothing")
	fs.BoolVar(&f.lowercase, "lc", false, "Lowercase before scoring")
	fs.StringVar(&f.langPair, "l", "", "Source-target language pair, e.g. en-de")
	fs.StringVar(&f.testSet, "t", "", "Test set name recorded in the signature")
	fs.StringVar(&f.origLang, "origlang", "", "Original language recorded in the signature")
	fs.StringVar(&f.subset, "subset", "", "Subset recorded in the signature")
	fs.IntVar(&f.numRefs, "nr", 1, "Number of tab-separated references per line")
	fs.IntVar(&f.chrfOrder, "chrf-order", sacrebleu.DefaultChrFOrder, "chrF character n-gram order")
	fs.Float64Var(&f.chrfBeta, "chrf-beta", sacrebleu.DefaultChrFBeta, "chrF recall weight")
	fs.BoolVar(&f.chrfSpace, "chrf-whitespace", false, "Keep whitespace in chrF n-grams")
	fs.BoolVar(&f.force, "force", false, "Score input that looks tokenized without warning")
	fs.BoolVar(&f.short, "short", false, "Abbreviated signatures")
	fs.BoolVar(&f.scoreOnly, "b", false, "Print only the score")
	fs.IntVar(&f.width, "w", 1, "Decimals in printed scores")
	fs.BoolVar(&f.sentence, "sl", false, "Score every segment separately")
	fs.StringVar(&f.format, "format", "text", "Output format: text, json")
	fs.StringVar(&f.profile, "config", "", "YAML scoring profile; flags override it")
	fs.IntVar(&f.workers, "j", 0, "Sentence-level workers (default: number of CPUs)")
	fs.BoolVar(&f.quiet, "q", false, "Suppress warnings")
	fs.BoolVar(&f.version, "V", false, "Print the metric version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	f, fs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if f.version {
		fmt.Fprintln(stdout, sacrebleu.Version)
		return 0
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "error: at least one reference file is required")
		fs.Usage()
		return 2
	}

	level := slog.LevelWarn
	if f.quiet {
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := score(ctx, f, fs, logger, stdout); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func score(ctx context.Context, f *flags, fs *flag.FlagSet, logger *slog.Logger, stdout io.Writer) error {
	profile, err := loadProfile(f, fs)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(f.format)
	if err != nil {
		return err
	}

	refs, err := corpus.LoadReferences(fs.Args(), profile.NumRefs)
	if err != nil {
		return fmt.Errorf("loading references: %w", err)
	}
	sys, err := corpus.Load(f.input)
	if err != nil {
		return fmt.Errorf("loading system output: %w", err)
	}
	logger.Debug("loaded corpus", "segments", len(sys), "references", len(refs))

	metrics, err := profile.Scorers(sacrebleu.WithLogger(logger))
	if err != nil {
		return err
	}

	opts := report.Options{Width: f.width, Short: f.short, ScoreOnly: f.scoreOnly}
	meta := profile.Metadata()

	if f.sentence {
		return scoreSentences(ctx, sys, refs, metrics, meta, f.workers, format, opts, stdout)
	}

	results, err := sacrebleu.Evaluate(ctx, sys, refs, metrics...)
	if err != nil {
		return err
	}
	entries := make([]report.Entry, len(results))
	for i, r := range results {
		entries[i] = report.Entry{Result: r, Signature: metrics[i].Signature(len(refs), meta)}
	}
	return report.Write(stdout, format, entries, opts)
}

func scoreSentences(ctx context.Context, sys []string, refs [][]string, metrics []sacrebleu.Metric,
	meta sacrebleu.Metadata, workers int, format report.Format, opts report.Options, stdout io.Writer,
) error {
	perMetric := make([][]sacrebleu.Result, len(metrics))
	for i, m := range metrics {
		results, err := sacrebleu.EvaluateSentences(ctx, sys, refs, m, workers)
		if err != nil {
			return err
		}
		perMetric[i] = results
	}

	entries := make([]report.Entry, 0, len(sys)*len(metrics))
	for seg := range sys {
		for i, m := range metrics {
			entries = append(entries, report.Entry{
				Result:    perMetric[i][seg],
				Signature: m.SentenceSignature(len(refs), meta),
			})
		}
	}
	return report.Write(stdout, format, entries, opts)
}

// loadProfile reads the -config profile, if any, and applies every flag the
// user set explicitly on top of it.
func loadProfile(f *flags, fs *flag.FlagSet) (config.Profile, error) {
	p := config.Defaults()
	if f.profile != "" {
		var err error
		if p, err = config.Load(f.profile); err != nil {
			return config.Profile{}, err
		}
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "m":
			p.Metrics = splitList(f.metrics)
		case "tok":
			p.Tokenizer = f.tok
		case "s":
			p.Smoothing = f.smooth
		case "sv":
			p.SmoothValue = &f.smoothValue
		case "lc":
			p.Lowercase = &f.lowercase
		case "force":
			p.Force = &f.force
		case "l":
			p.LangPair = f.langPair
		case "t":
			p.TestSet = f.testSet
		case "origlang":
			p.OrigLang = f.origLang
		case "subset":
			p.Subset = f.subset
		case "nr":
			p.NumRefs = f.numRefs
		case "chrf-order":
			p.ChrF.Order = f.chrfOrder
		case "chrf-beta":
			p.ChrF.Beta = &f.chrfBeta
		case "chrf-whitespace":
			p.ChrF.Whitespace = &f.chrfSpace
		}
	})

	if err := p.Validate(); err != nil {
		return config.Profile{}, err
	}
	return p, nil
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}
