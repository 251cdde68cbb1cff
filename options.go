package sacrebleu

import (
	"log/slog"

	"github.com/jamesainslie/go-sacrebleu/tokenizer"
)

// Defaults shared with the reference scorer.
const (
	// NgramOrder is the maximum BLEU n-gram order.
	NgramOrder = 4

	// DefaultChrFOrder is the default chrF character n-gram order.
	DefaultChrFOrder = 6

	// DefaultChrFBeta weights recall twice as much as precision.
	DefaultChrFBeta = 2.0

	// DefaultSmoothValue is the default value for floor and add-k smoothing.
	DefaultSmoothValue = 0.0
)

// Option configures a BLEUScorer or a ChrFScorer. Options that do not apply
// to a metric are ignored by it.
type Option func(*config)

type config struct {
	tokenizer    tokenizer.Kind
	tokenizerSet bool
	langPair     string

	smoothing         Smoothing
	smoothValue       float64
	useEffectiveOrder bool
	force             bool
	lowercase         bool

	chrfOrder  int
	chrfBeta   float64
	whitespace bool

	logger *slog.Logger
}

func defaultConfig() config {
	return config{
		tokenizer:   tokenizer.Mteval13a,
		smoothing:   SmoothExp,
		smoothValue: DefaultSmoothValue,
		chrfOrder:   DefaultChrFOrder,
		chrfBeta:    DefaultChrFBeta,
		logger:      slog.Default(),
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.tokenizerSet {
		cfg.tokenizer = tokenizer.Default(cfg.langPair)
	}
	return cfg
}

// WithTokenizer selects the BLEU tokenizer (default: 13a, or zh for a
// Chinese target language pair).
func WithTokenizer(k tokenizer.Kind) Option {
	return func(c *config) {
		c.tokenizer = k
		c.tokenizerSet = true
	}
}

// WithLangPair records the "src-tgt" language pair. It drives the default
// tokenizer choice.
func WithLangPair(pair string) Option {
	return func(c *config) {
		c.langPair = pair
	}
}

// WithSmoothing sets the BLEU smoothing method (default: exp).
func WithSmoothing(s Smoothing) Option {
	return func(c *config) {
		c.smoothing = s
	}
}

// WithSmoothValue sets the floor or add-k constant (default: 0).
func WithSmoothValue(v float64) Option {
	return func(c *config) {
		c.smoothValue = v
	}
}

// WithEffectiveOrder limits the BLEU geometric mean to the highest n-gram
// order observed in the hypothesis.
func WithEffectiveOrder(on bool) Option {
	return func(c *config) {
		c.useEffectiveOrder = on
	}
}

// WithForce suppresses the warning about input that looks tokenized.
func WithForce(on bool) Option {
	return func(c *config) {
		c.force = on
	}
}

// WithLowercase lowercases system and reference segments before scoring.
func WithLowercase(on bool) Option {
	return func(c *config) {
		c.lowercase = on
	}
}

// WithChrFOrder sets the maximum character n-gram order (default: 6).
func WithChrFOrder(n int) Option {
	return func(c *config) {
		c.chrfOrder = n
	}
}

// WithChrFBeta sets the recall weight of the chrF F-score (default: 2).
func WithChrFBeta(beta float64) Option {
	return func(c *config) {
		c.chrfBeta = beta
	}
}

// WithWhitespace keeps whitespace in chrF character n-grams (default: off).
func WithWhitespace(on bool) Option {
	return func(c *config) {
		c.whitespace = on
	}
}

// WithLogger sets the logger for degenerate input warnings
// (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
