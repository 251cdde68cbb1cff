// Package config loads scoring profiles from YAML and turns them into scorer
// options.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	sacrebleu "github.com/jamesainslie/go-sacrebleu"
	"github.com/jamesainslie/go-sacrebleu/tokenizer"
)

// ErrUnknownMetric indicates a metric name other than bleu or chrf.
var ErrUnknownMetric = errors.New("config: unknown metric")

// Metric names accepted in profiles and on the command line.
const (
	MetricBLEU = "bleu"
	MetricChrF = "chrf"
)

// Profile is a named, reusable scoring configuration. Pointer fields are
// unset when nil so that command line flags can override only what a
// profile leaves open.
type Profile struct {
	Metrics     []string `yaml:"metrics,omitempty"`
	Tokenizer   string   `yaml:"tokenize,omitempty"`
	Smoothing   string   `yaml:"smooth,omitempty"`
	SmoothValue *float64 `yaml:"smooth_value,omitempty"`
	Lowercase   *bool    `yaml:"lowercase,omitempty"`
	Force       *bool    `yaml:"force,omitempty"`
	LangPair    string   `yaml:"langpair,omitempty"`
	NumRefs     int      `yaml:"num_refs,omitempty"`

	ChrF ChrFProfile `yaml:"chrf,omitempty"`

	TestSet  string `yaml:"test_set,omitempty"`
	OrigLang string `yaml:"origlang,omitempty"`
	Subset   string `yaml:"subset,omitempty"`
}

// ChrFProfile holds the chrF specific settings.
type ChrFProfile struct {
	Order      int      `yaml:"order,omitempty"`
	Beta       *float64 `yaml:"beta,omitempty"`
	Whitespace *bool    `yaml:"whitespace,omitempty"`
}

// Defaults returns the profile matching the library defaults.
func Defaults() Profile {
	return Profile{
		Metrics:   []string{MetricBLEU},
		Smoothing: sacrebleu.SmoothExp.String(),
		NumRefs:   1,
		ChrF: ChrFProfile{
			Order: sacrebleu.DefaultChrFOrder,
		},
	}
}

// Load reads a profile from a YAML file. Fields the file omits keep their
// default values.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	p, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// Decode parses and validates a YAML profile. Unknown keys are rejected.
func Decode(r io.Reader) (Profile, error) {
	p := Defaults()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks every name and number in the profile.
func (p Profile) Validate() error {
	if len(p.Metrics) == 0 {
		return fmt.Errorf("%w: no metric selected", ErrUnknownMetric)
	}
	for _, m := range p.Metrics {
		if !isMetric(m) {
			return fmt.Errorf("%w: %q", ErrUnknownMetric, m)
		}
	}
	if p.Tokenizer != "" {
		if _, err := tokenizer.Parse(p.Tokenizer); err != nil {
			return fmt.Errorf("%w: %w", sacrebleu.ErrConfiguration, err)
		}
	}
	if _, err := sacrebleu.ParseSmoothing(p.Smoothing); err != nil {
		return fmt.Errorf("%w: %w", sacrebleu.ErrConfiguration, err)
	}
	if p.NumRefs < 1 {
		return fmt.Errorf("%w: num_refs must be positive, got %d", sacrebleu.ErrConfiguration, p.NumRefs)
	}
	if p.ChrF.Order <= 0 {
		return fmt.Errorf("%w: %w: %d", sacrebleu.ErrConfiguration, sacrebleu.ErrInvalidOrder, p.ChrF.Order)
	}
	if p.ChrF.Beta != nil && *p.ChrF.Beta <= 0 {
		return fmt.Errorf("%w: %w: %v", sacrebleu.ErrConfiguration, sacrebleu.ErrInvalidBeta, *p.ChrF.Beta)
	}
	return nil
}

func isMetric(name string) bool {
	switch strings.ToLower(name) {
	case MetricBLEU, MetricChrF:
		return true
	}
	return false
}

// Options converts the profile into scorer options. The profile must be
// valid.
func (p Profile) Options() ([]sacrebleu.Option, error) {
	smoothing, err := sacrebleu.ParseSmoothing(p.Smoothing)
	if err != nil {
		return nil, err
	}
	opts := []sacrebleu.Option{
		sacrebleu.WithSmoothing(smoothing),
		sacrebleu.WithLangPair(p.LangPair),
		sacrebleu.WithChrFOrder(p.ChrF.Order),
	}
	if p.Tokenizer != "" {
		tok, err := tokenizer.Parse(p.Tokenizer)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sacrebleu.WithTokenizer(tok))
	}
	if p.SmoothValue != nil {
		opts = append(opts, sacrebleu.WithSmoothValue(*p.SmoothValue))
	}
	if p.Lowercase != nil {
		opts = append(opts, sacrebleu.WithLowercase(*p.Lowercase))
	}
	if p.Force != nil {
		opts = append(opts, sacrebleu.WithForce(*p.Force))
	}
	if p.ChrF.Beta != nil {
		opts = append(opts, sacrebleu.WithChrFBeta(*p.ChrF.Beta))
	}
	if p.ChrF.Whitespace != nil {
		opts = append(opts, sacrebleu.WithWhitespace(*p.ChrF.Whitespace))
	}
	return opts, nil
}

// Metadata returns the signature metadata recorded in the profile.
func (p Profile) Metadata() sacrebleu.Metadata {
	return sacrebleu.Metadata{
		TestSet:  p.TestSet,
		LangPair: p.LangPair,
		OrigLang: p.OrigLang,
		Subset:   p.Subset,
	}
}

// Scorers builds one scorer per metric named in the profile, in order.
func (p Profile) Scorers(extra ...sacrebleu.Option) ([]sacrebleu.Metric, error) {
	opts, err := p.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, extra...)

	metrics := make([]sacrebleu.Metric, 0, len(p.Metrics))
	for _, name := range p.Metrics {
		var (
			m   sacrebleu.Metric
			err error
		)
		switch strings.ToLower(name) {
		case MetricBLEU:
			m, err = sacrebleu.NewBLEU(opts...)
		case MetricChrF:
			m, err = sacrebleu.NewChrF(opts...)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
		}
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}
