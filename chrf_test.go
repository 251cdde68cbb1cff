package sacrebleu

import (
	"errors"
	"testing"
)

func TestCorpusChrF(t *testing.T) {
	tests := []struct {
		name string
		hyps []string
		refs []string
		opts []Option
		want float64
	}{
		{
			name: "single sentence",
			hyps: []string{"The cat is on the mat."},
			refs: []string{"The cat sat on the mat."},
			want: 0.6458166836671696,
		},
		{
			name: "corpus",
			hyps: testSys,
			refs: testRef1,
			want: 0.5425315552616784,
		},
		{
			name: "whitespace kept",
			hyps: testSys,
			refs: testRef1,
			opts: []Option{WithWhitespace(true)},
			want: 0.6635587159725377,
		},
		{
			name: "order 3 beta 1",
			hyps: testSys,
			refs: testRef1,
			opts: []Option{WithChrFOrder(3), WithChrFBeta(1)},
			want: 0.6946504253060567,
		},
		{
			name: "unigram recall only",
			hyps: []string{"abc"},
			refs: []string{"abcd"},
			opts: []Option{WithChrFOrder(1)},
			want: 0.7894736842105263,
		},
		{
			name: "identical",
			hyps: testRef2,
			refs: testRef2,
			want: 1,
		},
		{
			name: "empty hypothesis",
			hyps: []string{""},
			refs: []string{"abc"},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CorpusChrF(tt.hyps, tt.refs, append(tt.opts, quiet())...)
			if err != nil {
				t.Fatalf("CorpusChrF() error: %v", err)
			}
			if !approxEqual(got.Score, tt.want) {
				t.Errorf("Score = %.16f, want %.16f", got.Score, tt.want)
			}
			if got.Score < 0 || got.Score > 1 {
				t.Errorf("Score = %v out of [0, 1]", got.Score)
			}
		})
	}
}

func TestChrF_Lowercase(t *testing.T) {
	mixed, err := SentenceChrF("THE CAT", "the cat", quiet())
	if err != nil {
		t.Fatal(err)
	}
	lc, err := SentenceChrF("THE CAT", "the cat", WithLowercase(true), quiet())
	if err != nil {
		t.Fatal(err)
	}
	if mixed.Score >= lc.Score {
		t.Errorf("lowercasing should raise the score: %v >= %v", mixed.Score, lc.Score)
	}
	if !approxEqual(lc.Score, 1) {
		t.Errorf("lowercased Score = %v, want 1", lc.Score)
	}
}

func TestChrF_Warnings(t *testing.T) {
	got, err := CorpusChrF([]string{" "}, []string{"abc"}, quiet())
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Warnings) != 1 || got.Warnings[0].Kind != WarnEmptyHypothesis {
		t.Errorf("Warnings = %v, want one empty-hypothesis", got.Warnings)
	}

	got, err = CorpusChrF([]string{"xyz"}, []string{"abc"}, quiet())
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Warnings) != 1 || got.Warnings[0].Kind != WarnNoOverlap {
		t.Errorf("Warnings = %v, want one no-overlap", got.Warnings)
	}
}

func TestCorpusChrF_Alignment(t *testing.T) {
	_, err := CorpusChrF(testSys, testRef1[:1], quiet())
	var ae *AlignmentError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *AlignmentError, got: %v", err)
	}
	if ae.Expected != 2 || ae.Actual != 1 {
		t.Errorf("AlignmentError = %+v, want expected 2 actual 1", *ae)
	}
}

func TestNewChrF_Configuration(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want error
	}{
		{"zero order", []Option{WithChrFOrder(0)}, ErrInvalidOrder},
		{"negative beta", []Option{WithChrFBeta(-1)}, ErrInvalidBeta},
		{"zero beta", []Option{WithChrFBeta(0)}, ErrInvalidBeta},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewChrF(tt.opts...)
			if !errors.Is(err, ErrConfiguration) || !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got: %v", tt.want, err)
			}
		})
	}
}

func TestChrF_Name(t *testing.T) {
	s, err := NewChrF(WithChrFBeta(1), quiet())
	if err != nil {
		t.Fatal(err)
	}
	c := s.Sentence("abc", "abc")
	if c.Name() != "chrF1" {
		t.Errorf("Name() = %q, want chrF1", c.Name())
	}
	if c.Format(3) != "chrF1 = 1.000" {
		t.Errorf("Format(3) = %q, want chrF1 = 1.000", c.Format(3))
	}
}

func TestFScore(t *testing.T) {
	tests := []struct {
		p, r, beta float64
		want       float64
	}{
		{0, 0, 2, 0},
		{1, 1, 2, 1},
		{1, 0.75, 2, 0.7894736842105263},
		{0.5, 0.5, 1, 0.5},
	}
	for _, tt := range tests {
		if got := fScore(tt.p, tt.r, tt.beta); !approxEqual(got, tt.want) {
			t.Errorf("fScore(%v, %v, %v) = %v, want %v", tt.p, tt.r, tt.beta, got, tt.want)
		}
	}
}
