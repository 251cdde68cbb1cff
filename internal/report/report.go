// Package report renders scores tagged with their signatures.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	sacrebleu "github.com/jamesainslie/go-sacrebleu"
)

// ErrUnknownFormat indicates an output format other than text or json.
var ErrUnknownFormat = errors.New("report: unknown format")

// Format selects how results are written.
type Format int

const (
	// Text writes one sacreBLEU style line per result.
	Text Format = iota
	// JSON writes a single JSON document.
	JSON
)

// ParseFormat returns the format registered under name.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "text":
		return Text, nil
	case "json":
		return JSON, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Entry is a score and the signature it was computed under.
type Entry struct {
	Result    sacrebleu.Result
	Signature sacrebleu.Signature
}

// Options control rendering.
type Options struct {
	Width     int  // decimals
	Short     bool // abbreviated signatures
	ScoreOnly bool // bare numbers, no signature
}

// Write renders entries to w in the given format.
func Write(w io.Writer, f Format, entries []Entry, opts Options) error {
	switch f {
	case Text:
		return WriteText(w, entries, opts)
	case JSON:
		return WriteJSON(w, entries, opts)
	}
	return fmt.Errorf("%w: %d", ErrUnknownFormat, int(f))
}

// WriteText writes one line per entry, e.g.
//
//	BLEU+case.mixed+numrefs.1+smooth.exp+tok.13a+version.1.4.2 = 55.1 100.0/72.7/44.4/28.6 (BP = ...)
func WriteText(w io.Writer, entries []Entry, opts Options) error {
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, Line(e, opts)); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}

// Line renders a single entry.
func Line(e Entry, opts Options) string {
	if opts.ScoreOnly {
		return fmt.Sprintf("%.*f", opts.Width, e.Result.Value())
	}
	name := e.Result.Name()
	text := e.Result.Format(opts.Width)
	sig := e.Signature.Format(opts.Short)
	if sig == "" {
		return text
	}
	return name + "+" + sig + strings.TrimPrefix(text, name)
}

// WriteJSON writes {"results": [...]} with one object per entry.
func WriteJSON(w io.Writer, entries []Entry, opts Options) error {
	results := make([]any, len(entries))
	for i, e := range entries {
		results[i] = fields(e, opts)
	}
	doc, err := structpb.NewStruct(map[string]any{"results": results})
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func fields(e Entry, opts Options) map[string]any {
	m := map[string]any{
		"name":      e.Result.Name(),
		"score":     e.Result.Value(),
		"signature": e.Signature.Format(opts.Short),
		"verbose":   Line(e, Options{Width: opts.Width, Short: opts.Short}),
	}

	switch r := e.Result.(type) {
	case sacrebleu.BLEU:
		m["counts"] = ints(r.Correct[:])
		m["totals"] = ints(r.Total[:])
		m["precisions"] = floats(r.Precisions[:])
		m["bp"] = r.BrevityPenalty
		m["sys_len"] = r.SysLen
		m["ref_len"] = r.RefLen
		m["effective_order"] = r.EffectiveOrder
		m["warnings"] = warnings(r.Warnings)
	case sacrebleu.ChrF:
		m["precision"] = r.Precision
		m["recall"] = r.Recall
		m["beta"] = r.Beta
		m["order"] = r.Order
		m["warnings"] = warnings(r.Warnings)
	}
	return m
}

// structpb only accepts []any for lists.

func ints(xs []int) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

func floats(xs []float64) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

func warnings(ws []sacrebleu.Warning) []any {
	out := make([]any, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}
