package sacrebleu

import (
	"log/slog"
)

// WarningKind classifies advisory conditions found while scoring.
type WarningKind int

const (
	// WarnEmptyHypothesis means the system stream had no segments or no tokens.
	WarnEmptyHypothesis WarningKind = iota + 1
	// WarnNoOverlap means no hypothesis unigram matched a reference.
	WarnNoOverlap
	// WarnTokenizedInput means many system lines look tokenized already.
	WarnTokenizedInput
)

func (k WarningKind) String() string {
	switch k {
	case WarnEmptyHypothesis:
		return "empty-hypothesis"
	case WarnNoOverlap:
		return "no-overlap"
	case WarnTokenizedInput:
		return "tokenized-input"
	}
	return "unknown"
}

// Warning describes degenerate input. Warnings never change a score.
type Warning struct {
	Kind    WarningKind
	Message string
}

func (w Warning) String() string {
	return w.Kind.String() + ": " + w.Message
}

// tokenizedLineLimit is the number of system lines ending in " ." after which
// the input is reported as probably tokenized.
const tokenizedLineLimit = 100

type warnings struct {
	logger *slog.Logger
	metric string
	list   []Warning
}

func (w *warnings) add(kind WarningKind, msg string) {
	w.list = append(w.list, Warning{Kind: kind, Message: msg})
	w.logger.Warn(msg, "metric", w.metric, "kind", kind.String())
}
