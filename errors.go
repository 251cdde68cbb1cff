package sacrebleu

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrAlignment indicates the system and a reference stream have different
	// numbers of segments. No score is produced.
	ErrAlignment = errors.New("sacrebleu: system and reference streams have different lengths")

	// ErrNoReferences indicates a scoring call without any reference stream.
	ErrNoReferences = errors.New("sacrebleu: at least one reference stream is required")

	// ErrConfiguration indicates a scorer was configured with an invalid value.
	ErrConfiguration = errors.New("sacrebleu: invalid configuration")

	// ErrUnknownSmoothing indicates a smoothing method name that is not known.
	ErrUnknownSmoothing = errors.New("unknown smoothing method")

	// ErrInvalidOrder indicates a non-positive chrF character order.
	ErrInvalidOrder = errors.New("chrF order must be positive")

	// ErrInvalidBeta indicates a non-positive chrF beta.
	ErrInvalidBeta = errors.New("chrF beta must be positive")
)

// AlignmentError reports a segment count mismatch between the system stream
// and a reference stream.
type AlignmentError struct {
	Stream   int // index of the offending reference stream
	Expected int // segments in the system stream
	Actual   int // segments in the reference stream
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("%v: reference stream %d has %d segments, system has %d",
		ErrAlignment, e.Stream, e.Actual, e.Expected)
}

// Unwrap makes errors.Is(err, ErrAlignment) hold.
func (e *AlignmentError) Unwrap() error {
	return ErrAlignment
}

// checkAlignment returns an *AlignmentError for the first reference stream
// whose length differs from n.
func checkAlignment(n int, refs [][]string) error {
	for i, ref := range refs {
		if len(ref) != n {
			return &AlignmentError{Stream: i, Expected: n, Actual: len(ref)}
		}
	}
	return nil
}

func configError(cause error, value any) error {
	return fmt.Errorf("%w: %w: %v", ErrConfiguration, cause, value)
}
