package sacrebleu

import "fmt"

// Smoothing selects how BLEU treats n-gram orders without matches. The
// methods follow Chen and Cherry, "A Systematic Comparison of Smoothing
// Techniques for Sentence-Level BLEU" (WMT 2014).
type Smoothing int

const (
	// SmoothExp is NIST geometric smoothing (method 3), the corpus default.
	SmoothExp Smoothing = iota
	// SmoothFloor replaces zero matches with the smooth value (method 1).
	SmoothFloor
	// SmoothAddK adds the smooth value to matches and totals of the 3-gram
	// and 4-gram orders (method 2).
	SmoothAddK
	// SmoothNone applies no smoothing.
	SmoothNone
)

// Smoothings lists every smoothing method in a stable order.
var Smoothings = []Smoothing{SmoothExp, SmoothFloor, SmoothAddK, SmoothNone}

// ParseSmoothing returns the smoothing method registered under name.
func ParseSmoothing(name string) (Smoothing, error) {
	switch name {
	case "exp":
		return SmoothExp, nil
	case "floor":
		return SmoothFloor, nil
	case "add-k":
		return SmoothAddK, nil
	case "none":
		return SmoothNone, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSmoothing, name)
}

// String returns the name recorded in signatures.
func (s Smoothing) String() string {
	switch s {
	case SmoothExp:
		return "exp"
	case SmoothFloor:
		return "floor"
	case SmoothAddK:
		return "add-k"
	case SmoothNone:
		return "none"
	}
	return fmt.Sprintf("Smoothing(%d)", int(s))
}

// Valid reports whether s is one of the declared methods.
func (s Smoothing) Valid() bool {
	return s >= SmoothExp && s <= SmoothNone
}
