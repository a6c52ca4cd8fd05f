package correct

import (
	"errors"
	"fmt"
)

// Case selects how a source is fitted and reconstructed, depending on how
// much of the receiver line lies on each side of it.
type Case int

const (
	// NearStart fits the right side only and mirrors it onto the left.
	NearStart Case = iota
	// Interior fits both sides independently.
	Interior
	// NearEnd fits the left side only and mirrors it onto the right.
	NearEnd
)

// String implements fmt.Stringer.
func (c Case) String() string {
	switch c {
	case NearStart:
		return "near-start"
	case Interior:
		return "interior"
	case NearEnd:
		return "near-end"
	default:
		return "unknown"
	}
}

// ErrUnknownCase indicates a case name ParseCase does not recognise.
var ErrUnknownCase = errors.New("correct: unknown boundary case")

// ParseCase is the inverse of Case.String.
func ParseCase(name string) (Case, error) {
	for _, c := range []Case{NearStart, Interior, NearEnd} {
		if c.String() == name {
			return c, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownCase, name)
}

// Classify returns the case of the 1-based source among numReceiver
// receivers. The near-start test takes precedence when a short line leaves
// no interior.
func Classify(source, numReceiver, minPoints int) Case {
	switch {
	case source < minPoints:
		return NearStart
	case source <= numReceiver-minPoints:
		return Interior
	default:
		return NearEnd
	}
}

// Side names one side of a source on the receiver line.
type Side int

const (
	// Left covers receivers before the source.
	Left Side = iota
	// Right covers the source and the receivers after it.
	Right
)

// String implements fmt.Stringer.
func (s Side) String() string {
	if s == Left {
		return "left"
	}

	return "right"
}
