package correct

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMirrorRange indicates that the mirrored segment of a one-sided
	// source would fall outside the receiver line.
	ErrMirrorRange = errors.New("correct: mirror segment outside receiver line")
	// ErrBlockSize indicates a pick block that does not hold one cell per
	// receiver.
	ErrBlockSize = errors.New("correct: pick block size does not match receiver count")
)

// SourceError identifies the source and side a correction failed on.
type SourceError struct {
	Source int
	Case   Case
	Side   Side
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("correct: source %d (%s, %s side): %v", e.Source, e.Case, e.Side, e.Err)
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// RunError collects the failed sources of a run with KeepGoing set. Failed
// is sorted by source.
type RunError struct {
	Failed []*SourceError
}

func (e *RunError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "correct: %d source(s) failed", len(e.Failed))

	for _, f := range e.Failed {
		b.WriteString("\n\t")
		b.WriteString(f.Error())
	}

	return b.String()
}

// Unwrap returns the per-source errors.
func (e *RunError) Unwrap() []error {
	errs := make([]error, len(e.Failed))
	for i, f := range e.Failed {
		errs[i] = f
	}

	return errs
}
