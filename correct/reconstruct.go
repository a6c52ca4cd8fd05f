package correct

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Curves holds one wave type's corrected series and diagnostic band over
// the whole receiver line.
type Curves struct {
	Corrected []float64
	Lower     []float64
	Upper     []float64
}

// Rounded returns the corrected series rounded half to even.
func (c Curves) Rounded() []int {
	out := make([]int, len(c.Corrected))
	for i, v := range c.Corrected {
		out[i] = int(math.RoundToEven(v))
	}

	return out
}

// segment is a contiguous run of receivers [first, first+len(values)).
type segment struct {
	first  int
	values []float64
}

// grid returns the receiver coordinates lo..hi inclusive.
func grid(lo, hi int) []float64 {
	n := hi - lo + 1
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{float64(lo)}
	}

	return floats.Span(make([]float64, n), float64(lo), float64(hi))
}

func reversed(x []float64) []float64 {
	out := slices.Clone(x)
	slices.Reverse(out)

	return out
}

// shifted returns x + c.
func shifted(x []float64, c float64) []float64 {
	out := slices.Clone(x)
	floats.AddConst(c, out)

	return out
}

// join concatenates segments that tile the receiver line from receiver 1.
// It panics on a gap or overlap, which would be a reconstruction bug.
func join(numReceiver int, parts ...segment) []float64 {
	out := make([]float64, 0, numReceiver)
	for _, p := range parts {
		if p.first != len(out)+1 {
			panic("correct: reconstruction segments do not tile the receiver line")
		}

		out = append(out, p.values...)
	}

	if len(out) != numReceiver {
		panic("correct: reconstruction does not cover the receiver line")
	}

	return out
}

// mirrorBefore returns the values for receivers 1..source-1 taken from the
// right segment starting at source, reversed. right[k] is receiver source+k.
func mirrorBefore(right []float64, source int) segment {
	return segment{first: 1, values: reversed(right[:source-1])}
}

// mirrorAfter returns the values for receivers source+1..numReceiver taken
// from receivers 2·source-numReceiver..source-1 of left, reversed. left[k]
// is receiver k+1.
func mirrorAfter(left []float64, source, numReceiver int) segment {
	return segment{first: source + 1, values: reversed(left[2*source-numReceiver-1 : source-1])}
}
