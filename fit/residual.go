package fit

import (
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// Residuals computes observed - predicted into dst. A nil or short dst is
// replaced by a new slice. Panics if observed and predicted differ in length.
func Residuals(dst, observed, predicted []float64) []float64 {
	if len(observed) != len(predicted) {
		panic("fit: residual length mismatch")
	}

	if len(dst) < len(observed) {
		dst = make([]float64, len(observed))
	}

	dst = dst[:len(observed)]
	vecmath.ScaleBlock(dst, predicted, -1)
	vecmath.AddBlockInPlace(dst, observed)

	return dst
}

// RSS returns the residual sum of squares of predicted against observed.
func RSS(observed, predicted []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	r := Residuals(nil, observed, predicted)
	sq := make([]float64, len(r))
	vecmath.MulBlock(sq, r, r)

	return floats.Sum(sq)
}
