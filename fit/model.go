package fit

import "math"

// Wave identifies a seismic phase.
type Wave int

const (
	// P is the compressional wave.
	P Wave = iota
	// S is the shear wave.
	S
)

// String implements fmt.Stringer.
func (w Wave) String() string {
	switch w {
	case P:
		return "P"
	case S:
		return "S"
	default:
		return "unknown"
	}
}

// Minimum number of picks for each model.
const (
	MinPointsP = 3
	MinPointsS = 2
)

// PModel is the log-quadratic P-wave model t = A·ln(x)² + B·ln(x) + C.
type PModel struct {
	A, B, C float64
}

// Eval returns the modelled time at receiver coordinate x.
func (m PModel) Eval(x float64) float64 {
	l := math.Log(x)
	return m.A*l*l + m.B*l + m.C
}

// EvalAll evaluates m at every x.
func (m PModel) EvalAll(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = m.Eval(v)
	}

	return out
}

// SModel is the linear S-wave model t = M·x + N.
type SModel struct {
	M, N float64
}

// Eval returns the modelled time at receiver coordinate x.
func (m SModel) Eval(x float64) float64 {
	return m.M*x + m.N
}

// EvalAll evaluates m at every x.
func (m SModel) EvalAll(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = m.Eval(v)
	}

	return out
}

// Pair holds the P and S models fitted for one side of a source.
type Pair struct {
	P PModel
	S SModel
}

// Envelope is the half-width of the acceptance band around a raw fit.
type Envelope struct {
	P float64
	S float64
}

// SumSquares holds a residual sum of squares per wave type.
type SumSquares struct {
	P float64
	S float64
}
