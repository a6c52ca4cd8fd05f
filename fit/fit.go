package fit

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-picks/picks"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrInsufficientPoints indicates too few picks for a model.
	ErrInsufficientPoints = errors.New("fit: insufficient points")
	// ErrDegenerate indicates a singular least-squares system.
	ErrDegenerate = errors.New("fit: degenerate least-squares system")
	// ErrInvalidOffset indicates an offset below 1.
	ErrInvalidOffset = errors.New("fit: offset must be >= 1")
)

// Stage names the point set a fit was attempted on.
type Stage string

const (
	// StageRaw is the range-filtered pick set.
	StageRaw Stage = "raw"
	// StageRetained is the pick set left after outlier rejection.
	StageRetained Stage = "retained"
)

// InsufficientError reports a pick set too small for its model.
type InsufficientError struct {
	Wave  Wave
	Stage Stage
	Have  int
	Need  int
}

func (e *InsufficientError) Error() string {
	return fmt.Sprintf("fit: %s %s picks: have %d, need %d", e.Stage, e.Wave, e.Have, e.Need)
}

// Unwrap returns ErrInsufficientPoints.
func (e *InsufficientError) Unwrap() error {
	return ErrInsufficientPoints
}

// FitP fits the log-quadratic P model to s.
func FitP(s picks.Series) (PModel, error) {
	coef, err := polyfit(s, MinPointsP, 2, math.Log)
	if err != nil {
		return PModel{}, wrapInsufficient(err, P)
	}

	return PModel{A: coef[0], B: coef[1], C: coef[2]}, nil
}

// FitS fits the linear S model to s.
func FitS(s picks.Series) (SModel, error) {
	coef, err := polyfit(s, MinPointsS, 1, nil)
	if err != nil {
		return SModel{}, wrapInsufficient(err, S)
	}

	return SModel{M: coef[0], N: coef[1]}, nil
}

// Fit fits both models.
func Fit(p, s picks.Series) (Pair, error) {
	pm, err := FitP(p)
	if err != nil {
		return Pair{}, err
	}

	sm, err := FitS(s)
	if err != nil {
		return Pair{}, err
	}

	return Pair{P: pm, S: sm}, nil
}

// polyfit solves the unit-weight least-squares polynomial of the given
// degree in transform(offset). Coefficients are returned highest power
// first.
func polyfit(s picks.Series, minPoints, degree int, transform func(float64) float64) ([]float64, error) {
	n := s.Len()
	if n != len(s.Offsets) {
		return nil, fmt.Errorf("fit: %d offsets for %d times", len(s.Offsets), n)
	}

	if n < minPoints {
		return nil, &InsufficientError{Stage: StageRaw, Have: n, Need: minPoints}
	}

	cols := degree + 1
	design := mat.NewDense(n, cols, nil)

	for i, o := range s.Offsets {
		if o < 1 {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidOffset, o)
		}

		x := float64(o)
		if transform != nil {
			x = transform(x)
		}

		v := 1.0
		for j := cols - 1; j >= 0; j-- {
			design.Set(i, j, v)
			v *= x
		}
	}

	var coef mat.VecDense
	if err := coef.SolveVec(design, mat.NewVecDense(n, append([]float64(nil), s.Times...))); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerate, err)
	}

	out := make([]float64, cols)
	for j := range out {
		out[j] = coef.AtVec(j)
		if math.IsNaN(out[j]) || math.IsInf(out[j], 0) {
			return nil, ErrDegenerate
		}
	}

	return out, nil
}

func wrapInsufficient(err error, w Wave) error {
	var ie *InsufficientError
	if errors.As(err, &ie) {
		ie.Wave = w
	}

	return err
}
