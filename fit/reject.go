package fit

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-picks/picks"
	"gonum.org/v1/gonum/stat"
)

// ErrInvalidCoef indicates a negative or non-finite envelope coefficient.
var ErrInvalidCoef = errors.New("fit: std coefficient must be finite and >= 0")

// Rejection is the outcome of one fit, reject, refit cycle.
type Rejection struct {
	// Refined is fitted on the retained picks and drives the corrected
	// output.
	Refined Pair
	// Raw is fitted on all picks and defines the acceptance band.
	Raw      Pair
	Envelope Envelope

	// RawRSS is the fit error of Raw on all picks, RefinedRSS that of
	// Refined on the kept picks.
	RawRSS     SumSquares
	RefinedRSS SumSquares
	// Mirrored reports whether P times were fitted in reverse order.
	Mirrored bool

	KeptP picks.Series
	KeptS picks.Series
}

// WithRejection fits p and s, keeps the picks strictly inside
// prediction ± stddev·stdCoef of the raw fit, and refits on those.
//
// With mirrored set, P times are reversed against their offsets before
// fitting and the raw P predictions are reversed back before comparing them
// with the observations. S is never mirrored.
func WithRejection(p, s picks.Series, mirrored bool, stdCoef float64) (Rejection, error) {
	if math.IsNaN(stdCoef) || math.IsInf(stdCoef, 0) || stdCoef < 0 {
		return Rejection{}, fmt.Errorf("%w: got %v", ErrInvalidCoef, stdCoef)
	}

	raw, err := fitPair(p, s, mirrored)
	if err != nil {
		return Rejection{}, err
	}

	env := Envelope{
		P: popStdDev(p.Times) * stdCoef,
		S: popStdDev(s.Times) * stdCoef,
	}

	keptP := keepInside(p, PredictP(raw.P, p, mirrored), env.P)
	keptS := keepInside(s, raw.S.EvalAll(s.X()), env.S)

	refined, err := fitPair(keptP, keptS, mirrored)
	if err != nil {
		var ie *InsufficientError
		if errors.As(err, &ie) {
			ie.Stage = StageRetained
		}

		return Rejection{}, err
	}

	return Rejection{
		Refined:  refined,
		Raw:      raw,
		Envelope: env,
		RawRSS: SumSquares{
			P: RSSP(raw.P, p, mirrored),
			S: RSSS(raw.S, s),
		},
		RefinedRSS: SumSquares{
			P: RSSP(refined.P, keptP, mirrored),
			S: RSSS(refined.S, keptS),
		},
		Mirrored: mirrored,
		KeptP:    keptP,
		KeptS:    keptS,
	}, nil
}

// PredictP evaluates m at the offsets of s so that prediction k lines up
// with observation k, honouring the mirroring convention of WithRejection.
func PredictP(m PModel, s picks.Series, mirrored bool) []float64 {
	pred := m.EvalAll(s.X())
	if mirrored {
		slices.Reverse(pred)
	}

	return pred
}

// RSSP returns the residual sum of squares of m on s under the given
// mirroring convention.
func RSSP(m PModel, s picks.Series, mirrored bool) float64 {
	return RSS(s.Times, PredictP(m, s, mirrored))
}

// RSSS returns the residual sum of squares of m on s.
func RSSS(m SModel, s picks.Series) float64 {
	return RSS(s.Times, m.EvalAll(s.X()))
}

func fitPair(p, s picks.Series, mirrored bool) (Pair, error) {
	if mirrored {
		p = reversedTimes(p)
	}

	return Fit(p, s)
}

// reversedTimes pairs the offsets of s with its times in reverse order.
func reversedTimes(s picks.Series) picks.Series {
	t := slices.Clone(s.Times)
	slices.Reverse(t)

	return picks.Series{Offsets: s.Offsets, Times: t}
}

// keepInside returns the picks whose residual against pred is strictly
// smaller than halfWidth in magnitude.
func keepInside(s picks.Series, pred []float64, halfWidth float64) picks.Series {
	var out picks.Series

	for k, r := range Residuals(nil, s.Times, pred) {
		if math.Abs(r) < halfWidth {
			out.Offsets = append(out.Offsets, s.Offsets[k])
			out.Times = append(out.Times, s.Times[k])
		}
	}

	return out
}

func popStdDev(x []float64) float64 {
	_, std := stat.PopMeanStdDev(x, nil)
	return std
}
