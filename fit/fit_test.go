package fit

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/cwbudde/algo-picks/internal/testutil"
	"github.com/cwbudde/algo-picks/picks"
)

var (
	trueP = PModel{A: 12, B: 40, C: 300}
	trueS = SModel{M: 25, N: 480}
)

func series(first, last int, f func(float64) float64) picks.Series {
	var s picks.Series
	for o := first; o <= last; o++ {
		s.Offsets = append(s.Offsets, o)
		s.Times = append(s.Times, f(float64(o)))
	}

	return s
}

func TestFitRecoversExactModels(t *testing.T) {
	p := series(1, 12, trueP.Eval)
	s := series(1, 12, trueS.Eval)

	got, err := Fit(p, s)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	testutil.RequireNearlyEqual(t, "A", got.P.A, trueP.A, 1e-7)
	testutil.RequireNearlyEqual(t, "B", got.P.B, trueP.B, 1e-7)
	testutil.RequireNearlyEqual(t, "C", got.P.C, trueP.C, 1e-7)
	testutil.RequireNearlyEqual(t, "M", got.S.M, trueS.M, 1e-9)
	testutil.RequireNearlyEqual(t, "N", got.S.N, trueS.N, 1e-9)
}

func TestFitMinimumPoints(t *testing.T) {
	pm, err := FitP(series(4, 6, trueP.Eval))
	if err != nil {
		t.Fatalf("FitP with 3 points: %v", err)
	}

	testutil.RequireNearlyEqual(t, "P(5)", pm.Eval(5), trueP.Eval(5), 1e-7)

	sm, err := FitS(series(7, 8, trueS.Eval))
	if err != nil {
		t.Fatalf("FitS with 2 points: %v", err)
	}

	testutil.RequireNearlyEqual(t, "S(20)", sm.Eval(20), trueS.Eval(20), 1e-7)
}

func TestFitInsufficientPoints(t *testing.T) {
	_, err := FitP(series(1, 2, trueP.Eval))

	var ie *InsufficientError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v, want *InsufficientError", err)
	}

	if ie.Wave != P || ie.Have != 2 || ie.Need != MinPointsP || ie.Stage != StageRaw {
		t.Fatalf("InsufficientError = %+v", ie)
	}

	if !errors.Is(err, ErrInsufficientPoints) {
		t.Fatal("InsufficientError does not unwrap to ErrInsufficientPoints")
	}

	_, err = FitS(picks.Series{})
	if !errors.As(err, &ie) || ie.Wave != S || ie.Need != MinPointsS {
		t.Fatalf("FitS(empty) err = %v", err)
	}
}

func TestFitDegenerate(t *testing.T) {
	s := picks.Series{Offsets: []int{3, 3}, Times: []float64{1, 2}}
	if _, err := FitS(s); !errors.Is(err, ErrDegenerate) {
		t.Fatalf("err = %v, want ErrDegenerate", err)
	}
}

func TestFitInvalidOffset(t *testing.T) {
	s := picks.Series{Offsets: []int{0, 1, 2}, Times: []float64{1, 2, 3}}
	if _, err := FitP(s); !errors.Is(err, ErrInvalidOffset) {
		t.Fatalf("err = %v, want ErrInvalidOffset", err)
	}
}

func TestFitDeterministic(t *testing.T) {
	p := series(1, 30, trueP.Eval)
	p.Times = testutil.AddNoise(p.Times, 7, 15)
	s := series(1, 30, trueS.Eval)
	s.Times = testutil.AddNoise(s.Times, 8, 15)

	a, err := Fit(p, s)
	if err != nil {
		t.Fatal(err)
	}

	b, err := Fit(p, s)
	if err != nil {
		t.Fatal(err)
	}

	if a != b {
		t.Fatalf("fits differ: %+v vs %+v", a, b)
	}
}

func TestResidualsAndRSS(t *testing.T) {
	obs := []float64{1, 2, 3, 4}
	pred := []float64{1, 1, 4, 2}

	r := Residuals(nil, obs, pred)
	testutil.RequireSliceNearlyEqual(t, r, []float64{0, 1, -1, 2}, 1e-15)

	testutil.RequireNearlyEqual(t, "RSS", RSS(obs, pred), 6, 1e-12)

	if RSS(nil, nil) != 0 {
		t.Fatal("RSS of empty input should be 0")
	}
}

func TestModelEval(t *testing.T) {
	testutil.RequireNearlyEqual(t, "P(1)", trueP.Eval(1), trueP.C, 0)

	l := math.Log(10)
	testutil.RequireNearlyEqual(t, "P(10)", trueP.Eval(10), trueP.A*l*l+trueP.B*l+trueP.C, 1e-12)
	testutil.RequireSliceNearlyEqual(t, trueS.EvalAll([]float64{0, 2}), []float64{480, 530}, 0)
}

func TestWaveString(t *testing.T) {
	if P.String() != "P" || S.String() != "S" || Wave(9).String() != "unknown" {
		t.Fatal("unexpected Wave names")
	}
}

// reversedSeries returns picks whose times run in the opposite direction to
// their offsets, the layout of the left side of a source.
func reversedSeries(first, last int, f func(float64) float64) picks.Series {
	s := series(first, last, f)
	slices.Reverse(s.Times)

	return s
}
