package correct

import (
	"fmt"

	"github.com/cwbudde/algo-picks/fit"
	"github.com/cwbudde/algo-picks/picks"
)

// SourceResult is the correction of one source.
type SourceResult struct {
	Source int
	Case   Case

	// PicksP and PicksS are all range-filtered picks of the source, left
	// side first.
	PicksP picks.Series
	PicksS picks.Series

	// SelectionP and SelectionS count the cells dropped before fitting.
	SelectionP picks.Report
	SelectionS picks.Report

	// Left and Right are nil for a side that was not fitted.
	Left  *fit.Rejection
	Right *fit.Rejection

	P Curves
	S Curves
}

// sides holds the range-filtered picks on each side of a source.
type sides struct {
	leftP, leftS   picks.Series
	rightP, rightS picks.Series
}

// CorrectSource corrects the picks of the 1-based source. p and s hold one
// cell per receiver.
func CorrectSource(p, s []string, source int, cfg Config) (*SourceResult, error) {
	n := cfg.NumReceiver
	c := Classify(source, n, cfg.MinPoints)

	if len(p) != n || len(s) != n {
		return nil, &SourceError{Source: source, Case: c, Side: Right,
			Err: fmt.Errorf("%w: got %d P and %d S cells for %d receivers", ErrBlockSize, len(p), len(s), n)}
	}

	if source < 1 || source > n {
		return nil, &SourceError{Source: source, Case: c, Side: Right,
			Err: fmt.Errorf("%w: source outside 1..%d", ErrBlockSize, n)}
	}

	i := source - 1

	var (
		sd       sides
		lrP, rrP picks.Report
		lrS, rrS picks.Report
	)

	sd.leftP, lrP = picks.SelectWithReport(p[:i], 1, cfg.PRange)
	sd.leftS, lrS = picks.SelectWithReport(s[:i], 1, cfg.SRange)
	sd.rightP, rrP = picks.SelectWithReport(p[i:], source, cfg.PRange)
	sd.rightS, rrS = picks.SelectWithReport(s[i:], source, cfg.SRange)

	res := &SourceResult{
		Source:     source,
		Case:       c,
		PicksP:     sd.leftP.Concat(sd.rightP),
		PicksS:     sd.leftS.Concat(sd.rightS),
		SelectionP: lrP.Merge(rrP),
		SelectionS: lrS.Merge(rrS),
	}

	var err error

	switch c {
	case NearStart:
		err = res.nearStart(sd, cfg)
	case Interior:
		err = res.interior(sd, cfg)
	default:
		err = res.nearEnd(sd, cfg)
	}

	if err != nil {
		return nil, err
	}

	return res, nil
}

// nearStart fits the right side and mirrors receivers source..2·source-2
// onto 1..source-1.
func (r *SourceResult) nearStart(sd sides, cfg Config) error {
	n, src := cfg.NumReceiver, r.Source

	if 2*src-2 > n {
		return r.fail(Left, fmt.Errorf("%w: receivers 1..%d need mirror receivers %d..%d", ErrMirrorRange, src-1, src, 2*src-2))
	}

	rej, err := fit.WithRejection(sd.rightP, sd.rightS, false, cfg.StdCoef)
	if err != nil {
		return r.fail(Right, err)
	}

	r.Right = &rej

	x := grid(src, n)
	r.P = mirrorRight(n, src,
		rej.Refined.P.EvalAll(x),
		rej.Raw.P.EvalAll(x), rej.Envelope.P)
	r.S = mirrorRight(n, src,
		rej.Refined.S.EvalAll(x),
		rej.Raw.S.EvalAll(x), rej.Envelope.S)

	return nil
}

// interior fits both sides. The right fit also takes the last left pick so
// that the two curves share an anchor next to the source.
func (r *SourceResult) interior(sd sides, cfg Config) error {
	n, src := cfg.NumReceiver, r.Source

	left, err := fit.WithRejection(sd.leftP, sd.leftS, true, cfg.StdCoef)
	if err != nil {
		return r.fail(Left, err)
	}

	right, err := fit.WithRejection(
		sd.leftP.Last().Concat(sd.rightP),
		sd.leftS.Last().Concat(sd.rightS),
		false, cfg.StdCoef)
	if err != nil {
		return r.fail(Right, err)
	}

	r.Left, r.Right = &left, &right

	xl, xr := grid(1, src-1), grid(src, n)

	r.P = twoSided(n, src,
		reversed(left.Refined.P.EvalAll(xl)), reversed(left.Raw.P.EvalAll(xl)), left.Envelope.P,
		right.Refined.P.EvalAll(xr), right.Raw.P.EvalAll(xr), right.Envelope.P)
	r.S = twoSided(n, src,
		left.Refined.S.EvalAll(xl), left.Raw.S.EvalAll(xl), left.Envelope.S,
		right.Refined.S.EvalAll(xr), right.Raw.S.EvalAll(xr), right.Envelope.S)

	return nil
}

// nearEnd fits the left side and mirrors receivers 2·source-n..source-1
// onto source+1..n.
func (r *SourceResult) nearEnd(sd sides, cfg Config) error {
	n, src := cfg.NumReceiver, r.Source

	if 2*src-n < 1 {
		return r.fail(Right, fmt.Errorf("%w: receivers %d..%d need mirror receivers %d..%d", ErrMirrorRange, src+1, n, 2*src-n, src-1))
	}

	rej, err := fit.WithRejection(sd.leftP, sd.leftS, true, cfg.StdCoef)
	if err != nil {
		return r.fail(Left, err)
	}

	r.Left = &rej

	x := grid(1, src)
	r.P = mirrorLeft(n, src,
		reversed(rej.Refined.P.EvalAll(x)),
		reversed(rej.Raw.P.EvalAll(x)), rej.Envelope.P)
	r.S = mirrorLeft(n, src,
		rej.Refined.S.EvalAll(x),
		rej.Raw.S.EvalAll(x), rej.Envelope.S)

	return nil
}

func (r *SourceResult) fail(side Side, err error) error {
	return &SourceError{Source: r.Source, Case: r.Case, Side: side, Err: err}
}

// mirrorRight builds curves from a segment covering receivers src..n.
func mirrorRight(n, src int, corrected, raw []float64, env float64) Curves {
	build := func(seg []float64) []float64 {
		return join(n, mirrorBefore(seg, src), segment{first: src, values: seg})
	}

	return Curves{
		Corrected: build(corrected),
		Lower:     build(shifted(raw, -env)),
		Upper:     build(shifted(raw, env)),
	}
}

// mirrorLeft builds curves from a segment covering receivers 1..src.
func mirrorLeft(n, src int, corrected, raw []float64, env float64) Curves {
	build := func(seg []float64) []float64 {
		return join(n, segment{first: 1, values: seg}, mirrorAfter(seg, src, n))
	}

	return Curves{
		Corrected: build(corrected),
		Lower:     build(shifted(raw, -env)),
		Upper:     build(shifted(raw, env)),
	}
}

// twoSided builds curves from a left segment covering receivers 1..src-1
// and a right segment covering src..n.
func twoSided(n, src int, lc, lraw []float64, lenv float64, rc, rraw []float64, renv float64) Curves {
	build := func(l, r []float64) []float64 {
		return join(n, segment{first: 1, values: l}, segment{first: src, values: r})
	}

	return Curves{
		Corrected: build(lc, rc),
		Lower:     build(shifted(lraw, -lenv), shifted(rraw, -renv)),
		Upper:     build(shifted(lraw, lenv), shifted(rraw, renv)),
	}
}
