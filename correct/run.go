package correct

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-picks/picks"
	"golang.org/x/sync/errgroup"
)

// Row is one corrected (source, receiver) pair.
type Row struct {
	Source   int
	Receiver int
	Case     Case
	P        int
	S        int
}

// Output is the result of a run. Sources is ordered by source number.
type Output struct {
	NumSource   int
	NumReceiver int
	Sources     []*SourceResult
}

// Rows returns the rounded corrections in source-major, receiver-minor
// order.
func (o *Output) Rows() []Row {
	rows := make([]Row, 0, o.NumSource*o.NumReceiver)
	for _, sr := range o.Sources {
		p, s := sr.P.Rounded(), sr.S.Rounded()
		for k := range p {
			rows = append(rows, Row{Source: sr.Source, Receiver: k + 1, Case: sr.Case, P: p[k], S: s[k]})
		}
	}

	return rows
}

// Columns returns the rounded P and S corrections as two parallel columns
// in the same order as Rows.
func (o *Output) Columns() (p, s []int) {
	p = make([]int, 0, o.NumSource*o.NumReceiver)
	s = make([]int, 0, o.NumSource*o.NumReceiver)

	for _, sr := range o.Sources {
		p = append(p, sr.P.Rounded()...)
		s = append(s, sr.S.Rounded()...)
	}

	return p, s
}

// Run corrects sources 1..cfg.NumSource of table. Without KeepGoing the run
// stops at the first failure and the lowest-numbered failed source is
// returned as a *SourceError; with it every source is attempted and
// failures are returned as a *RunError.
// Results are assembled in source order regardless of cfg.Workers.
func Run(ctx context.Context, table *picks.Table, cfg Config) (*Output, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if need := cfg.NumSource * cfg.NumReceiver; table.Len() < need {
		return nil, fmt.Errorf("%w: %d sources of %d receivers need %d rows, table has %d",
			picks.ErrShortTable, cfg.NumSource, cfg.NumReceiver, need, table.Len())
	}

	results := make([]*SourceResult, cfg.NumSource)
	failures := make([]*SourceError, cfg.NumSource)

	// lowest is the smallest failed source so far. Without KeepGoing,
	// sources above it are skipped while every source below it still runs,
	// so the reported failure does not depend on scheduling.
	var lowest atomic.Int64
	lowest.Store(int64(cfg.NumSource) + 1)

	one := func(ctx context.Context, source int) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !cfg.KeepGoing && int64(source) > lowest.Load() {
			return nil
		}

		sr, err := runSource(table, source, cfg)
		if err != nil {
			failures[source-1] = asSourceError(source, cfg, err)

			for cur := lowest.Load(); int64(source) < cur; cur = lowest.Load() {
				if lowest.CompareAndSwap(cur, int64(source)) {
					break
				}
			}

			return nil
		}

		results[source-1] = sr

		return nil
	}

	var runErr error

	if cfg.Workers <= 1 {
		for source := 1; source <= cfg.NumSource; source++ {
			if runErr = one(ctx, source); runErr != nil {
				break
			}

			if !cfg.KeepGoing && failures[source-1] != nil {
				break
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Workers)

		for source := 1; source <= cfg.NumSource; source++ {
			g.Go(func() error { return one(gctx, source) })
		}

		runErr = g.Wait()
	}

	var failed []*SourceError

	for _, f := range failures {
		if f != nil {
			failed = append(failed, f)
		}
	}

	switch {
	case len(failed) > 0 && cfg.KeepGoing:
		return nil, &RunError{Failed: failed}
	case len(failed) > 0:
		return nil, failed[0]
	case runErr != nil:
		return nil, runErr
	}

	return &Output{
		NumSource:   cfg.NumSource,
		NumReceiver: cfg.NumReceiver,
		Sources:     results,
	}, nil
}

func runSource(table *picks.Table, source int, cfg Config) (*SourceResult, error) {
	p, s, err := table.Source(source, cfg.NumReceiver)
	if err != nil {
		return nil, err
	}

	return CorrectSource(p, s, source, cfg)
}

func asSourceError(source int, cfg Config, err error) *SourceError {
	var se *SourceError
	if errors.As(err, &se) {
		return se
	}

	return &SourceError{
		Source: source,
		Case:   Classify(source, cfg.NumReceiver, cfg.MinPoints),
		Side:   Right,
		Err:    err,
	}
}
