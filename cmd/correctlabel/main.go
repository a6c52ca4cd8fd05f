// Command correctlabel corrects predicted P and S arrival-time picks by
// fitting a travel-time curve per source, rejecting outlying picks, and
// refitting on the rest.
//
// Usage:
//
//	correctlabel [flags]
//
// Examples:
//
//	correctlabel -num_source 40 -num_receiver 96 -std_coef 1.5
//	correctlabel -picks_file picks.csv -num_source 40 -num_receiver 96 \
//	    -p_pick_min 100 -p_pick_max 3000 -std_coef 1 -plot_figure
//	correctlabel -num_source 40 -num_receiver 96 -std_coef 1 -output_db picks.db
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"strconv"

	"github.com/cwbudde/algo-picks/correct"
	"github.com/cwbudde/algo-picks/figure"
	"github.com/cwbudde/algo-picks/fit"
	"github.com/cwbudde/algo-picks/picks"
	"github.com/cwbudde/algo-picks/store"
)

// boundFlag is an integer flag that distinguishes "not given" from any
// numeric value.
type boundFlag struct {
	b picks.Bound
}

func (f *boundFlag) String() string {
	if f == nil || !f.b.IsSet() {
		return ""
	}

	return f.b.String()
}

func (f *boundFlag) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("want an integer: %w", err)
	}

	f.b = picks.At(v)

	return nil
}

type options struct {
	picksFile  string
	outputName string
	outputDB   string
	figureDir  string
	plot       bool
	numSource  int
	numRecv    int
	stdCoef    float64
	minPoints  int
	workers    int
	keepGoing  bool
	pMin, pMax boundFlag
	sMin, sMax boundFlag
}

func main() {
	log.SetFlags(log.LstdFlags)

	var o options

	flag.StringVar(&o.picksFile, "picks_file", "./picks.csv", "picks file (CSV with itp_pred and its_pred columns)")
	flag.IntVar(&o.numSource, "num_source", 0, "number of sources")
	flag.IntVar(&o.numRecv, "num_receiver", 0, "number of receivers")
	flag.StringVar(&o.outputName, "output_name", "label_time.csv", "output label time CSV")
	flag.BoolVar(&o.plot, "plot_figure", false, "write one figure per source and wave type")
	flag.StringVar(&o.figureDir, "figure_dir", figure.DefaultDir, "directory for figures")
	flag.Var(&o.pMin, "p_pick_min", "lower bound of P picks used to detect anomalies (unset: unbounded)")
	flag.Var(&o.pMax, "p_pick_max", "upper bound of P picks used to detect anomalies (unset: unbounded)")
	flag.Var(&o.sMin, "s_pick_min", "lower bound of S picks used to detect anomalies (unset: unbounded)")
	flag.Var(&o.sMax, "s_pick_max", "upper bound of S picks used to detect anomalies (unset: unbounded)")
	flag.Float64Var(&o.stdCoef, "std_coef", math.NaN(), "coefficient of the standard deviation bounding accepted picks (required)")
	flag.IntVar(&o.minPoints, "points_min_to_interpo", correct.DefaultMinPoints, "minimum number of points needed to fit one side of a source")
	flag.IntVar(&o.workers, "workers", 1, "number of sources corrected concurrently")
	flag.BoolVar(&o.keepGoing, "keep_going", false, "attempt every source and report all failures")
	flag.StringVar(&o.outputDB, "output_db", "", "optional SQLite database receiving the corrected picks")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: correctlabel [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Corrects P and S arrival-time picks per source.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := correct.NewConfig(
		correct.WithGeometry(o.numSource, o.numRecv),
		correct.WithPRange(o.pMin.b, o.pMax.b),
		correct.WithSRange(o.sMin.b, o.sMax.b),
		correct.WithStdCoef(o.stdCoef),
		correct.WithMinPoints(o.minPoints),
		correct.WithWorkers(o.workers),
		keepGoing(o.keepGoing),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o, cfg); err != nil {
		log.Printf("error: %v", err)
		stop()
		os.Exit(1)
	}
}

func keepGoing(on bool) correct.Option {
	if !on {
		return nil
	}

	return correct.WithKeepGoing()
}

func run(ctx context.Context, o options, cfg correct.Config) error {
	table, err := picks.LoadTable(o.picksFile)
	if err != nil {
		return err
	}

	log.Printf("Loaded %d picks from %s", table.Len(), o.picksFile)

	out, err := correct.Run(ctx, table, cfg)
	if err != nil {
		var re *correct.RunError
		if errors.As(err, &re) {
			for _, f := range re.Failed {
				log.Printf("%v", f)
			}

			return fmt.Errorf("%d of %d sources failed, no output written", len(re.Failed), cfg.NumSource)
		}

		return err
	}

	logSelection(out)
	logFits(out)

	if o.plot {
		for _, sr := range out.Sources {
			if _, err := figure.RenderSource(o.figureDir, sr, cfg.StdCoef); err != nil {
				return err
			}
		}

		log.Printf("Figures stored in %s", o.figureDir)
	}

	// The CSV is the primary output and is only replaced once the database,
	// if any, holds the same rows.
	if o.outputDB != "" {
		if err := saveDB(ctx, o.outputDB, out.Rows()); err != nil {
			return err
		}

		log.Printf("Label times are stored in database %s", o.outputDB)
	}

	p, s := out.Columns()
	if err := picks.WriteCSVFile(o.outputName, p, s); err != nil {
		return err
	}

	log.Printf("Label times are saved in %s", o.outputName)

	return nil
}

func saveDB(ctx context.Context, path string, rows []correct.Row) error {
	db, err := store.Open(ctx, path)
	if err != nil {
		return err
	}

	if err := db.Save(ctx, rows); err != nil {
		_ = db.Close()
		return err
	}

	return db.Close()
}

func logSelection(out *correct.Output) {
	var p, s picks.Report
	for _, sr := range out.Sources {
		p = p.Merge(sr.SelectionP)
		s = s.Merge(sr.SelectionS)
	}

	for _, w := range []struct {
		name string
		rep  picks.Report
	}{{"P", p}, {"S", s}} {
		if w.rep.Dropped() == 0 {
			continue
		}

		log.Printf("%s picks: kept %d of %d (out of range %d, empty %d, null %d, non-numeric %d, malformed %d)",
			w.name, w.rep.Kept, w.rep.Total, w.rep.OutOfRange,
			w.rep.Skipped[picks.SkipEmpty], w.rep.Skipped[picks.SkipNull],
			w.rep.Skipped[picks.SkipNonNumeric], w.rep.Skipped[picks.SkipMalformed])
	}
}

func logFits(out *correct.Output) {
	for _, sr := range out.Sources {
		for _, side := range []struct {
			name string
			rej  *fit.Rejection
		}{{"left", sr.Left}, {"right", sr.Right}} {
			if side.rej == nil {
				continue
			}

			r := side.rej
			log.Printf("Source %d (%s) %s side: kept %d P and %d S picks, RSS P %.1f -> %.1f, S %.1f -> %.1f",
				sr.Source, sr.Case, side.name, r.KeptP.Len(), r.KeptS.Len(),
				r.RawRSS.P, r.RefinedRSS.P, r.RawRSS.S, r.RefinedRSS.S)
		}
	}
}
