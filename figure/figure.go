// Package figure renders diagnostic plots of a corrected source: the raw
// picks, the corrected curve, and the acceptance band of the raw fit.
package figure

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// DefaultDir is the directory figures are written to by default.
const DefaultDir = "figures"

// ErrPanelShape indicates band or curve lengths that do not match.
var ErrPanelShape = errors.New("figure: curve and band lengths differ")

// Panel is one wave type of one source.
type Panel struct {
	Source  int
	Wave    string
	StdCoef float64

	// PickX and PickY are the observed picks.
	PickX []float64
	PickY []float64

	// Corrected, Lower, and Upper are indexed by receiver - 1.
	Corrected []float64
	Lower     []float64
	Upper     []float64
}

// FileName returns the base name of the panel's image file.
func (p Panel) FileName() string {
	return fmt.Sprintf("Source %d_%s.png", p.Source, p.Wave)
}

// Render writes the panel as a PNG into dir, creating dir if needed, and
// returns the path written.
func Render(dir string, p Panel) (string, error) {
	n := len(p.Corrected)
	if len(p.Lower) != n || len(p.Upper) != n || len(p.PickX) != len(p.PickY) {
		return "", ErrPanelShape
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("figure: create %s: %w", dir, err)
	}

	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("Source %d, %s", p.Source, p.Wave)
	pl.X.Label.Text = "Receiver"
	pl.Y.Label.Text = "Arrival time"

	if n > 0 {
		band := make(plotter.XYs, 0, 2*n)
		for i := 0; i < n; i++ {
			band = append(band, plotter.XY{X: float64(i + 1), Y: p.Upper[i]})
		}

		for i := n - 1; i >= 0; i-- {
			band = append(band, plotter.XY{X: float64(i + 1), Y: p.Lower[i]})
		}

		poly, err := plotter.NewPolygon(band)
		if err != nil {
			return "", fmt.Errorf("figure: band: %w", err)
		}

		poly.Color = color.RGBA{R: 31, G: 119, B: 180, A: 51}
		poly.LineStyle.Width = 0
		pl.Add(poly)
		pl.Legend.Add(fmt.Sprintf("Interpolation zone. std_coef=%v", p.StdCoef), poly)

		curve := make(plotter.XYs, n)
		for i, v := range p.Corrected {
			curve[i] = plotter.XY{X: float64(i + 1), Y: v}
		}

		line, err := plotter.NewLine(curve)
		if err != nil {
			return "", fmt.Errorf("figure: curve: %w", err)
		}

		line.Color = color.RGBA{R: 255, G: 127, B: 14, A: 255}
		line.Width = vg.Points(1.5)
		pl.Add(line)
		pl.Legend.Add(p.Wave+" corrected picks", line)
	}

	if len(p.PickX) > 0 {
		pts := make(plotter.XYs, len(p.PickX))
		for i := range p.PickX {
			pts[i] = plotter.XY{X: p.PickX[i], Y: p.PickY[i]}
		}

		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return "", fmt.Errorf("figure: picks: %w", err)
		}

		sc.GlyphStyle.Radius = vg.Points(2)
		pl.Add(sc)
		pl.Legend.Add(p.Wave+" picks", sc)
	}

	pl.Legend.Top = true

	path := filepath.Join(dir, p.FileName())
	if err := pl.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return "", fmt.Errorf("figure: save %s: %w", path, err)
	}

	return path, nil
}
