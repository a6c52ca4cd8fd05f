package figure

import "github.com/cwbudde/algo-picks/correct"

// Panels returns the P and S panels of a corrected source.
func Panels(sr *correct.SourceResult, stdCoef float64) (p, s Panel) {
	p = Panel{
		Source:    sr.Source,
		Wave:      "P",
		StdCoef:   stdCoef,
		PickX:     sr.PicksP.X(),
		PickY:     sr.PicksP.Times,
		Corrected: sr.P.Corrected,
		Lower:     sr.P.Lower,
		Upper:     sr.P.Upper,
	}
	s = Panel{
		Source:    sr.Source,
		Wave:      "S",
		StdCoef:   stdCoef,
		PickX:     sr.PicksS.X(),
		PickY:     sr.PicksS.Times,
		Corrected: sr.S.Corrected,
		Lower:     sr.S.Lower,
		Upper:     sr.S.Upper,
	}

	return p, s
}

// RenderSource writes both panels of sr into dir and returns the paths.
func RenderSource(dir string, sr *correct.SourceResult, stdCoef float64) ([]string, error) {
	p, s := Panels(sr, stdCoef)

	paths := make([]string, 0, 2)

	for _, panel := range []Panel{p, s} {
		path, err := Render(dir, panel)
		if err != nil {
			return paths, err
		}

		paths = append(paths, path)
	}

	return paths, nil
}
