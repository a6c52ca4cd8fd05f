package picks

// Series is a set of picks for one side of a source and one wave type.
// Offsets[k] is the receiver coordinate of Times[k] and is always >= 1.
type Series struct {
	Offsets []int
	Times   []float64
}

// Len returns the number of picks in s.
func (s Series) Len() int {
	return len(s.Times)
}

// X returns the offsets as float64 values.
func (s Series) X() []float64 {
	x := make([]float64, len(s.Offsets))
	for i, o := range s.Offsets {
		x[i] = float64(o)
	}

	return x
}

// Last returns a series holding only the final pick of s, or an empty
// series when s is empty.
func (s Series) Last() Series {
	n := s.Len()
	if n == 0 {
		return Series{}
	}

	return Series{
		Offsets: []int{s.Offsets[n-1]},
		Times:   []float64{s.Times[n-1]},
	}
}

// Concat returns a new series with the picks of s followed by those of o.
func (s Series) Concat(o Series) Series {
	out := Series{
		Offsets: make([]int, 0, s.Len()+o.Len()),
		Times:   make([]float64, 0, s.Len()+o.Len()),
	}
	out.Offsets = append(append(out.Offsets, s.Offsets...), o.Offsets...)
	out.Times = append(append(out.Times, s.Times...), o.Times...)

	return out
}

// Report counts why cells were left out of a selection.
type Report struct {
	Total      int
	Kept       int
	OutOfRange int
	Skipped    map[Outcome]int
}

// Dropped returns the number of cells that did not contribute a pick.
func (r Report) Dropped() int {
	return r.Total - r.Kept
}

// Merge returns the sum of r and o.
func (r Report) Merge(o Report) Report {
	out := Report{
		Total:      r.Total + o.Total,
		Kept:       r.Kept + o.Kept,
		OutOfRange: r.OutOfRange + o.OutOfRange,
		Skipped:    make(map[Outcome]int, len(r.Skipped)+len(o.Skipped)),
	}

	for k, v := range r.Skipped {
		out.Skipped[k] += v
	}

	for k, v := range o.Skipped {
		out.Skipped[k] += v
	}

	return out
}

// Select decodes cells and keeps the picks admitted by r. The cell at
// position k is assigned offset offsetStart+k, so dropped cells leave a gap
// in the offsets rather than shifting later picks.
func Select(cells []string, offsetStart int, r Range) Series {
	s, _ := SelectWithReport(cells, offsetStart, r)
	return s
}

// SelectWithReport is like Select and also reports dropped cells.
func SelectWithReport(cells []string, offsetStart int, r Range) (Series, Report) {
	var s Series

	rep := Report{Total: len(cells), Skipped: make(map[Outcome]int)}

	for k, cell := range cells {
		t, outcome := Decode(cell)
		if outcome.Skipped() {
			rep.Skipped[outcome]++
			continue
		}

		if !r.Admits(t) {
			rep.OutOfRange++
			continue
		}

		s.Offsets = append(s.Offsets, offsetStart+k)
		s.Times = append(s.Times, t)
	}

	rep.Kept = s.Len()

	return s, rep
}
