package testutil

import (
	"bytes"
	"encoding/csv"
	"math/rand"
	"strconv"
)

// Cell encodes a pick the way the phase picker writes it: a one-element
// JSON array.
func Cell(t float64) string {
	return "[" + strconv.FormatFloat(t, 'f', -1, 64) + "]"
}

// Cells encodes every time with Cell.
func Cells(times []float64) []string {
	out := make([]string, len(times))
	for i, t := range times {
		out[i] = Cell(t)
	}
	return out
}

// Receivers evaluates f at receiver coordinates first..last inclusive.
func Receivers(first, last int, f func(x float64) float64) []float64 {
	if last < first {
		return nil
	}
	out := make([]float64, last-first+1)
	for i := range out {
		out[i] = f(float64(first + i))
	}
	return out
}

// DeterministicNoise generates uniform noise in [-amplitude, amplitude]
// with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// AddNoise returns x plus deterministic noise.
func AddNoise(x []float64, seed int64, amplitude float64) []float64 {
	noise := DeterministicNoise(seed, amplitude, len(x))
	out := make([]float64, len(x))
	for i := range x {
		out[i] = x[i] + noise[i]
	}
	return out
}

// TableCSV renders P and S cells as a pick table CSV with a header row.
// P and S must have equal length.
func TableCSV(p, s []string) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"", "itp_pred", "its_pred"})
	for i := range p {
		_ = w.Write([]string{strconv.Itoa(i), p[i], s[i]})
	}
	w.Flush()
	return buf.Bytes()
}
