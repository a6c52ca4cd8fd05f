package picks

import "strconv"

// Bound is an optional integer limit on pick values. The zero value is
// unbounded.
type Bound struct {
	value int
	set   bool
}

// Unbounded returns a bound that admits every value.
func Unbounded() Bound {
	return Bound{}
}

// At returns a bound fixed at v.
func At(v int) Bound {
	return Bound{value: v, set: true}
}

// Value returns the limit and whether it is set.
func (b Bound) Value() (int, bool) {
	return b.value, b.set
}

// IsSet reports whether b carries a limit.
func (b Bound) IsSet() bool {
	return b.set
}

// String implements fmt.Stringer.
func (b Bound) String() string {
	if !b.set {
		return "unbounded"
	}

	return strconv.Itoa(b.value)
}

// Range is the open admissible interval (Min, Max) for pick values.
// An unset side imposes no limit.
type Range struct {
	Min Bound
	Max Bound
}

// Admits reports whether t lies strictly inside the range.
func (r Range) Admits(t float64) bool {
	if lo, ok := r.Min.Value(); ok && !(t > float64(lo)) {
		return false
	}

	if hi, ok := r.Max.Value(); ok && !(t < float64(hi)) {
		return false
	}

	return true
}

// Empty reports whether no value can satisfy the range.
func (r Range) Empty() bool {
	lo, okLo := r.Min.Value()
	hi, okHi := r.Max.Value()

	return okLo && okHi && hi <= lo
}
