// Package fit provides the travel-time models used to smooth arrival-time
// picks and the single-pass outlier rejection built on them.
//
// P-wave times follow a quadratic in the logarithm of the receiver
// coordinate:
//
//	t = A·ln(x)² + B·ln(x) + C
//
// S-wave times follow a straight line:
//
//	t = M·x + N
//
// Both are fitted with unit-weight least squares. [WithRejection] fits the
// raw picks, drops picks outside a standard-deviation envelope around the
// raw fit and refits on the remainder.
package fit
