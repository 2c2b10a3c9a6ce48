package biquad

import (
	"math"

	"github.com/cwbudde/algo-tape/dsp/core"
)

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Inverse returns the coefficients of 1/H(z), renormalized so that the new
// a0 is 1. ok is false when B0 is zero or non-finite, in which case the
// inverse is not realizable as a causal section.
//
// Cascading a section with its inverse is the identity up to rounding.
func (c Coefficients) Inverse() (Coefficients, bool) {
	if c.B0 == 0 || !core.IsFinite(c.B0) {
		return Coefficients{}, false
	}

	inv := 1 / c.B0

	return Coefficients{
		B0: inv,
		B1: c.A1 * inv,
		B2: c.A2 * inv,
		A1: c.B1 * inv,
		A2: c.B2 * inv,
	}, true
}

// Stable reports whether both poles lie strictly inside the unit circle.
func (c Coefficients) Stable() bool {
	// Jury criterion for z^2 + A1 z + A2.
	return math.Abs(c.A2) < 1 && math.Abs(c.A1) < 1+c.A2
}

// Section is a single biquad filter with coefficients and internal state.
// It implements Direct Form II Transposed processing.
type Section struct {
	Coefficients

	d0, d1 float64
}

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = core.FlushDenormals(s.B1*x - s.A1*y + s.d1)
	s.d1 = core.FlushDenormals(s.B2*x - s.A2*y)

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	d0, d1 := s.d0, s.d1

	for i, x := range buf {
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	s.d0 = core.FlushDenormals(d0)
	s.d1 = core.FlushDenormals(d1)
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// State returns the current delay-line state [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// Sanitize clears the delay line if it holds a non-finite value and reports
// whether it had to.
func (s *Section) Sanitize() bool {
	if core.IsFinite(s.d0) && core.IsFinite(s.d1) {
		return false
	}

	s.Reset()

	return true
}
