package biquad

import (
	"math"
	"math/cmplx"
)

// Response evaluates H(z) on the unit circle at freqHz.
func (c *Coefficients) Response(freqHz, sampleRate float64) complex128 {
	z1 := cmplx.Rect(1, -2*math.Pi*freqHz/sampleRate) // z^-1
	z2 := z1 * z1

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2

	return num / den
}

// MagnitudeSquared returns |H(f)|^2 without complex arithmetic.
func (c *Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	w := 2 * math.Pi * freqHz / sampleRate
	cos1, cos2 := math.Cos(w), math.Cos(2*w)

	// |b0 + b1 z^-1 + b2 z^-2|^2 expanded in cos(w) and cos(2w).
	num := c.B0*c.B0 + c.B1*c.B1 + c.B2*c.B2 + 2*(c.B0*c.B1+c.B1*c.B2)*cos1 + 2*c.B0*c.B2*cos2
	den := 1 + c.A1*c.A1 + c.A2*c.A2 + 2*(c.A1+c.A1*c.A2)*cos1 + 2*c.A2*cos2

	return num / den
}

// MagnitudeDB returns the gain at freqHz in decibels.
func (c *Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}
