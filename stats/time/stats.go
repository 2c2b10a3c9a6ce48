// Package time measures block levels of rendered audio.
package time

import (
	"math"

	"github.com/cwbudde/algo-tape/dsp/core"
)

// ClipLevel is the magnitude at or above which a sample counts as clipped
// once written to a fixed-point file.
const ClipLevel = 1.0

// Levels holds time-domain level statistics of a signal.
//
//nolint:revive
type Levels struct {
	Length         int
	DC             float64
	DC_dB          float64
	RMS            float64
	RMS_dB         float64
	Peak           float64
	Peak_dB        float64
	PeakPos        int
	CrestFactor    float64
	CrestFactor_dB float64
	Clipped        int
	ZeroCrossings  int
}

func ampTodB(value float64) float64 {
	return core.LinearToDB(math.Abs(value))
}

// Calculate returns the levels of signal. It equals feeding signal to a
// fresh [Meter] in one Update call.
func Calculate(signal []float64) Levels {
	var m Meter
	m.Update(signal)

	return m.Result()
}

// Meter accumulates levels across consecutive blocks.
// The zero value is ready to use.
type Meter struct {
	n       int
	sum     float64
	comp    float64
	sumSq   float64
	peak    float64
	peakPos int
	clipped int
	zc      int
	last    float64
}

// Update adds a block of samples.
func (m *Meter) Update(samples []float64) {
	for _, x := range samples {
		// Kahan summation keeps the DC estimate exact enough for long renders.
		y := x - m.comp
		t := m.sum + y
		m.comp = (t - m.sum) - y
		m.sum = t

		m.sumSq += x * x

		a := math.Abs(x)
		if a > m.peak {
			m.peak = a
			m.peakPos = m.n
		}

		if a >= ClipLevel {
			m.clipped++
		}

		if m.n > 0 && m.last*x < 0 {
			m.zc++
		}

		m.last = x
		m.n++
	}
}

// Result returns the levels of everything passed to Update so far.
func (m *Meter) Result() Levels {
	if m.n == 0 {
		return Levels{
			DC_dB:          math.Inf(-1),
			RMS_dB:         math.Inf(-1),
			Peak_dB:        math.Inf(-1),
			CrestFactor_dB: math.Inf(-1),
		}
	}

	nf := float64(m.n)
	dc := m.sum / nf
	rms := math.Sqrt(m.sumSq / nf)

	var crest, crestdB float64
	if rms > 0 {
		crest = m.peak / rms
		crestdB = ampTodB(crest)
	}

	return Levels{
		Length:         m.n,
		DC:             dc,
		DC_dB:          ampTodB(dc),
		RMS:            rms,
		RMS_dB:         ampTodB(rms),
		Peak:           m.peak,
		Peak_dB:        ampTodB(m.peak),
		PeakPos:        m.peakPos,
		CrestFactor:    crest,
		CrestFactor_dB: crestdB,
		Clipped:        m.clipped,
		ZeroCrossings:  m.zc,
	}
}

// Reset clears the meter.
func (m *Meter) Reset() {
	*m = Meter{}
}
