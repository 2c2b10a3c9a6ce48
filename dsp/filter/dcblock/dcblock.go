// Package dcblock removes DC offset with a fixed very-low-frequency high-pass.
package dcblock

import (
	"fmt"

	"github.com/cwbudde/algo-tape/dsp/core"
	"github.com/cwbudde/algo-tape/dsp/filter/biquad"
	"github.com/cwbudde/algo-tape/dsp/filter/design"
)

// DefaultCutoffHz is the corner frequency of the blocker.
const DefaultCutoffHz = 10.0

// Blocker is a second-order Butterworth high-pass at [DefaultCutoffHz].
type Blocker struct {
	sampleRate float64
	cutoff     float64
	section    biquad.Section
}

// New creates a blocker prepared for sampleRate.
func New(sampleRate float64) (*Blocker, error) {
	b := &Blocker{}
	if err := b.Prepare(sampleRate); err != nil {
		return nil, err
	}

	return b, nil
}

// Prepare designs the filter for sampleRate and clears its state.
func (b *Blocker) Prepare(sampleRate float64) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("dc blocker: %w: %f", core.ErrInvalidSampleRate, sampleRate)
	}

	cutoff := DefaultCutoffHz
	if cutoff >= sampleRate/2 {
		cutoff = sampleRate * 0.25
	}

	b.sampleRate = sampleRate
	b.cutoff = cutoff
	b.section = biquad.Section{Coefficients: design.Highpass(cutoff, design.ButterworthQ, sampleRate)}

	return nil
}

// ProcessSample filters one sample. Non-finite filter state is cleared so a
// single bad sample cannot latch the output.
func (b *Blocker) ProcessSample(x float64) float64 {
	y := b.section.ProcessSample(x)
	if !core.IsFinite(y) {
		b.section.Reset()
		return 0
	}

	return y
}

// ProcessBlock filters buf in place.
func (b *Blocker) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = b.ProcessSample(x)
	}
}

// Reset clears the filter memory.
func (b *Blocker) Reset() {
	b.section.Reset()
}

// SampleRate returns the prepared sample rate, or 0 before Prepare.
func (b *Blocker) SampleRate() float64 { return b.sampleRate }

// CutoffHz returns the designed corner frequency. It is below
// [DefaultCutoffHz] only for sample rates of 20 Hz or less.
func (b *Blocker) CutoffHz() float64 { return b.cutoff }

// Coefficients returns the active filter coefficients.
func (b *Blocker) Coefficients() biquad.Coefficients { return b.section.Coefficients }
