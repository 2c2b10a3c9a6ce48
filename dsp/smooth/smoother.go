// Package smooth provides one-pole parameter smoothing for control values
// that are written from a host and consumed per sample.
package smooth

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tape/dsp/core"
)

const (
	// DefaultTimeMs is the default smoothing time constant.
	DefaultTimeMs = 5.0

	// DefaultThreshold is the distance to target below which the smoother
	// snaps to the exact target and stops.
	DefaultThreshold = 1e-6
)

// Smoother is a one-pole low-pass applied to a step target. It approaches
// the target monotonically and never overshoots.
//
// The zero value passes targets through immediately until Prepare is called.
type Smoother struct {
	coef      float64
	timeMs    float64
	threshold float64
	current   float64
	target    float64
	active    bool
}

// New returns a smoother with the default time constant, prepared for
// sampleRate and resting at initial.
func New(sampleRate, initial float64) (*Smoother, error) {
	s := &Smoother{}
	if err := s.Prepare(sampleRate); err != nil {
		return nil, err
	}

	s.Snap(initial)

	return s, nil
}

// Prepare computes the pole for sampleRate and the configured time constant.
// The current value jumps to the target.
func (s *Smoother) Prepare(sampleRate float64) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("smoother: %w: %f", core.ErrInvalidSampleRate, sampleRate)
	}

	if s.timeMs <= 0 {
		s.timeMs = DefaultTimeMs
	}

	if s.threshold <= 0 {
		s.threshold = DefaultThreshold
	}

	s.coef = math.Exp(-1000 / (s.timeMs * sampleRate))
	s.Snap(s.target)

	return nil
}

// TimeMs returns the configured time constant.
func (s *Smoother) TimeMs() float64 {
	if s.timeMs <= 0 {
		return DefaultTimeMs
	}

	return s.timeMs
}

// SetTarget sets the value the smoother moves toward. Non-finite targets are
// ignored.
func (s *Smoother) SetTarget(target float64) {
	if !core.IsFinite(target) {
		return
	}

	s.target = target
	s.active = target != s.current
}

// Next advances one sample and returns the smoothed value.
func (s *Smoother) Next() float64 {
	if !s.active {
		return s.current
	}

	s.current = s.target + s.coef*(s.current-s.target)
	if math.Abs(s.current-s.target) <= s.threshold {
		s.current = s.target
		s.active = false
	}

	return s.current
}

// Fill writes len(dst) successive values into dst.
func (s *Smoother) Fill(dst []float64) {
	if !s.active {
		for i := range dst {
			dst[i] = s.current
		}

		return
	}

	for i := range dst {
		dst[i] = s.Next()
	}
}

// Snap sets both current and target to value.
func (s *Smoother) Snap(value float64) {
	if !core.IsFinite(value) {
		value = s.target
	}

	s.current = value
	s.target = value
	s.active = false
}

// Reset snaps the current value to the target.
func (s *Smoother) Reset() { s.Snap(s.target) }

// Current returns the most recent smoothed value.
func (s *Smoother) Current() float64 { return s.current }

// Target returns the target value.
func (s *Smoother) Target() float64 { return s.target }

// IsSmoothing reports whether the current value is still moving.
func (s *Smoother) IsSmoothing() bool { return s.active }
