package tape

import (
	"math"

	"github.com/cwbudde/algo-approx"
	"github.com/cwbudde/algo-tape/dsp/filter/biquad"
	"github.com/cwbudde/algo-tape/dsp/filter/design"
)

const (
	emphasisFreqHz = 3000.0
	emphasisGainDB = 9.0
	// emphasisMaxRatio caps the shelf corner for low sample rates.
	emphasisMaxRatio = 0.4

	fastCurveLimit = 10.0
)

// simpleModel applies pre-emphasis, a blended tanh curve and the inverse
// de-emphasis: y = de((1-s)*v + s*tanh(v)), v = pre(drive*x) + bias.
type simpleModel struct {
	pre  biquad.Section
	de   biquad.Section
	fast bool
}

func (m *simpleModel) prepare(sampleRate float64) {
	freq := min(emphasisFreqHz, emphasisMaxRatio*sampleRate)
	pre := design.HighShelf(freq, emphasisGainDB, design.ButterworthQ, sampleRate)

	de, ok := pre.Inverse()
	if !ok {
		pre = biquad.Coefficients{B0: 1}
		de = pre
	}

	m.pre = biquad.Section{Coefficients: pre}
	m.de = biquad.Section{Coefficients: de}
}

func (m *simpleModel) reset() {
	m.pre.Reset()
	m.de.Reset()
}

func (m *simpleModel) process(x, drive, saturation, bias float64) float64 {
	v := m.pre.ProcessSample(drive*x) + bias
	y := (1-saturation)*v + saturation*m.curve(v)
	out := m.de.ProcessSample(y)

	if math.IsNaN(out) || math.IsInf(out, 0) {
		m.reset()
		return 0
	}

	return out
}

func (m *simpleModel) curve(v float64) float64 {
	if !m.fast {
		return math.Tanh(v)
	}

	return fastTanh(v)
}

// fastTanh evaluates tanh(v) = 1 - 2/(exp(2v)+1) with a float32 exponential.
func fastTanh(v float64) float64 {
	switch {
	case v > fastCurveLimit:
		return 1
	case v < -fastCurveLimit:
		return -1
	}

	e := float64(approx.FastExp(float32(2 * v)))

	return 1 - 2/(e+1)
}
