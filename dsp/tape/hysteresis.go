package tape

import "github.com/cwbudde/algo-tape/dsp/core"

// ceilingDepth is how far full saturation lowers the effective Ms (and a,
// which keeps small-signal gain unchanged).
const ceilingDepth = 0.5

// hysteresisModel integrates the Jiles-Atherton equation once per sample.
// The applied field is drive*x + bias; the output is the magnetization.
//
// The step is the T-scale, 44100/fs reference samples, and the field rate
// is the per-sample field change divided by it, so rate*step is always the
// field change. dM/dt is linear in the field rate, which makes the update
// depend only on the field path: loop shape follows from the equation
// being rate-independent, and the T-scale itself cancels out of the result.
// Sample-rate differences that remain come from the finer field path at
// high rates.
type hysteresisModel struct {
	// step is the integration step in reference-rate samples.
	step  float64
	m     float64
	field float64
}

func (h *hysteresisModel) prepare(sampleRate float64) {
	h.step = core.TimeScale(sampleRate)
	h.reset()
}

func (h *hysteresisModel) reset() {
	h.m = 0
	h.field = 0
}

func (h *hysteresisModel) process(x, drive, saturation, bias float64, solver Solver, p *JAParams) float64 {
	if h.step == 0 {
		h.step = 1
	}

	eq := newJAEquation(*p, 1-ceilingDepth*saturation)
	field := drive*x + bias
	rate := (field - h.field) / h.step

	m := core.FlushDenormals(solver.step(&eq, h.m, h.field, field, rate, h.step))

	h.m = m
	h.field = field

	return m
}
