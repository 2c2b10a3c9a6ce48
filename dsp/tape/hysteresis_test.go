package tape

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-tape/internal/testutil"
)

func runHysteresis(sampleRate float64, in []float64, drive, saturation float64, solver Solver, p JAParams) []float64 {
	var h hysteresisModel
	h.prepare(sampleRate)

	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = h.process(x, drive, saturation, 0, solver, &p)
	}

	return out
}

func TestHysteresisLoopHasMemory(t *testing.T) {
	const fs = 48000

	in := testutil.Triangle(100, fs, 0.5, fs/2)
	out := runHysteresis(fs, in, 1, 0.5, SolverRK4, DefaultJAParams())

	rise := 480 * 40

	fall := rise + 240
	if in[rise] != 0 || in[fall] != 0 {
		t.Fatalf("inputs at crossings: %v %v", in[rise], in[fall])
	}

	if d := out[fall] - out[rise]; d < 0.05 {
		t.Fatalf("magnetization at falling minus rising crossing = %v, want > 0.05", d)
	}
}

func TestHysteresisPeakIndependentOfSampleRate(t *testing.T) {
	var ref float64

	for i, fs := range []float64{44100, 48000, 96000, 192000} {
		in := testutil.DeterministicSine(200, fs, 0.5, int(0.1*fs))
		out := runHysteresis(fs, in, 1, 0.5, SolverRK4, DefaultJAParams())

		peak := 0.0
		for _, v := range out[len(out)/2:] {
			peak = max(peak, v)
		}

		if i == 0 {
			ref = peak
			continue
		}

		if math.Abs(peak/ref-1) > 0.01 {
			t.Fatalf("fs=%v: peak %v vs %v", fs, peak, ref)
		}
	}
}

func TestHysteresisClampsToCeiling(t *testing.T) {
	in := testutil.DeterministicSine(10000, 44100, 1, 2000)

	for _, saturation := range []float64{0, 0.5, 1} {
		limit := DefaultJAParams().Ms * (1 - ceilingDepth*saturation)

		for _, solver := range Solvers() {
			out := runHysteresis(44100, in, MaxDrive, saturation, solver, DefaultJAParams())

			for i, v := range out {
				if math.Abs(v) > limit {
					t.Fatalf("sat %v %v: |M|=%v above %v at %d", saturation, solver, v, limit, i)
				}
			}
		}
	}
}

func TestHysteresisDegenerateParams(t *testing.T) {
	in := testutil.DeterministicSine(440, 48000, 0.5, 1000)

	out := runHysteresis(48000, in, 1, 0.5, SolverNR8, JAParams{})
	for i, v := range out {
		if v != 0 {
			t.Fatalf("zero params: index %d = %v", i, v)
		}
	}
}

func TestHysteresisSilenceStaysAtOrigin(t *testing.T) {
	out := runHysteresis(48000, make([]float64, 256), 1, 0.5, SolverRK4, DefaultJAParams())

	for _, v := range out {
		if v != 0 {
			t.Fatalf("silent input produced %v", v)
		}
	}
}

func TestHysteresisResetClearsState(t *testing.T) {
	p := DefaultJAParams()

	var h hysteresisModel
	h.prepare(48000)

	for _, x := range testutil.DeterministicSine(100, 48000, 0.8, 500) {
		h.process(x, 1, 0.5, 0.2, SolverRK4, &p)
	}

	h.reset()

	if h.m != 0 || h.field != 0 {
		t.Fatalf("reset left m=%v field=%v", h.m, h.field)
	}

	if h.step != 44100.0/48000 {
		t.Fatalf("reset changed step to %v", h.step)
	}
}
