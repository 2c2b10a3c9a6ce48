package tape

import (
	"math"
	"testing"
)

func TestModelNames(t *testing.T) {
	for _, m := range Models() {
		got, err := ParseModel(m.String())
		if err != nil || got != m {
			t.Fatalf("ParseModel(%q) = %v, %v", m.String(), got, err)
		}
	}

	for _, alias := range []string{"HYST", " ja ", "Hysteresis"} {
		if got, err := ParseModel(alias); err != nil || got != ModelHysteresis {
			t.Fatalf("ParseModel(%q) = %v, %v", alias, got, err)
		}
	}

	if _, err := ParseModel("tube"); err == nil {
		t.Fatal("expected error for unknown model")
	}

	if s := Model(7).String(); s != "Model(7)" || Model(7).Valid() {
		t.Fatalf("unknown model string %q", s)
	}
}

func TestSolverNames(t *testing.T) {
	want := []string{"RK2", "RK4", "NR4", "NR8"}

	for i, s := range Solvers() {
		if s.String() != want[i] {
			t.Fatalf("solver %d = %q, want %q", i, s, want[i])
		}

		if got, err := ParseSolver(want[i]); err != nil || got != s {
			t.Fatalf("ParseSolver(%q) = %v, %v", want[i], got, err)
		}
	}

	if got, err := ParseSolver("nr8"); err != nil || got != SolverNR8 {
		t.Fatalf("lower case: %v, %v", got, err)
	}

	if _, err := ParseSolver("euler"); err == nil {
		t.Fatal("expected error for unknown solver")
	}

	if Solver(-1).Valid() || Solver(4).Valid() {
		t.Fatal("out-of-range solver reported valid")
	}
}

func TestJAParamsFinite(t *testing.T) {
	if !DefaultJAParams().finite() {
		t.Fatal("defaults not finite")
	}

	for _, p := range []JAParams{
		{A: math.NaN()},
		{Alpha: math.Inf(1)},
		{C: math.Inf(-1)},
		{K: math.NaN()},
		{Ms: math.Inf(1)},
	} {
		if p.finite() {
			t.Fatalf("%+v reported finite", p)
		}
	}
}

func TestOptionsAcceptBounds(t *testing.T) {
	s, err := New(WithDrive(MinDrive), WithSaturation(1), WithBias(MinBias), WithMix(0))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if s.Drive() != MinDrive || s.Saturation() != 1 || s.Bias() != MinBias || s.Mix() != 0 {
		t.Fatalf("bounds not applied: %+v", s.State())
	}
}
