package window

import (
	"math"
	"testing"
)

func TestGenerateAllTypes(t *testing.T) {
	for _, typ := range Types() {
		t.Run(Info(typ).Name, func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || v < -1e-12 || v > 1+1e-12 {
					t.Fatalf("coefficient[%d] = %v out of [0, 1]", i, v)
				}

				if mirror := w[len(w)-1-i]; math.Abs(v-mirror) > 1e-12 {
					t.Fatalf("coefficient[%d] not symmetric: %v vs %v", i, v, mirror)
				}
			}
		})
	}
}

func TestZeroValueIsHann(t *testing.T) {
	var typ Type
	if Info(typ).Name != "Hann" {
		t.Fatalf("zero Type is %q, want Hann", Info(typ).Name)
	}
}

func TestENBWMatchesMetadata(t *testing.T) {
	for _, typ := range Types() {
		w := Generate(typ, 4096, WithPeriodic())

		sum, sumSquares := 0.0, 0.0
		for _, c := range w {
			sum += c
			sumSquares += c * c
		}

		enbw := float64(len(w)) * sumSquares / (sum * sum)
		if want := Info(typ).ENBW; math.Abs(enbw-want) > 0.005 {
			t.Fatalf("%s: ENBW=%v, want %v", Info(typ).Name, enbw, want)
		}
	}
}

func TestPeriodicHannEndpoints(t *testing.T) {
	w := Generate(TypeHann, 8, WithPeriodic())
	if w[0] != 0 || math.Abs(w[4]-1) > 1e-15 {
		t.Fatalf("periodic hann: w[0]=%v w[4]=%v", w[0], w[4])
	}
}

func TestApplyCoefficientsInPlace(t *testing.T) {
	samples := []float64{2, 2, 2}
	if err := ApplyCoefficientsInPlace(samples, []float64{0, 0.5, 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if samples[0] != 0 || samples[1] != 1 || samples[2] != 2 {
		t.Fatalf("got %v", samples)
	}

	if err := ApplyCoefficientsInPlace(samples, []float64{1}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestApplyMatchesGenerate(t *testing.T) {
	buf := []float64{1, 1, 1, 1, 1, 1}
	Apply(TypeBlackman, buf)

	w := Generate(TypeBlackman, 6)
	for i := range buf {
		if math.Abs(buf[i]-w[i]) > 1e-15 {
			t.Fatalf("index %d: %v vs %v", i, buf[i], w[i])
		}
	}
}
