package smooth

import (
	"math"
	"testing"
)

func TestPrepareRejectsInvalidRate(t *testing.T) {
	var s Smoother
	for _, sr := range []float64{0, -48000, math.NaN(), math.Inf(1)} {
		if err := s.Prepare(sr); err == nil {
			t.Fatalf("expected error for sample rate %v", sr)
		}
	}
}

func TestApproachIsMonotoneWithoutOvershoot(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
	}{
		{"up", 0, 1},
		{"down", 1, -0.5},
		{"small", 0.25, 0.2500001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(48000, tt.from)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			s.SetTarget(tt.to)
			dir := math.Copysign(1, tt.to-tt.from)
			prev := tt.from

			for i := range 48000 {
				v := s.Next()
				if (v-prev)*dir < 0 {
					t.Fatalf("sample %d moved backwards: %v -> %v", i, prev, v)
				}

				if (v-tt.to)*dir > 0 {
					t.Fatalf("sample %d overshot: %v past %v", i, v, tt.to)
				}

				prev = v
			}

			if s.IsSmoothing() || s.Current() != tt.to {
				t.Fatalf("did not settle: current=%v smoothing=%v", s.Current(), s.IsSmoothing())
			}
		})
	}
}

func TestFirstStepBoundedByLinearRamp(t *testing.T) {
	for _, fs := range []float64{44100, 48000, 96000, 192000} {
		s, _ := New(fs, 0)
		s.SetTarget(1)

		step := s.Next()
		limit := 1 / (DefaultTimeMs * 1e-3 * fs)

		if step <= 0 || step > limit {
			t.Fatalf("fs=%v: first step %v, want in (0, %v]", fs, step, limit)
		}
	}
}

func TestReachesNinetyFivePercentWithinThreeTimeConstants(t *testing.T) {
	const fs = 48000

	s, _ := New(fs, 0)
	s.SetTarget(1)

	n := int(3 * DefaultTimeMs * 1e-3 * fs)
	for range n {
		s.Next()
	}

	if s.Current() < 0.95 {
		t.Fatalf("after 3 tau current=%v, want >= 0.95", s.Current())
	}
}

func TestResetSnapsToTarget(t *testing.T) {
	s, _ := New(44100, 0)
	s.SetTarget(0.7)
	s.Next()
	s.Reset()

	if s.IsSmoothing() {
		t.Fatal("still smoothing after Reset")
	}

	if got := s.Next(); got != 0.7 {
		t.Fatalf("Next() after Reset = %v, want 0.7", got)
	}
}

func TestNonFiniteTargetIgnored(t *testing.T) {
	s, _ := New(44100, 0.3)
	s.SetTarget(math.NaN())
	s.SetTarget(math.Inf(-1))

	if s.Target() != 0.3 || s.IsSmoothing() {
		t.Fatalf("target=%v smoothing=%v, want 0.3 idle", s.Target(), s.IsSmoothing())
	}
}

func TestFillMatchesNext(t *testing.T) {
	a, _ := New(48000, 0)
	b, _ := New(48000, 0)
	a.SetTarget(1)
	b.SetTarget(1)

	buf := make([]float64, 64)
	a.Fill(buf)

	for i, got := range buf {
		if want := b.Next(); got != want {
			t.Fatalf("index %d: Fill=%v Next=%v", i, got, want)
		}
	}
}

func TestZeroValuePassesThrough(t *testing.T) {
	var s Smoother
	s.SetTarget(2)

	if got := s.Next(); got != 2 {
		t.Fatalf("unprepared Next() = %v, want 2", got)
	}

	if s.TimeMs() != DefaultTimeMs {
		t.Fatalf("TimeMs() = %v, want %v", s.TimeMs(), DefaultTimeMs)
	}
}

func BenchmarkSmootherNext(b *testing.B) {
	s, _ := New(48000, 0)
	b.ReportAllocs()

	for i := range b.N {
		if i%256 == 0 {
			s.SetTarget(float64(i%512) / 512)
		}

		_ = s.Next()
	}
}
