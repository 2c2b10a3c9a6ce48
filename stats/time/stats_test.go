package time

import (
	"math"
	"testing"
)

const tolerance = 1e-10

func sine(amplitude float64, cycles, period int) []float64 {
	out := make([]float64, cycles*period)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*float64(i)/float64(period))
	}

	return out
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name   string
		signal []float64
		dc     float64
		rms    float64
		peak   float64
		zc     int
		clip   int
	}{
		{"dc", []float64{0.5, 0.5, 0.5, 0.5}, 0.5, 0.5, 0.5, 0, 0},
		{"square", []float64{1, -1, 1, -1}, 0, 1, 1, 3, 4},
		{"sine", sine(0.5, 10, 100), 0, 0.5 / math.Sqrt2, 0.5, 19, 0},
		{"spike", []float64{0, 0, -2, 0}, -0.5, 1, 2, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Calculate(tt.signal)

			if l.Length != len(tt.signal) {
				t.Errorf("Length = %d", l.Length)
			}

			if math.Abs(l.DC-tt.dc) > tolerance {
				t.Errorf("DC = %g, want %g", l.DC, tt.dc)
			}

			if math.Abs(l.RMS-tt.rms) > tolerance {
				t.Errorf("RMS = %g, want %g", l.RMS, tt.rms)
			}

			if math.Abs(l.Peak-tt.peak) > tolerance {
				t.Errorf("Peak = %g, want %g", l.Peak, tt.peak)
			}

			if l.ZeroCrossings != tt.zc {
				t.Errorf("ZeroCrossings = %d, want %d", l.ZeroCrossings, tt.zc)
			}

			if l.Clipped != tt.clip {
				t.Errorf("Clipped = %d, want %d", l.Clipped, tt.clip)
			}
		})
	}
}

func TestCalculateDecibels(t *testing.T) {
	l := Calculate([]float64{1, -1, 1, -1})

	if math.Abs(l.RMS_dB) > tolerance || math.Abs(l.Peak_dB) > tolerance || math.Abs(l.CrestFactor_dB) > tolerance {
		t.Fatalf("dB levels %v %v %v, want 0", l.RMS_dB, l.Peak_dB, l.CrestFactor_dB)
	}

	if !math.IsInf(l.DC_dB, -1) {
		t.Fatalf("DC_dB = %v, want -Inf", l.DC_dB)
	}

	if l.PeakPos != 0 {
		t.Fatalf("PeakPos = %d, want first occurrence", l.PeakPos)
	}
}

func TestEmpty(t *testing.T) {
	l := Calculate(nil)

	if l.Length != 0 || !math.IsInf(l.RMS_dB, -1) || !math.IsInf(l.Peak_dB, -1) {
		t.Fatalf("empty levels %+v", l)
	}

	silent := Calculate(make([]float64, 8))
	if silent.CrestFactor != 0 || silent.CrestFactor_dB != 0 {
		t.Fatalf("silent crest %v %v", silent.CrestFactor, silent.CrestFactor_dB)
	}
}

func TestMeterMatchesCalculate(t *testing.T) {
	signal := sine(0.8, 7, 64)
	signal[100] = 1.2

	want := Calculate(signal)

	var m Meter
	for start := 0; start < len(signal); start += 37 {
		m.Update(signal[start:min(start+37, len(signal))])
	}

	got := m.Result()
	if got != want {
		t.Fatalf("streamed %+v\nwant %+v", got, want)
	}

	m.Reset()
	if m.Result().Length != 0 {
		t.Fatal("Reset did not clear")
	}
}
