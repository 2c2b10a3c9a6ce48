package thd

import (
	"math"
	"testing"
)

func TestCalculateFromMagnitudeKnownSpectrum(t *testing.T) {
	cfg := Config{
		SampleRate:      48000,
		FFTSize:         48000,
		FundamentalFreq: 1000,
		RangeLowerFreq:  20,
		RangeUpperFreq:  5000,
		CaptureBins:     1,
	}

	mag := make([]float64, cfg.FFTSize/2+1)
	mag[1000] = 1.0
	mag[2000] = 0.1 * 0.1
	mag[3000] = 0.05 * 0.05
	mag[4500] = 0.02 * 0.02

	res := NewCalculator(cfg).CalculateFromMagnitude(mag)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"FundamentalFreq", res.FundamentalFreq, 1000},
		{"FundamentalLevel", res.FundamentalLevel, 1},
		{"THD", res.THD, 0.15},
		{"THDN", res.THDN, 0.17},
		{"Noise", res.Noise, 0.02},
		{"OddHD", res.OddHD, 0.05},
		{"EvenHD", res.EvenHD, 0.1},
		{"SINAD", res.SINAD, 20 * math.Log10(1/0.17)},
	}

	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-12 {
			t.Errorf("%s = %.12f, want %.12f", tt.name, tt.got, tt.want)
		}
	}

	// Harmonics 2 through 5 fit below 5 kHz.
	if len(res.Harmonics) != 4 {
		t.Fatalf("harmonic count = %d, want 4", len(res.Harmonics))
	}

	if math.Abs(res.Harmonics[0]-0.1) > 1e-12 || math.Abs(res.Harmonics[1]-0.05) > 1e-12 {
		t.Fatalf("harmonics = %v", res.Harmonics)
	}
}

func TestCalculateCaptureBins(t *testing.T) {
	cfg := Config{
		SampleRate:      48000,
		FFTSize:         48000,
		FundamentalFreq: 1000,
		RangeUpperFreq:  2500,
		CaptureBins:     1,
	}

	mag := make([]float64, cfg.FFTSize/2+1)
	mag[999] = 0.2 * 0.2
	mag[1000] = 1.0
	mag[1001] = 0.2 * 0.2
	mag[2000] = 0.1 * 0.1
	mag[2001] = 0.05 * 0.05

	res := NewCalculator(cfg).CalculateFromMagnitude(mag)

	if math.Abs(res.FundamentalLevel-1.4) > 1e-12 {
		t.Fatalf("fundamental level = %.12f, want 1.4", res.FundamentalLevel)
	}

	if math.Abs(res.THD-0.15/1.4) > 1e-12 {
		t.Fatalf("THD = %.12f, want %.12f", res.THD, 0.15/1.4)
	}
}

func TestCalculateAutodetectFundamental(t *testing.T) {
	cfg := Config{SampleRate: 48000, FFTSize: 48000, RangeUpperFreq: 5000, CaptureBins: 1}

	mag := make([]float64, cfg.FFTSize/2+1)
	mag[1000] = 0.8 * 0.8
	mag[1200] = 1.2 * 1.2
	mag[2400] = 0.1 * 0.1

	res := NewCalculator(cfg).CalculateFromMagnitude(mag)
	if math.Abs(res.FundamentalFreq-1200) > 1e-9 {
		t.Fatalf("fundamental = %f, want 1200", res.FundamentalFreq)
	}
}

func TestMaxHarmonicsLimitsCount(t *testing.T) {
	cfg := Config{SampleRate: 48000, FFTSize: 48000, FundamentalFreq: 1000, MaxHarmonics: 2, CaptureBins: 1}

	mag := make([]float64, cfg.FFTSize/2+1)
	mag[1000] = 1
	mag[4000] = 0.5 * 0.5

	res := NewCalculator(cfg).CalculateFromMagnitude(mag)
	if len(res.Harmonics) != 2 || res.THD != 0 {
		t.Fatalf("harmonics=%v THD=%v, want two zero harmonics", res.Harmonics, res.THD)
	}
}

func TestAnalyzeSignal(t *testing.T) {
	const (
		sr  = 48000.0
		n   = 4096
		bin = 64
	)

	freq := float64(bin) * sr / n

	tests := []struct {
		name   string
		h2, h3 float64
	}{
		{"pure", 0, 0},
		{"second", 0.02, 0},
		{"third", 0, 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Three FFT frames; only the last is analyzed.
			signal := make([]float64, 3*n)
			for i := range signal {
				p := 2 * math.Pi * freq * float64(i) / sr
				signal[i] = 0.5 * (math.Sin(p) + tt.h2*math.Sin(2*p) + tt.h3*math.Sin(3*p))
			}

			res := AnalyzeSignal(signal, Config{SampleRate: sr, FFTSize: n, FundamentalFreq: freq})

			want := tt.h2 + tt.h3
			if math.Abs(res.THD-want) > 1e-6 {
				t.Fatalf("THD = %g, want %g", res.THD, want)
			}

			if math.Abs(res.EvenHD-tt.h2) > 1e-6 || math.Abs(res.OddHD-tt.h3) > 1e-6 {
				t.Fatalf("even=%g odd=%g, want %g %g", res.EvenHD, res.OddHD, tt.h2, tt.h3)
			}
		})
	}
}

func TestAnalyzeSignalEmpty(t *testing.T) {
	if res := AnalyzeSignal(nil, Config{}); res.FundamentalLevel != 0 || res.Harmonics != nil {
		t.Fatalf("expected zero result, got %+v", res)
	}
}
