package main

import (
	"math"

	"github.com/cwbudde/algo-tape/dsp/tape"
	"github.com/cwbudde/algo-tape/measure/thd"
	timestats "github.com/cwbudde/algo-tape/stats/time"
)

type settings struct {
	sampleRate float64
	freq       float64
	amplitude  float64
	drive      float64
	saturation float64
	bias       float64
	fftSize    int
}

type row struct {
	model  tape.Model
	solver tape.Solver
	thd    thd.Result
	levels timestats.Levels
}

// label names the solver column; the simple model has none.
func (r row) label() string {
	if r.model == tape.ModelSimple {
		return "-"
	}

	return r.solver.String()
}

type combo struct {
	model  tape.Model
	solver tape.Solver
}

func combos(models []tape.Model) []combo {
	var out []combo

	for _, m := range models {
		if m == tape.ModelSimple {
			out = append(out, combo{m, tape.SolverRK4})
			continue
		}

		for _, s := range tape.Solvers() {
			out = append(out, combo{m, s})
		}
	}

	return out
}

// binFrequency moves freq onto the nearest FFT bin so the analysis is
// free of leakage.
func binFrequency(freq, sampleRate float64, fftSize int) float64 {
	binHz := sampleRate / float64(fftSize)
	return math.Max(1, math.Round(freq/binHz)) * binHz
}

// analyze renders three FFT frames of a sine through each combination and
// measures the last one.
func analyze(cfg settings, models []tape.Model) ([]row, error) {
	freq := binFrequency(cfg.freq, cfg.sampleRate, cfg.fftSize)
	n := cfg.fftSize * 3

	in := make([]float64, n)
	for i := range in {
		in[i] = cfg.amplitude * math.Sin(2*math.Pi*freq*float64(i)/cfg.sampleRate)
	}

	calc := thd.NewCalculator(thd.Config{
		SampleRate:      cfg.sampleRate,
		FFTSize:         cfg.fftSize,
		FundamentalFreq: freq,
	})

	var rows []row

	for _, c := range combos(models) {
		sat, err := tape.New(
			tape.WithModel(c.model),
			tape.WithSolver(c.solver),
			tape.WithDrive(cfg.drive),
			tape.WithSaturation(cfg.saturation),
			tape.WithBias(cfg.bias),
		)
		if err != nil {
			return nil, err
		}

		if err := sat.Prepare(cfg.sampleRate, n); err != nil {
			return nil, err
		}

		out := append([]float64(nil), in...)
		sat.ProcessInPlace(out)

		rows = append(rows, row{
			model:  c.model,
			solver: c.solver,
			thd:    calc.AnalyzeSignal(out),
			levels: timestats.Calculate(out[n-cfg.fftSize:]),
		})
	}

	return rows, nil
}
