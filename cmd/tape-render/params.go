package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwbudde/algo-tape/dsp/tape"
)

// paramFile is the JSON schema for saved saturator settings. Missing fields
// keep their current value.
type paramFile struct {
	Model      string    `json:"model"`
	Solver     string    `json:"solver"`
	Drive      *float64  `json:"drive"`
	Saturation *float64  `json:"saturation"`
	Bias       *float64  `json:"bias"`
	Mix        *float64  `json:"mix"`
	FastCurve  *bool     `json:"fast_curve"`
	JA         *jaParams `json:"ja"`
}

type jaParams struct {
	A     *float64 `json:"a"`
	Alpha *float64 `json:"alpha"`
	C     *float64 `json:"c"`
	K     *float64 `json:"k"`
	Ms    *float64 `json:"ms"`
}

func loadParams(path string) (*paramFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f paramFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &f, nil
}

// apply writes f onto st. Range checks match the saturator options.
func (f *paramFile) apply(st *tape.State) error {
	if f == nil {
		return nil
	}

	var opts []tape.Option

	if f.Model != "" {
		m, err := tape.ParseModel(f.Model)
		if err != nil {
			return err
		}

		opts = append(opts, tape.WithModel(m))
	}

	if f.Solver != "" {
		s, err := tape.ParseSolver(f.Solver)
		if err != nil {
			return err
		}

		opts = append(opts, tape.WithSolver(s))
	}

	if f.Drive != nil {
		opts = append(opts, tape.WithDrive(*f.Drive))
	}
	if f.Saturation != nil {
		opts = append(opts, tape.WithSaturation(*f.Saturation))
	}
	if f.Bias != nil {
		opts = append(opts, tape.WithBias(*f.Bias))
	}
	if f.Mix != nil {
		opts = append(opts, tape.WithMix(*f.Mix))
	}
	if f.FastCurve != nil {
		opts = append(opts, tape.WithFastCurve(*f.FastCurve))
	}

	if f.JA != nil {
		p := st.JA
		setIf(&p.A, f.JA.A)
		setIf(&p.Alpha, f.JA.Alpha)
		setIf(&p.C, f.JA.C)
		setIf(&p.K, f.JA.K)
		setIf(&p.Ms, f.JA.Ms)
		opts = append(opts, tape.WithJAParams(p))
	}

	for _, opt := range opts {
		if err := opt(st); err != nil {
			return err
		}
	}

	return nil
}

func setIf(dst, src *float64) {
	if src != nil {
		*dst = *src
	}
}

// fileFromState is the inverse of apply, used by -save-params.
func fileFromState(st tape.State) *paramFile {
	return &paramFile{
		Model:      st.Model.String(),
		Solver:     st.Solver.String(),
		Drive:      &st.Drive,
		Saturation: &st.Saturation,
		Bias:       &st.Bias,
		Mix:        &st.Mix,
		FastCurve:  &st.FastCurve,
		JA: &jaParams{
			A:     &st.JA.A,
			Alpha: &st.JA.Alpha,
			C:     &st.JA.C,
			K:     &st.JA.K,
			Ms:    &st.JA.Ms,
		},
	}
}

func saveParams(path string, st tape.State) error {
	b, err := json.MarshalIndent(fileFromState(st), "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(b, '\n'), 0o644)
}
