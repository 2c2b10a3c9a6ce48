package tape

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-tape/dsp/core"
)

const (
	defaultDrive      = 1.0
	defaultSaturation = 0.5
	defaultBias       = 0.0
	defaultMix        = 1.0

	// MinDrive and MaxDrive bound the input gain.
	MinDrive = 0.01
	MaxDrive = 10.0
	// MinBias and MaxBias bound the offset added before the nonlinearity.
	MinBias = -1.0
	MaxBias = 1.0

	crossfadeSeconds = 0.010
)

// Model selects the transfer function.
type Model int

const (
	ModelSimple Model = iota
	ModelHysteresis
)

// String returns the lower-case model name.
func (m Model) String() string {
	switch m {
	case ModelSimple:
		return "simple"
	case ModelHysteresis:
		return "hysteresis"
	default:
		return fmt.Sprintf("Model(%d)", int(m))
	}
}

// Valid reports whether m names a known model.
func (m Model) Valid() bool {
	return m == ModelSimple || m == ModelHysteresis
}

// ParseModel converts a name produced by [Model.String] back to a Model.
func ParseModel(name string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "simple":
		return ModelSimple, nil
	case "hysteresis", "hyst", "ja":
		return ModelHysteresis, nil
	default:
		return 0, fmt.Errorf("tape: unknown model %q", name)
	}
}

// Models lists all models in declaration order.
func Models() []Model {
	return []Model{ModelSimple, ModelHysteresis}
}

// Solver selects the integrator used by [ModelHysteresis].
type Solver int

const (
	SolverRK2 Solver = iota
	SolverRK4
	SolverNR4
	SolverNR8
)

// String returns the upper-case solver name.
func (s Solver) String() string {
	switch s {
	case SolverRK2:
		return "RK2"
	case SolverRK4:
		return "RK4"
	case SolverNR4:
		return "NR4"
	case SolverNR8:
		return "NR8"
	default:
		return fmt.Sprintf("Solver(%d)", int(s))
	}
}

// Valid reports whether s names a known solver.
func (s Solver) Valid() bool {
	return s >= SolverRK2 && s <= SolverNR8
}

// ParseSolver converts a solver name, case-insensitively.
func ParseSolver(name string) (Solver, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "RK2":
		return SolverRK2, nil
	case "RK4":
		return SolverRK4, nil
	case "NR4":
		return SolverNR4, nil
	case "NR8":
		return SolverNR8, nil
	default:
		return 0, fmt.Errorf("tape: unknown solver %q", name)
	}
}

// Solvers lists all solvers in declaration order.
func Solvers() []Solver {
	return []Solver{SolverRK2, SolverRK4, SolverNR4, SolverNR8}
}

// JAParams holds the Jiles-Atherton coefficients. Fields are expressed in
// the normalized units of the input signal, where a full-scale sample
// applies a field of 1.
type JAParams struct {
	// A is the anhysteretic shape constant.
	A float64
	// Alpha is the inter-domain coupling.
	Alpha float64
	// C is the reversible fraction of magnetization in [0, 1].
	C float64
	// K is the pinning coefficient, which sets loop width.
	K float64
	// Ms is the saturation magnetization.
	Ms float64
}

// DefaultJAParams returns coefficients tuned for roughly unity small-signal
// gain and a narrow loop at moderate drive.
func DefaultJAParams() JAParams {
	return JAParams{
		A:     1.0 / 3.0,
		Alpha: 1.6e-3,
		C:     0.7,
		K:     0.47875,
		Ms:    1.0,
	}
}

func (p JAParams) finite() bool {
	for _, v := range [...]float64{p.A, p.Alpha, p.C, p.K, p.Ms} {
		if !core.IsFinite(v) {
			return false
		}
	}

	return true
}

// State is a snapshot of every host-settable parameter. It carries targets,
// not smoothed values.
type State struct {
	Model      Model
	Solver     Solver
	Drive      float64
	Saturation float64
	Bias       float64
	Mix        float64
	JA         JAParams
	FastCurve  bool
}

// DefaultState returns the parameters of a freshly constructed Saturator.
func DefaultState() State {
	return State{
		Model:      ModelHysteresis,
		Solver:     SolverRK4,
		Drive:      defaultDrive,
		Saturation: defaultSaturation,
		Bias:       defaultBias,
		Mix:        defaultMix,
		JA:         DefaultJAParams(),
	}
}

// Option mutates construction-time parameters.
type Option func(*State) error

// WithModel selects the initial transfer model.
func WithModel(model Model) Option {
	return func(st *State) error {
		if !model.Valid() {
			return fmt.Errorf("tape model is invalid: %d", model)
		}

		st.Model = model

		return nil
	}
}

// WithSolver selects the initial hysteresis solver.
func WithSolver(solver Solver) Option {
	return func(st *State) error {
		if !solver.Valid() {
			return fmt.Errorf("tape solver is invalid: %d", solver)
		}

		st.Solver = solver

		return nil
	}
}

// WithDrive sets input drive in [MinDrive, MaxDrive].
func WithDrive(drive float64) Option {
	return func(st *State) error {
		if drive < MinDrive || drive > MaxDrive || !core.IsFinite(drive) {
			return fmt.Errorf("tape drive must be in [%g, %g]: %f", MinDrive, MaxDrive, drive)
		}

		st.Drive = drive

		return nil
	}
}

// WithSaturation sets saturation intensity in [0, 1].
func WithSaturation(saturation float64) Option {
	return func(st *State) error {
		if saturation < 0 || saturation > 1 || !core.IsFinite(saturation) {
			return fmt.Errorf("tape saturation must be in [0, 1]: %f", saturation)
		}

		st.Saturation = saturation

		return nil
	}
}

// WithBias sets the pre-nonlinearity offset in [MinBias, MaxBias].
func WithBias(bias float64) Option {
	return func(st *State) error {
		if bias < MinBias || bias > MaxBias || !core.IsFinite(bias) {
			return fmt.Errorf("tape bias must be in [%g, %g]: %f", MinBias, MaxBias, bias)
		}

		st.Bias = bias

		return nil
	}
}

// WithMix sets dry/wet mix in [0, 1].
func WithMix(mix float64) Option {
	return func(st *State) error {
		if mix < 0 || mix > 1 || !core.IsFinite(mix) {
			return fmt.Errorf("tape mix must be in [0, 1]: %f", mix)
		}

		st.Mix = mix

		return nil
	}
}

// WithJAParams overrides the Jiles-Atherton coefficients. Values are not
// range-checked, only required to be finite.
func WithJAParams(p JAParams) Option {
	return func(st *State) error {
		if !p.finite() {
			return fmt.Errorf("tape Jiles-Atherton parameters must be finite: %+v", p)
		}

		st.JA = p

		return nil
	}
}

// WithFastCurve replaces math.Tanh in the simple model with a fast
// exponential approximation.
func WithFastCurve(enabled bool) Option {
	return func(st *State) error {
		st.FastCurve = enabled
		return nil
	}
}
