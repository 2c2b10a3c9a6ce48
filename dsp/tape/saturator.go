package tape

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tape/dsp/core"
	"github.com/cwbudde/algo-tape/dsp/filter/dcblock"
	"github.com/cwbudde/algo-tape/dsp/mix"
	"github.com/cwbudde/algo-tape/dsp/smooth"
)

// Saturator is a single-channel tape saturation processor.
//
// The zero value is not usable; construct with [New]. Until [Saturator.Prepare]
// succeeds every processing call returns its input unchanged.
type Saturator struct {
	model     Model
	prevModel Model
	solver    Solver
	ja        JAParams

	drive      smooth.Smoother
	saturation smooth.Smoother
	bias       smooth.Smoother
	mix        smooth.Smoother

	simple simpleModel
	hyst   hysteresisModel
	fade   mix.Crossfade
	dc     dcblock.Blocker

	sampleRate   float64
	maxBlockSize int
	fadeSamples  int
	prepared     bool

	wet     []float64
	gains   []float64
	scratch []float64
}

// New creates a Saturator with default parameters modified by opts.
// Option errors are returned unchanged.
func New(opts ...Option) (*Saturator, error) {
	st := DefaultState()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&st)
		if err != nil {
			return nil, err
		}
	}

	s := &Saturator{}
	s.ApplyState(st)

	return s, nil
}

// Prepare binds the sample rate and the largest block Process will see,
// allocates scratch buffers and clears all processing state. It may be
// called again to change either value.
//
// On error the Saturator is left unprepared and passes audio through.
func (s *Saturator) Prepare(sampleRate float64, maxBlockSize int) error {
	return s.PrepareConfig(core.ProcessorConfig{SampleRate: sampleRate, BlockSize: maxBlockSize})
}

// PrepareConfig is Prepare taking a shared processor configuration.
func (s *Saturator) PrepareConfig(cfg core.ProcessorConfig) error {
	if err := cfg.Validate(); err != nil {
		s.prepared = false
		return fmt.Errorf("tape: %w", err)
	}

	for _, sm := range s.smoothers() {
		if err := sm.Prepare(cfg.SampleRate); err != nil {
			s.prepared = false
			return fmt.Errorf("tape: %w", err)
		}
	}

	if err := s.dc.Prepare(cfg.SampleRate); err != nil {
		s.prepared = false
		return fmt.Errorf("tape: %w", err)
	}

	s.simple.prepare(cfg.SampleRate)
	s.hyst.prepare(cfg.SampleRate)

	s.sampleRate = cfg.SampleRate
	s.maxBlockSize = cfg.BlockSize
	s.fadeSamples = max(1, int(math.Round(crossfadeSeconds*cfg.SampleRate)))

	s.wet = core.EnsureLen(s.wet, cfg.BlockSize)
	s.gains = core.EnsureLen(s.gains, cfg.BlockSize)
	s.scratch = core.EnsureLen(s.scratch, cfg.BlockSize)

	s.prevModel = s.model
	s.fade.Cancel()
	s.prepared = true

	return nil
}

// Reset clears filter memory, magnetization and any running crossfade, and
// snaps every smoothed parameter to its target. Targets are kept.
func (s *Saturator) Reset() {
	for _, sm := range s.smoothers() {
		sm.Reset()
	}

	s.simple.reset()
	s.hyst.reset()
	s.dc.Reset()
	s.fade.Cancel()
	s.prevModel = s.model
}

// SetModel selects the transfer model. A change while prepared starts an
// equal-power crossfade; selecting the outgoing model during a fade
// reverses it. Unknown values are ignored.
func (s *Saturator) SetModel(model Model) {
	if !model.Valid() || model == s.model {
		return
	}

	if !s.prepared {
		s.model = model
		s.prevModel = model

		return
	}

	if s.fade.Active() {
		// With two models the requested one is the outgoing one.
		s.prevModel, s.model = s.model, model
		s.fade.Reverse()

		return
	}

	s.resetModel(model)
	s.prevModel = s.model
	s.model = model
	s.fade.Start(s.fadeSamples)
}

// SetSolver selects the hysteresis integrator. It takes effect on the next
// sample and keeps the magnetization. Unknown values are ignored.
func (s *Saturator) SetSolver(solver Solver) {
	if solver.Valid() {
		s.solver = solver
	}
}

// SetDrive sets the drive target, clamped to [MinDrive, MaxDrive].
func (s *Saturator) SetDrive(drive float64) {
	if core.IsFinite(drive) {
		s.drive.SetTarget(core.Clamp(drive, MinDrive, MaxDrive))
	}
}

// SetSaturation sets the saturation target, clamped to [0, 1].
func (s *Saturator) SetSaturation(saturation float64) {
	if core.IsFinite(saturation) {
		s.saturation.SetTarget(core.Clamp(saturation, 0, 1))
	}
}

// SetBias sets the bias target, clamped to [MinBias, MaxBias].
func (s *Saturator) SetBias(bias float64) {
	if core.IsFinite(bias) {
		s.bias.SetTarget(core.Clamp(bias, MinBias, MaxBias))
	}
}

// SetMix sets the dry/wet target, clamped to [0, 1].
func (s *Saturator) SetMix(amount float64) {
	if core.IsFinite(amount) {
		s.mix.SetTarget(core.Clamp(amount, 0, 1))
	}
}

// SetJAParams replaces the Jiles-Atherton coefficients without clamping.
// Sets containing NaN or Inf are ignored.
func (s *Saturator) SetJAParams(p JAParams) {
	if p.finite() {
		s.ja = p
	}
}

// SetFastCurve toggles the approximate tanh in the simple model.
func (s *Saturator) SetFastCurve(enabled bool) {
	s.simple.fast = enabled
}

// State returns the current parameter targets.
func (s *Saturator) State() State {
	return State{
		Model:      s.model,
		Solver:     s.solver,
		Drive:      s.drive.Target(),
		Saturation: s.saturation.Target(),
		Bias:       s.bias.Target(),
		Mix:        s.mix.Target(),
		JA:         s.ja,
		FastCurve:  s.simple.fast,
	}
}

// ApplyState writes every parameter in st through its setter.
func (s *Saturator) ApplyState(st State) {
	s.SetModel(st.Model)
	s.SetSolver(st.Solver)
	s.SetDrive(st.Drive)
	s.SetSaturation(st.Saturation)
	s.SetBias(st.Bias)
	s.SetMix(st.Mix)
	s.SetJAParams(st.JA)
	s.SetFastCurve(st.FastCurve)
}

// ProcessSample processes one sample.
func (s *Saturator) ProcessSample(x float64) float64 {
	if !s.prepared || s.bypassed() {
		return x
	}

	x = core.SanitizeFinite(x)
	g := s.mix.Next()
	wet := s.wetSample(x)

	return core.SanitizeFinite(mix.DryWet(x, wet, g))
}

// Process transforms the first n samples of buf in place. n is clamped to
// len(buf); n <= 0 is a no-op.
func (s *Saturator) Process(buf []float64, n int) {
	n = min(n, len(buf))
	if n <= 0 || !s.prepared {
		return
	}

	for start := 0; start < n; start += s.maxBlockSize {
		end := min(start+s.maxBlockSize, n)
		s.processChunk(buf[start:end])
	}
}

// ProcessInPlace transforms all of buf in place.
func (s *Saturator) ProcessInPlace(buf []float64) {
	s.Process(buf, len(buf))
}

func (s *Saturator) processChunk(buf []float64) {
	if s.bypassed() {
		return
	}

	n := len(buf)
	wet := s.wet[:n]
	gains := s.gains[:n]

	for i, x := range buf {
		x = core.SanitizeFinite(x)
		buf[i] = x
		wet[i] = s.wetSample(x)
	}

	s.mix.Fill(gains)
	mix.DryWetBlock(buf, buf, wet, gains, s.scratch[:n])

	for i, y := range buf {
		buf[i] = core.SanitizeFinite(y)
	}
}

// bypassed reports whether the smoothed mix rests at its lower bound.
func (s *Saturator) bypassed() bool {
	return !s.mix.IsSmoothing() && s.mix.Current() == 0
}

// wetSample advances the drive, saturation and bias smoothers and returns
// the DC-blocked model output.
func (s *Saturator) wetSample(x float64) float64 {
	drive := s.drive.Next()
	saturation := s.saturation.Next()
	bias := s.bias.Next()

	y := s.modelSample(s.model, x, drive, saturation, bias)

	if s.fade.Active() {
		old := s.modelSample(s.prevModel, x, drive, saturation, bias)
		from, to := s.fade.Next()
		y = float64(from*old) + float64(to*y)
	}

	y = s.dc.ProcessSample(core.SanitizeFinite(y))

	return core.FlushDenormals(y)
}

func (s *Saturator) modelSample(model Model, x, drive, saturation, bias float64) float64 {
	if model == ModelSimple {
		return s.simple.process(x, drive, saturation, bias)
	}

	return s.hyst.process(x, drive, saturation, bias, s.solver, &s.ja)
}

func (s *Saturator) resetModel(model Model) {
	if model == ModelSimple {
		s.simple.reset()
	} else {
		s.hyst.reset()
	}
}

func (s *Saturator) smoothers() [4]*smooth.Smoother {
	return [4]*smooth.Smoother{&s.drive, &s.saturation, &s.bias, &s.mix}
}

// Model returns the selected model. During a crossfade this is the
// incoming one.
func (s *Saturator) Model() Model { return s.model }

// Solver returns the selected hysteresis solver.
func (s *Saturator) Solver() Solver { return s.solver }

// Drive returns the drive target.
func (s *Saturator) Drive() float64 { return s.drive.Target() }

// Saturation returns the saturation target.
func (s *Saturator) Saturation() float64 { return s.saturation.Target() }

// Bias returns the bias target.
func (s *Saturator) Bias() float64 { return s.bias.Target() }

// Mix returns the dry/wet target.
func (s *Saturator) Mix() float64 { return s.mix.Target() }

// JAParams returns the Jiles-Atherton coefficients.
func (s *Saturator) JAParams() JAParams { return s.ja }

// FastCurve reports whether the approximate tanh is enabled.
func (s *Saturator) FastCurve() bool { return s.simple.fast }

// SampleRate returns the prepared sample rate, or 0 before Prepare.
func (s *Saturator) SampleRate() float64 { return s.sampleRate }

// MaxBlockSize returns the prepared block size, or 0 before Prepare.
func (s *Saturator) MaxBlockSize() int { return s.maxBlockSize }

// Prepared reports whether Prepare has succeeded.
func (s *Saturator) Prepared() bool { return s.prepared }

// TScale returns 44100 / SampleRate, or 1 before Prepare.
func (s *Saturator) TScale() float64 { return core.TimeScale(s.sampleRate) }

// Magnetization returns the hysteresis model state.
func (s *Saturator) Magnetization() float64 { return s.hyst.m }

// Crossfading reports whether a model crossfade is running.
func (s *Saturator) Crossfading() bool { return s.fade.Active() }
