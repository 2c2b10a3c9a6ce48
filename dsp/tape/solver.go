package tape

import "math"

const (
	langevinSeriesLimit = 1e-2
	newtonSlopeFloor    = 1e-12
)

// langevin returns L(q) = coth(q) - 1/q and its first two derivatives.
// A truncated series replaces the closed forms near zero where they cancel.
func langevin(q float64) (l, dl, ddl float64) {
	if math.Abs(q) < langevinSeriesLimit {
		q2 := q * q
		l = q * (1.0/3 - q2*(1.0/45-2*q2/945))
		dl = 1.0/3 - q2*(1.0/15-2*q2/189)
		ddl = q * (-2.0/15 + 8*q2/189)

		return l, dl, ddl
	}

	coth := 1 / math.Tanh(q)
	sh := math.Sinh(q)
	csch2 := 1 / (sh * sh)

	l = coth - 1/q
	dl = 1/(q*q) - csch2
	ddl = -2/(q*q*q) + 2*coth*csch2

	return l, dl, ddl
}

// jaEquation is the Jiles-Atherton magnetization rate for one set of
// effective coefficients.
type jaEquation struct {
	a, alpha, c, k, ms float64

	// evals counts rate evaluations.
	evals int
}

func newJAEquation(p JAParams, ceiling float64) jaEquation {
	return jaEquation{
		a:     p.A * ceiling,
		alpha: p.Alpha,
		c:     p.C,
		k:     p.K,
		ms:    p.Ms * ceiling,
	}
}

// rate returns dM/dt for magnetization m, field h and field rate hd.
func (e *jaEquation) rate(m, h, hd float64) float64 {
	v, _ := e.eval(m, h, hd, false)
	return v
}

// rateAndSlope returns dM/dt and its partial derivative with respect to m.
func (e *jaEquation) rateAndSlope(m, h, hd float64) (float64, float64) {
	return e.eval(m, h, hd, true)
}

func (e *jaEquation) eval(m, h, hd float64, slope bool) (float64, float64) {
	e.evals++

	q := (h + e.alpha*m) / e.a
	l, dl, ddl := langevin(q)

	diff := e.ms*l - m

	delta := 1.0
	if hd < 0 {
		delta = -1
	}

	// Irreversible motion only while M moves toward the anhysteretic curve.
	pinned := 0.0
	if (delta > 0) == (diff > 0) {
		pinned = 1
	}

	nc := 1 - e.c
	denom := nc*delta*e.k - e.alpha*diff

	f1 := 0.0
	if denom != 0 {
		f1 = nc * pinned * diff / denom
	}

	f2 := e.c * e.ms / e.a * dl
	f3 := 1 - e.alpha*f2

	if f3 == 0 {
		return 0, 0
	}

	v := hd * (f1 + f2) / f3
	if !slope {
		return v, 0
	}

	dq := e.alpha / e.a
	dDiff := e.ms*dl*dq - 1

	df1 := 0.0
	if denom != 0 {
		df1 = nc * pinned * dDiff * nc * delta * e.k / (denom * denom)
	}

	df2 := e.c * e.ms / e.a * ddl * dq
	df3 := -e.alpha * df2

	return v, hd * ((df1+df2)*f3 - (f1+f2)*df3) / (f3 * f3)
}

// step advances magnetization m by one sample with a single integrator
// step. The field moves linearly from hPrev to h over dt at constant rate
// hd. The result is bounded to the effective ceiling.
func (s Solver) step(e *jaEquation, m, hPrev, h, hd, dt float64) float64 {
	return bound(s.advance(e, m, hPrev, h, hd, dt), math.Abs(e.ms))
}

// Evaluations returns how many times the solver evaluates the
// magnetization rate per sample. Newton solvers count the explicit
// predictor plus one rate-and-slope evaluation per iteration.
func (s Solver) Evaluations() int {
	switch s {
	case SolverRK2:
		return 2
	case SolverNR4:
		return 1 + 4
	case SolverNR8:
		return 1 + 8
	default:
		return 4
	}
}

func (s Solver) advance(e *jaEquation, m, hPrev, h, hd, dt float64) float64 {
	switch s {
	case SolverRK2:
		return rk2(e, m, hPrev, h, hd, dt)
	case SolverNR4:
		return newtonTrapezoid(e, m, hPrev, h, hd, dt, 4)
	case SolverNR8:
		return newtonTrapezoid(e, m, hPrev, h, hd, dt, 8)
	default:
		return rk4(e, m, hPrev, h, hd, dt)
	}
}

// bound clamps m to [-limit, limit] and replaces non-finite values with 0.
func bound(m, limit float64) float64 {
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return 0
	}

	return max(-limit, min(limit, m))
}

// rk2 is Heun's method.
func rk2(e *jaEquation, m, hPrev, h, hd, dt float64) float64 {
	k1 := e.rate(m, hPrev, hd)
	k2 := e.rate(m+dt*k1, h, hd)

	return m + dt/2*(k1+k2)
}

func rk4(e *jaEquation, m, hPrev, h, hd, dt float64) float64 {
	mid := (hPrev + h) / 2

	k1 := e.rate(m, hPrev, hd)
	k2 := e.rate(m+dt/2*k1, mid, hd)
	k3 := e.rate(m+dt/2*k2, mid, hd)
	k4 := e.rate(m+dt*k3, h, hd)

	return m + dt/6*(k1+2*k2+2*k3+k4)
}

// newtonTrapezoid solves m' = m + dt/2 (f(m) + f(m')) for m' with a fixed
// number of Newton iterations, starting from the explicit Euler estimate.
func newtonTrapezoid(e *jaEquation, m, hPrev, h, hd, dt float64, iterations int) float64 {
	prev := e.rate(m, hPrev, hd)
	next := m + dt*prev

	for range iterations {
		f, df := e.rateAndSlope(next, h, hd)

		g := next - m - dt/2*(prev+f)
		dg := 1 - dt/2*df

		if math.Abs(dg) < newtonSlopeFloor {
			break
		}

		next -= g / dg
	}

	return next
}
