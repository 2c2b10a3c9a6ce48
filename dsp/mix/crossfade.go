package mix

// Crossfade is a linear position ramp from 0 to 1 that yields equal-power
// gains for an outgoing and an incoming source.
type Crossfade struct {
	step   int
	length int
	active bool
}

// Start begins a fade lasting the given number of samples. A non-positive
// length finishes immediately.
func (c *Crossfade) Start(samples int) {
	if samples <= 0 {
		c.Cancel()
		return
	}

	c.step = 0
	c.length = samples
	c.active = true
}

// Reverse swaps the roles of the two sources while keeping both gains
// continuous. It is a no-op when no fade is running.
func (c *Crossfade) Reverse() {
	if !c.active {
		return
	}

	c.step = c.length - c.step
}

// Next advances the position one sample and returns the outgoing and
// incoming gains. Once the fade completes it returns (0, 1).
func (c *Crossfade) Next() (from, to float64) {
	if !c.active {
		return 0, 1
	}

	c.step++
	if c.step >= c.length {
		c.step = c.length
		c.active = false
	}

	return EqualPower(c.Position())
}

// Cancel stops any running fade with the incoming source fully selected.
func (c *Crossfade) Cancel() {
	c.step = 0
	c.length = 0
	c.active = false
}

// Active reports whether a fade is in progress.
func (c *Crossfade) Active() bool { return c.active }

// Length returns the length of the current or last fade in samples.
func (c *Crossfade) Length() int { return c.length }

// Position returns the current fade position in [0, 1].
func (c *Crossfade) Position() float64 {
	if c.length == 0 {
		return 1
	}

	return float64(c.step) / float64(c.length)
}
