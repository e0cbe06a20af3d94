package loop

import "time"

// Clock turns variable frame times into a whole number of fixed ticks.
type Clock struct {
	Step     time.Duration
	MaxSteps int // Ticks allowed per Advance; older backlog is dropped

	acc time.Duration
}

// NewClock returns a clock ticking every step.
func NewClock(step time.Duration, maxSteps int) *Clock {
	return &Clock{Step: step, MaxSteps: maxSteps}
}

// Advance adds elapsed time and returns how many ticks are now due.
func (c *Clock) Advance(elapsed time.Duration) int {
	if c.Step <= 0 || elapsed < 0 {
		return 0
	}
	c.acc += elapsed
	n := int(c.acc / c.Step)
	if c.MaxSteps > 0 && n > c.MaxSteps {
		c.acc %= c.Step
		return c.MaxSteps
	}
	c.acc -= time.Duration(n) * c.Step
	return n
}
