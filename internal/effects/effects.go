// Package effects holds mono buffer processors that can be chained after an
// oscillator. Every effect keeps its filter and delay-line state between
// calls, so consecutive buffers are treated as one continuous signal.
package effects

import "math"

// Effector transforms a mono buffer in place.
type Effector interface {
	Process(buf []float32)
	Reset()
}

// Chain applies a sequence of effects in order.
type Chain struct {
	effects []Effector
}

func NewChain(effects ...Effector) *Chain {
	return &Chain{effects: effects}
}

func (c *Chain) Process(buf []float32) {
	for _, e := range c.effects {
		e.Process(buf)
	}
}

func (c *Chain) Reset() {
	for _, e := range c.effects {
		e.Reset()
	}
}

func (c *Chain) Add(e Effector) {
	c.effects = append(c.effects, e)
}

func (c *Chain) Len() int { return len(c.effects) }

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// onePole returns the smoothing coefficient of a one-pole lowpass at cutoff.
func onePole(sampleRate int, cutoff float64) float32 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	dt := 1.0 / float64(sampleRate)
	return float32(dt / (rc + dt))
}
