package effects

import "math"

// Chorus is a sine-modulated delay; short delays with feedback give a flanger.
type Chorus struct {
	line     []float32
	pos      int
	depth    float32 // samples
	rate     float64 // radians per sample
	phase    float64
	feedback float32
	wet      float32
}

// NewChorus creates a chorus/flanger effect.
// delayMs: base delay time in ms (typically 5-30ms)
// feedback: feedback amount 0..0.9
// depthMs: modulation depth in ms
// rateHz: modulation rate in Hz (typically 0.1-5Hz)
// wet: wet/dry mix 0..1
func NewChorus(sampleRate int, delayMs, feedback, depthMs, rateHz, wet float32) *Chorus {
	base := int(float64(delayMs) * float64(sampleRate) / 1000.0)
	depth := float64(depthMs) * float64(sampleRate) / 1000.0
	return &Chorus{
		line:     make([]float32, max(base+int(depth)+2, 4)),
		depth:    float32(depth),
		rate:     2.0 * math.Pi * float64(rateHz) / float64(sampleRate),
		feedback: clamp(feedback, 0, 0.9),
		wet:      clamp(wet, 0, 1),
	}
}

func (c *Chorus) Process(buf []float32) {
	size := len(c.line)
	for i, x := range buf {
		mod := float32(math.Sin(c.phase)) * c.depth
		c.phase += c.rate
		if c.phase > 2*math.Pi {
			c.phase -= 2 * math.Pi
		}
		c.line[c.pos] = x

		// fractional read behind the write head
		readPos := float32(c.pos) - (float32(size/2) + mod)
		for readPos < 0 {
			readPos += float32(size)
		}
		idx := int(readPos) % size
		next := (idx + 1) % size
		frac := readPos - float32(int(readPos))
		delayed := c.line[idx]*(1-frac) + c.line[next]*frac

		c.line[c.pos] += delayed * c.feedback
		c.pos = (c.pos + 1) % size
		buf[i] = x*(1-c.wet) + delayed*c.wet
	}
}

func (c *Chorus) Reset() {
	clear(c.line)
	c.pos = 0
	c.phase = 0
}
