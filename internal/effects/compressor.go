package effects

import "math"

// Compressor reduces gain above a threshold using a peak envelope follower.
type Compressor struct {
	threshold float32
	ratio     float32
	attack    float32 // coefficient
	release   float32 // coefficient
	makeup    float32
	env       float32
}

// NewCompressor creates a compressor effect.
// thresholdDB: threshold in dB (e.g., -20)
// ratio: compression ratio (e.g., 4 for 4:1), at least 1
// attackMs, releaseMs: follower times in ms
// makeupDB: makeup gain in dB
func NewCompressor(sampleRate int, thresholdDB, ratio, attackMs, releaseMs, makeupDB float32) *Compressor {
	return &Compressor{
		threshold: dbToGain(thresholdDB),
		ratio:     max(ratio, 1),
		attack:    follower(sampleRate, attackMs),
		release:   follower(sampleRate, releaseMs),
		makeup:    dbToGain(makeupDB),
	}
}

func (c *Compressor) Process(buf []float32) {
	for i, x := range buf {
		level := float32(math.Abs(float64(x)))
		if level > c.env {
			c.env += c.attack * (level - c.env)
		} else {
			c.env += c.release * (level - c.env)
		}
		buf[i] = x * c.gain() * c.makeup
	}
}

func (c *Compressor) gain() float32 {
	if c.env <= c.threshold || c.threshold <= 0 {
		return 1
	}
	over := c.env / c.threshold
	return float32(math.Pow(float64(over), float64(1/c.ratio-1)))
}

func (c *Compressor) Reset() { c.env = 0 }

func dbToGain(db float32) float32 {
	return float32(math.Pow(10, float64(db)/20))
}

func follower(sampleRate int, ms float32) float32 {
	n := float64(ms) * float64(sampleRate) / 1000.0
	if n <= 0 {
		return 1
	}
	return float32(1 - math.Exp(-1/n))
}
