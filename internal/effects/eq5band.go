package effects

import (
	"math"
	"sync/atomic"
)

// Bands is the number of EQ5Band bands.
const Bands = 5

var crossovers = [Bands - 1]float64{200, 800, 2500, 8000}

// EQ5Band is the master equalizer. Bands split at 200Hz, 800Hz, 2.5kHz and
// 8kHz. Gains are float32 bit patterns so the control side can update them
// while the audio side is reading.
type EQ5Band struct {
	gains  [Bands]atomic.Uint32
	alphas [Bands - 1]float32
	lp     [Bands - 1]float32
}

// NewEQ5Band creates a 5-band EQ with all gains at unity.
func NewEQ5Band(sampleRate int) *EQ5Band {
	eq := &EQ5Band{}
	for i, f := range crossovers {
		eq.alphas[i] = onePole(sampleRate, f)
	}
	for i := range eq.gains {
		eq.gains[i].Store(math.Float32bits(1))
	}
	return eq
}

// SetGain sets the gain of band 0-4. 1.0 = unity, 0.0 = silence, 2.0 = +6dB.
// Out-of-range bands are ignored.
func (eq *EQ5Band) SetGain(band int, gain float32) {
	if band >= 0 && band < Bands {
		eq.gains[band].Store(math.Float32bits(max(gain, 0)))
	}
}

func (eq *EQ5Band) Gain(band int) float32 {
	if band >= 0 && band < Bands {
		return math.Float32frombits(eq.gains[band].Load())
	}
	return 1
}

func (eq *EQ5Band) Process(buf []float32) {
	var g [Bands]float32
	for b := range g {
		g[b] = math.Float32frombits(eq.gains[b].Load())
	}
	for i, x := range buf {
		var out float32
		rem := x
		for b := range eq.lp {
			eq.lp[b] += eq.alphas[b] * (rem - eq.lp[b])
			out += eq.lp[b] * g[b]
			rem -= eq.lp[b]
		}
		buf[i] = out + rem*g[Bands-1]
	}
}

func (eq *EQ5Band) Reset() { clear(eq.lp[:]) }
