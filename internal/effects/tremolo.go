package effects

import (
	"fmt"

	"github.com/rogueop/rogueop-go/internal/wave"
)

// Tremolo modulates amplitude with a free-running waveform. At full depth the
// gain swings between 0 and 1.
type Tremolo struct {
	lfo   *wave.Source
	rate  float32
	depth float32
	mod   []float32
}

// NewTremolo creates a tremolo driven by an LFO of the given kind.
// rateHz: modulation rate
// depth: 0..1
func NewTremolo(sampleRate int, kind wave.Kind, rateHz, depth float32) (*Tremolo, error) {
	lfo, err := wave.New(kind, wave.WithSampleRate(sampleRate))
	if err != nil {
		return nil, fmt.Errorf("tremolo: %w", err)
	}
	return &Tremolo{lfo: lfo, rate: max(rateHz, 0), depth: clamp(depth, 0, 1)}, nil
}

func (t *Tremolo) Process(buf []float32) {
	if cap(t.mod) < len(buf) {
		t.mod = make([]float32, len(buf))
	}
	mod := t.mod[:len(buf)]
	t.lfo.SynthBasic(mod, t.rate, 0, 1, true)
	for i := range buf {
		buf[i] *= 1 - t.depth*(1-mod[i])/2
	}
}

func (t *Tremolo) Reset() { t.lfo.Reset() }
