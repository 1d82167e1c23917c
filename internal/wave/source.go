// Package wave renders band-unlimited oscillator waveforms into float32
// buffers, with optional envelope shaping and LFO or slide modulation.
package wave

import (
	"math"
	"math/rand"
	"time"

	"github.com/rogueop/rogueop-go/internal/envelope"
)

const (
	DefaultSampleRate = 11025
	DefaultBitDepth   = 8

	// pinkMinFreq bounds the longest pink noise run to a quarter of its period.
	pinkMinFreq = 100
)

// Source is a stateful waveform generator. Phase is kept in sample units
// over [0, sampleRate), so a tabled kind indexes its table by phase directly.
//
// A Source is not safe for concurrent use.
type Source struct {
	kind       Kind
	sampleRate int
	sr         float32
	phase      float32
	duty       float32
	env        *envelope.ADSHR
	table      []float32
	rng        *rand.Rand
	seed       int64
	seeded     bool

	pink  pinkState
	slide slideState
}

type pinkState struct {
	left int
	flip float32
	amp  float32
}

type slideState struct {
	active bool
	mode   Modulation
	target float32
	value  float32
	step   float32
	left   int
}

// Option configures a Source at construction.
type Option func(*Source)

func WithSampleRate(rate int) Option {
	return func(s *Source) { s.sampleRate = rate }
}

// WithDuty sets the duty cycle, clamped to [0, 1].
func WithDuty(duty float32) Option {
	return func(s *Source) { s.duty = clamp(duty, 0, 1) }
}

func WithEnvelope(env *envelope.ADSHR) Option {
	return func(s *Source) { s.env = env }
}

// WithSeed makes noise kinds reproducible.
func WithSeed(seed int64) Option {
	return func(s *Source) {
		s.seed = seed
		s.seeded = true
	}
}

// New creates a Source of the given kind.
func New(kind Kind, opts ...Option) (*Source, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	s := &Source{
		kind:       kind,
		sampleRate: DefaultSampleRate,
		duty:       0.5,
		pink:       pinkState{flip: 1},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	s.sr = float32(s.sampleRate)
	if !s.seeded {
		s.seed = time.Now().UnixNano()
	}
	s.rng = rand.New(rand.NewSource(s.seed))
	if kind.tabled() {
		s.table = tables.get(kind, s.sampleRate)
	}
	return s, nil
}

func (s *Source) Kind() Kind                    { return s.kind }
func (s *Source) SampleRate() int               { return s.sampleRate }
func (s *Source) Phase() float32                { return s.phase }
func (s *Source) Duty() float32                 { return s.duty }
func (s *Source) Envelope() *envelope.ADSHR     { return s.env }
func (s *Source) SetEnvelope(e *envelope.ADSHR) { s.env = e }

func (s *Source) SetDuty(duty float32) { s.duty = clamp(duty, 0, 1) }

// SetPhase sets the phase as a fraction of one cycle.
func (s *Source) SetPhase(fraction float32) { s.phase = s.wrap(fraction * s.sr) }

// Reset rewinds phase, noise, slide and envelope state. The noise generator
// restarts from its seed.
func (s *Source) Reset() {
	s.phase = 0
	s.pink = pinkState{flip: 1}
	s.slide = slideState{}
	s.rng = rand.New(rand.NewSource(s.seed))
	if s.env != nil {
		s.env.Reset()
	}
}

// Sample returns the raw waveform value at phase using the current duty.
func (s *Source) Sample(phase float32) float32 {
	return s.sample(s.wrap(phase), s.duty)
}

func (s *Source) sample(phase, duty float32) float32 {
	switch s.kind {
	case Pulse:
		if phase < s.sr*duty {
			return 1
		}
		return -1
	case WhiteNoise:
		return s.rng.Float32()*2 - 1
	case FMNoise:
		if s.rng.Int63()&1 == 0 {
			return 1
		}
		return -1
	case PinkNoise:
		return s.pinkSample()
	default:
		i := int(phase)
		if i >= len(s.table) {
			i = len(s.table) - 1
		}
		if i < 0 {
			i = 0
		}
		return s.table[i]
	}
}

// pinkSample holds a value for a random run then flips polarity. Runs are
// biased toward short lengths and longer runs come out louder.
func (s *Source) pinkSample() float32 {
	if s.pink.left <= 0 {
		maxRun := max(s.sampleRate/(4*pinkMinFreq), 1)
		r := s.rng.Float32()
		run := min(1+int(r*r*float32(maxRun)), maxRun)
		s.pink.left = run
		s.pink.amp = s.pink.flip * (float32(run)/float32(maxRun) + 1) * 0.5
	}
	s.pink.left--
	if s.pink.left == 0 {
		s.pink.flip = -s.pink.flip
	}
	return s.pink.amp
}

func (s *Source) wrap(phase float32) float32 {
	if phase >= 0 && phase < s.sr {
		return phase
	}
	if math.IsNaN(float64(phase)) || math.IsInf(float64(phase), 0) {
		return 0
	}
	p := float64(phase)
	sr := float64(s.sr)
	p -= sr * math.Floor(p/sr)
	if p < 0 || p >= sr {
		return 0
	}
	return float32(p)
}

// advance moves the phase one sample forward at freq. Tabled kinds spend
// duty of the cycle in the first half and 1-duty in the second.
func (s *Source) advance(freq, duty, scale float32) {
	if freq <= 0 {
		return
	}
	step := freq
	if s.kind.tabled() {
		half := s.sr / 2
		var portion float32
		if s.phase < half {
			portion = duty
			if portion <= 0 {
				s.phase = half
				portion = 1 - duty
			}
		} else {
			portion = 1 - duty
			if portion <= 0 {
				s.phase = 0
				portion = duty
			}
		}
		step = freq / (2 * portion)
	}
	s.phase = s.wrap(s.phase + step*max(scale, 0))
}

// Clip limits v to [-1, 1].
func Clip(v float32) float32 { return clamp(v, -1, 1) }

// Period returns the length of one cycle of freq in samples.
func Period(sampleRate int, freq float32) float32 {
	if freq <= 0 {
		return 0
	}
	return float32(sampleRate) / freq
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
