// Package synth builds playable voices out of wave sources: an Oscillator
// pairs a carrier with an optional LFO and an effects chain, a Registry
// tracks live oscillators, and a Mixer turns the registry into one stream.
package synth

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rogueop/rogueop-go/internal/effects"
	"github.com/rogueop/rogueop-go/internal/envelope"
	"github.com/rogueop/rogueop-go/internal/wave"
)

var (
	ErrNilRegistry = errors.New("synth: registry is nil")
	ErrBufferSize  = errors.New("synth: buffer size must be positive")
)

type config struct {
	sampleRate int
	freq       float32
	volume     float32
	phase      float32
	duty       float32
	mod        wave.Modulation
	depth      float32
	slideTo    float32
	slideTime  float32
	env        *envelope.ADSHR
	seed       int64
	seeded     bool

	lfo     bool
	lfoKind wave.Kind
	lfoFreq float32
}

func defaultConfig() config {
	return config{
		sampleRate: wave.DefaultSampleRate,
		volume:     0.5,
		duty:       0.5,
		depth:      1,
	}
}

// Option configures an Oscillator at construction.
type Option func(*config)

func WithSampleRate(rate int) Option {
	return func(c *config) { c.sampleRate = rate }
}

func WithFrequency(hz float32) Option {
	return func(c *config) { c.freq = hz }
}

// WithLFO attaches a modulation source of the given kind.
func WithLFO(kind wave.Kind, hz float32) Option {
	return func(c *config) {
		c.lfo = true
		c.lfoKind = kind
		c.lfoFreq = hz
	}
}

// WithModulation selects how the LFO or slide acts on the carrier. depth
// scales the LFO signal.
func WithModulation(mode wave.Modulation, depth float32) Option {
	return func(c *config) {
		c.mod = mode
		c.depth = depth
	}
}

// WithSlide sets the target and length in samples for the slide modes.
func WithSlide(target, samples float32) Option {
	return func(c *config) {
		c.slideTo = target
		c.slideTime = samples
	}
}

func WithVolume(v float32) Option {
	return func(c *config) { c.volume = v }
}

// WithPhase sets the phase offset as a fraction of a cycle.
func WithPhase(fraction float32) Option {
	return func(c *config) { c.phase = fraction }
}

func WithDuty(duty float32) Option {
	return func(c *config) { c.duty = duty }
}

func WithEnvelope(env *envelope.ADSHR) Option {
	return func(c *config) { c.env = env }
}

// WithSeed makes noise carriers and LFOs reproducible.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
		c.seeded = true
	}
}

// Oscillator renders fixed-size buffers from a carrier wave, modulated by an
// optional LFO and passed through its effects in chain order. Setters may be
// called from a control goroutine while another calls Generate.
type Oscillator struct {
	mu sync.Mutex

	sampleRate int
	freq       float32
	lfoFreq    float32
	volume     float32
	phase      float32
	mod        wave.Modulation
	depth      float32
	slideTo    float32
	slideTime  float32
	enabled    bool

	carrier *wave.Source
	lfo     *wave.Source
	lfoBuf  []float32
	out     []float32
	chain   *effects.Chain
}

// New builds an oscillator and registers it with reg. The oscillator starts
// disabled; SetEnabled(true) gates the note on.
func New(reg *Registry, bufferSize int, carrier wave.Kind, opts ...Option) (*Oscillator, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}
	if bufferSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBufferSize, bufferSize)
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.mod.Valid() {
		return nil, fmt.Errorf("synth: %w", wave.ErrInvalidModulation)
	}

	srcOpts := []wave.Option{wave.WithSampleRate(cfg.sampleRate), wave.WithDuty(cfg.duty)}
	if cfg.seeded {
		srcOpts = append(srcOpts, wave.WithSeed(cfg.seed))
	}
	car, err := wave.New(carrier, append(srcOpts, wave.WithEnvelope(cfg.env))...)
	if err != nil {
		return nil, fmt.Errorf("synth: carrier: %w", err)
	}

	o := &Oscillator{
		sampleRate: cfg.sampleRate,
		freq:       cfg.freq,
		volume:     cfg.volume,
		phase:      cfg.phase,
		mod:        cfg.mod,
		depth:      cfg.depth,
		slideTo:    cfg.slideTo,
		slideTime:  cfg.slideTime,
		carrier:    car,
		out:        make([]float32, bufferSize),
		chain:      effects.NewChain(),
	}
	if cfg.lfo {
		lfo, err := wave.New(cfg.lfoKind, srcOpts...)
		if err != nil {
			return nil, fmt.Errorf("synth: lfo: %w", err)
		}
		o.lfo = lfo
		o.lfoFreq = cfg.lfoFreq
		o.lfoBuf = make([]float32, bufferSize)
	}
	if err := reg.Register(o); err != nil {
		return nil, fmt.Errorf("synth: register: %w", err)
	}
	return o, nil
}

// Generate renders the next buffer. The returned slice is owned by the
// oscillator and is overwritten by the next call.
func (o *Oscillator) Generate() []float32 {
	o.mu.Lock()
	defer o.mu.Unlock()

	var lfo []float32
	if o.lfo != nil {
		o.lfo.SynthBasic(o.lfoBuf, o.lfoFreq, o.phase, 1, o.enabled)
		lfo = o.lfoBuf
	}
	o.carrier.SynthMaster(o.out, wave.Params{
		Freq:        o.freq,
		PhaseOffset: o.phase,
		Volume:      o.volume,
		Mod:         o.mod,
		LFO:         lfo,
		ModArg:      o.depth,
		SlideTo:     o.slideTo,
		SlideTime:   o.slideTime,
		NoteOn:      o.enabled,
	})
	o.chain.Process(o.out)
	return o.out
}

// Chain appends an effect after any already chained.
func (o *Oscillator) Chain(e effects.Effector) *Oscillator {
	o.mu.Lock()
	o.chain.Add(e)
	o.mu.Unlock()
	return o
}

func (o *Oscillator) BufferSize() int { return len(o.out) }
func (o *Oscillator) SampleRate() int { return o.sampleRate }

func (o *Oscillator) SetFrequency(hz float32) {
	o.mu.Lock()
	o.freq = hz
	o.mu.Unlock()
}

func (o *Oscillator) Frequency() float32 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.freq
}

func (o *Oscillator) SetLFOFrequency(hz float32) {
	o.mu.Lock()
	o.lfoFreq = hz
	o.mu.Unlock()
}

func (o *Oscillator) SetVolume(v float32) {
	o.mu.Lock()
	o.volume = v
	o.mu.Unlock()
}

func (o *Oscillator) SetPhase(fraction float32) {
	o.mu.Lock()
	o.phase = fraction
	o.mu.Unlock()
}

// SetModulation changes the modulation mode and depth. Invalid modes are
// rejected.
func (o *Oscillator) SetModulation(mode wave.Modulation, depth float32) error {
	if !mode.Valid() {
		return wave.ErrInvalidModulation
	}
	o.mu.Lock()
	o.mod = mode
	o.depth = depth
	o.mu.Unlock()
	return nil
}

func (o *Oscillator) SetSlide(target, samples float32) {
	o.mu.Lock()
	o.slideTo = target
	o.slideTime = samples
	o.mu.Unlock()
}

// SetEnabled gates the note. With an envelope attached, disabling starts the
// release rather than cutting the sound.
func (o *Oscillator) SetEnabled(on bool) {
	o.mu.Lock()
	o.enabled = on
	o.mu.Unlock()
}

func (o *Oscillator) Enabled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.enabled
}

// Reset rewinds the carrier, LFO and effects.
func (o *Oscillator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.carrier.Reset()
	if o.lfo != nil {
		o.lfo.Reset()
	}
	o.chain.Reset()
}
