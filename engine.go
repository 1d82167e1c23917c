// Package rogueop is the core of a small game engine: allocation-light
// containers, a chiptune-style synthesizer and the loops that drive a stage
// of actors and drawables.
package rogueop

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	intaudio "github.com/rogueop/rogueop-go/internal/audio"
	intfx "github.com/rogueop/rogueop-go/internal/effects"
	"github.com/rogueop/rogueop-go/internal/scene"
	"github.com/rogueop/rogueop-go/internal/synth"
)

type Option func(*engineConfig)

type engineConfig struct {
	cfg       Config
	logger    *slog.Logger
	sampleTap func([]float32)
}

func WithConfig(cfg Config) Option {
	return func(c *engineConfig) { c.cfg = cfg }
}

func WithBackend(b Backend) Option {
	return func(c *engineConfig) { c.cfg.Backend = b }
}

func WithSampleRate(rate int) Option {
	return func(c *engineConfig) { c.cfg.SampleRate = rate }
}

// WithLogger sets the logger for lifecycle messages. Nothing is logged per
// sample.
func WithLogger(l *slog.Logger) Option {
	return func(c *engineConfig) { c.logger = l }
}

// WithSampleTap installs a callback invoked with each mixed buffer.
// The callback runs on the audio thread; keep work brief and non-blocking.
func WithSampleTap(tap func([]float32)) Option {
	return func(c *engineConfig) { c.sampleTap = tap }
}

// Engine owns the oscillator registry, the master mix and the audio backend.
type Engine struct {
	mu       sync.Mutex
	cfg      Config
	logger   *slog.Logger
	registry *synth.Registry
	masterEQ *intfx.EQ5Band
	mixer    *synth.Mixer
	tap      func([]float32)
	backend  intaudio.Backend
}

func New(opts ...Option) (*Engine, error) {
	ec := engineConfig{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(&ec)
	}
	if err := ec.cfg.Validate(); err != nil {
		return nil, err
	}
	if ec.logger == nil {
		ec.logger = slog.New(slog.DiscardHandler)
	}
	eq := intfx.NewEQ5Band(ec.cfg.SampleRate)
	for band, g := range ec.cfg.EQGains {
		eq.SetGain(band, g)
	}
	reg := synth.NewRegistry(ec.logger)
	e := &Engine{
		cfg:      ec.cfg,
		logger:   ec.logger,
		registry: reg,
		masterEQ: eq,
		mixer:    synth.NewMixer(reg, eq),
		tap:      ec.sampleTap,
	}
	e.mixer.SetGain(ec.cfg.MasterVolume)
	return e, nil
}

func (e *Engine) Config() Config            { return e.cfg }
func (e *Engine) Registry() *synth.Registry { return e.registry }

// NewOscillator creates an oscillator at the engine's sample rate and buffer
// size and registers it for mixing.
func (e *Engine) NewOscillator(carrier Waveform, opts ...OscillatorOption) (*Oscillator, error) {
	opts = append([]synth.Option{synth.WithSampleRate(e.cfg.SampleRate)}, opts...)
	return synth.New(e.registry, e.cfg.BufferSize, carrier, opts...)
}

// Process fills dst with the master mix. It is the engine's audio source.
func (e *Engine) Process(dst []float32) {
	e.mixer.Process(dst)
	if e.tap != nil {
		e.tap(dst)
	}
}

// Start opens the configured backend and begins playback. With BackendNone
// it does nothing; Run then paces rendering itself.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.backend != nil {
		e.backend.Play()
		return nil
	}
	b, err := e.openBackend()
	if err != nil {
		return fmt.Errorf("open %s backend: %w", e.cfg.Backend, err)
	}
	if b == nil {
		return nil
	}
	e.backend = b
	e.backend.Play()
	e.logger.Info("audio started", "backend", e.cfg.Backend, "sample_rate", e.cfg.SampleRate)
	return nil
}

func (e *Engine) openBackend() (intaudio.Backend, error) {
	switch e.cfg.Backend {
	case BackendEbiten:
		p, err := intaudio.NewPlayer(e.cfg.SampleRate, e)
		if err != nil {
			return nil, err
		}
		return p, nil
	case BackendOto:
		p, err := intaudio.NewOtoPlayer(e.cfg.SampleRate, e)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, nil
	}
}

func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.backend != nil {
		e.backend.Pause()
	}
}

func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.backend != nil {
		e.backend.Play()
	}
}

func (e *Engine) Playing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.backend != nil && e.backend.IsPlaying()
}

// Stop closes the backend. Start opens a new one.
func (e *Engine) Stop() error {
	e.mu.Lock()
	b := e.backend
	e.backend = nil
	e.mu.Unlock()
	if b == nil {
		return nil
	}
	e.logger.Info("audio stopped", "backend", e.cfg.Backend)
	return b.Close()
}

// Close stops audio and unregisters every oscillator.
func (e *Engine) Close() error {
	err := e.Stop()
	e.registry.Clear()
	return err
}

// SetMasterVolume sets the output gain, clamped to [0, 1].
func (e *Engine) SetMasterVolume(v float32) {
	e.mixer.SetGain(v)
}

func (e *Engine) MasterVolume() float32 {
	return e.mixer.Gain()
}

// SetEQBand sets the gain for a master EQ band (0-4). 1.0 = unity.
// Band frequencies: 0=<200Hz, 1=200-800Hz, 2=800-2.5kHz, 3=2.5-8kHz, 4=>8kHz.
// This takes effect immediately on the audio thread (lock-free).
func (e *Engine) SetEQBand(band int, gain float32) {
	e.masterEQ.SetGain(band, gain)
}

func (e *Engine) EQBand(band int) float32 {
	return e.masterEQ.Gain(band)
}

// Run drives the stage's logic tick until ctx is cancelled or an actor
// fails. With BackendNone it also renders the mix in real time, since no
// device is pulling samples. A nil stage runs only the render loop.
func (e *Engine) Run(ctx context.Context, stage *scene.Stage) error {
	g, ctx := errgroup.WithContext(ctx)
	if stage != nil {
		g.Go(func() error { return e.logicLoop(ctx, stage) })
	}
	if e.cfg.Backend == BackendNone {
		g.Go(func() error { return e.renderLoop(ctx) })
	}
	return g.Wait()
}

func (e *Engine) logicLoop(ctx context.Context, stage *scene.Stage) error {
	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
		start := time.Now()
		if err := stage.Update(); err != nil {
			return fmt.Errorf("logic tick %d: %w", stage.Ticks(), err)
		}
		elapsed := time.Since(start)
		if elapsed > e.cfg.TickPeriod {
			e.logger.Debug("logic tick overran", "elapsed", elapsed, "period", e.cfg.TickPeriod)
		}
		timer.Reset(max(e.cfg.TickPeriod-elapsed, MinTickSleep))
	}
}

func (e *Engine) renderLoop(ctx context.Context) error {
	buf := make([]float32, e.cfg.BufferSize)
	period := time.Duration(len(buf)) * time.Second / time.Duration(e.cfg.SampleRate)
	ticker := time.NewTicker(max(period, MinTickSleep))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			e.Process(buf)
		}
	}
}

var _ intaudio.SampleSource = (*Engine)(nil)
