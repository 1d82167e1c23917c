package rogueop

import (
	intfx "github.com/rogueop/rogueop-go/internal/effects"
	"github.com/rogueop/rogueop-go/internal/envelope"
	"github.com/rogueop/rogueop-go/internal/scene"
	"github.com/rogueop/rogueop-go/internal/synth"
	"github.com/rogueop/rogueop-go/internal/wave"
)

type (
	Waveform         = wave.Kind
	Modulation       = wave.Modulation
	Oscillator       = synth.Oscillator
	OscillatorOption = synth.Option
	Envelope         = envelope.ADSHR
	EnvelopeMode     = envelope.Mode
	Effect           = intfx.Effector
	Stage            = scene.Stage
	Actor            = scene.Actor
	Drawable         = scene.Drawable
)

const (
	Pulse      = wave.Pulse
	WhiteNoise = wave.WhiteNoise
	FMNoise    = wave.FMNoise
	PinkNoise  = wave.PinkNoise
	Saw        = wave.Saw
	Triangle   = wave.Triangle
	Sine       = wave.Sine
	Tangent    = wave.Tangent
	Hemicycle  = wave.Hemicycle
)

const (
	ModNone    = wave.None
	AmpMod     = wave.AmpMod
	FreqMod    = wave.FreqMod
	PhaseMod   = wave.PhaseMod
	DutyMod    = wave.DutyMod
	AmpSlide   = wave.AmpSlide
	FreqSlide  = wave.FreqSlide
	PhaseSlide = wave.PhaseSlide
	DutySlide  = wave.DutySlide
)

const (
	Gated       = envelope.Gated
	FreeRunning = envelope.FreeRunning
)

var (
	ParseWaveform   = wave.ParseKind
	ParseModulation = wave.ParseModulation
	NewEnvelope     = envelope.New
	NewStage        = scene.NewStage

	WithFrequency  = synth.WithFrequency
	WithLFO        = synth.WithLFO
	WithModulation = synth.WithModulation
	WithSlide      = synth.WithSlide
	WithVolume     = synth.WithVolume
	WithPhase      = synth.WithPhase
	WithDuty       = synth.WithDuty
	WithEnvelope   = synth.WithEnvelope
	WithSeed       = synth.WithSeed
)
