package wave

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidKind       = errors.New("wave: invalid waveform kind")
	ErrInvalidModulation = errors.New("wave: invalid modulation mode")
	ErrInvalidSampleRate = errors.New("wave: sample rate must be positive")
)

// Kind selects the waveform a Source produces. The set is closed: every
// switch over Kind in this package handles all of them.
type Kind int

const (
	// Pulse is high below the duty threshold and low above it; duty 0.5 is a square wave.
	Pulse Kind = iota
	// WhiteNoise is uniform amplitude noise in [-1, 1].
	WhiteNoise
	// FMNoise is random full-scale binary noise.
	FMNoise
	// PinkNoise holds random-length runs of alternating polarity.
	PinkNoise
	// Saw is a rising ramp.
	Saw
	// Triangle rises then falls; the duty cycle skews the peak.
	Triangle
	// Sine is a sine wave.
	Sine
	// Tangent is a scaled, clipped tangent.
	Tangent
	// Hemicycle is a pair of opposite-signed half circles.
	Hemicycle

	kindCount
)

var kindNames = [kindCount]string{
	Pulse:      "pulse",
	WhiteNoise: "noise",
	FMNoise:    "fmnoise",
	PinkNoise:  "pink",
	Saw:        "saw",
	Triangle:   "triangle",
	Sine:       "sine",
	Tangent:    "tan",
	Hemicycle:  "hemicycle",
}

func (k Kind) Valid() bool { return k >= 0 && k < kindCount }

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// tabled reports whether the kind reads from a precomputed one-cycle table.
func (k Kind) tabled() bool {
	switch k {
	case Saw, Triangle, Sine, Tangent, Hemicycle:
		return true
	default:
		return false
	}
}

// ParseKind maps a name such as "sine" or "pink" to its Kind.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	switch name {
	case "square":
		return Pulse, nil
	case "sin":
		return Sine, nil
	case "white":
		return WhiteNoise, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidKind, name)
}

// Modulation selects how an LFO buffer or a linear slide alters synthesis.
type Modulation int

const (
	None Modulation = iota
	AmpMod
	FreqMod
	PhaseMod
	DutyMod
	AmpSlide
	FreqSlide
	PhaseSlide
	DutySlide

	modulationCount
)

var modulationNames = [modulationCount]string{
	None:       "none",
	AmpMod:     "amp",
	FreqMod:    "freq",
	PhaseMod:   "phase",
	DutyMod:    "duty",
	AmpSlide:   "ampslide",
	FreqSlide:  "freqslide",
	PhaseSlide: "phaseslide",
	DutySlide:  "dutyslide",
}

func (m Modulation) Valid() bool { return m >= 0 && m < modulationCount }

func (m Modulation) String() string {
	if !m.Valid() {
		return fmt.Sprintf("modulation(%d)", int(m))
	}
	return modulationNames[m]
}

// Slide reports whether the mode ramps a parameter instead of following an LFO.
func (m Modulation) Slide() bool {
	switch m {
	case AmpSlide, FreqSlide, PhaseSlide, DutySlide:
		return true
	default:
		return false
	}
}

func ParseModulation(name string) (Modulation, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for m, n := range modulationNames {
		if n == name {
			return Modulation(m), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidModulation, name)
}
