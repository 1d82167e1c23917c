// Package envelope implements the attack/decay/sustain/hold/release amplitude
// envelope that shapes every synthesized note.
package envelope

// State is the envelope phase.
type State int

const (
	Off State = iota
	Attack
	Decay
	Hold
	Release
)

func (s State) String() string {
	switch s {
	case Off:
		return "off"
	case Attack:
		return "attack"
	case Decay:
		return "decay"
	case Hold:
		return "hold"
	case Release:
		return "release"
	default:
		return "unknown"
	}
}

// Mode selects how Calculate reacts to its inputs.
type Mode int

const (
	// Gated follows note on/off: note-on (or a new frequency) retriggers the
	// attack, note-off enters release, and the sustain level is held for as
	// long as the note stays on.
	Gated Mode = iota
	// FreeRunning ignores note on/off and plays one full attack, decay, hold,
	// release cycle each time the frequency changes.
	FreeRunning
)

const epsilon = 0.0001

// ADSHR is a per-sample amplitude envelope. Durations are counted in calls
// to Calculate (samples or frames, at the caller's choice).
type ADSHR struct {
	attack  int
	decay   int
	hold    int
	release int
	sustain float32
	mode    Mode

	amp     float32
	freq    float32
	elapsed int
	state   State
}

// New builds an envelope. Attack, decay and release are clamped to at least
// one tick, hold to at least zero, and sustain into [0, 1].
func New(attack, decay int, sustain float32, hold, release int, mode Mode) *ADSHR {
	return &ADSHR{
		attack:  max(attack, 1),
		decay:   max(decay, 1),
		hold:    max(hold, 0),
		release: max(release, 1),
		sustain: min(max(sustain, 0), 1),
		mode:    mode,
	}
}

func (e *ADSHR) State() State       { return e.state }
func (e *ADSHR) Amplitude() float32 { return e.amp }
func (e *ADSHR) Mode() Mode         { return e.mode }
func (e *ADSHR) Sustain() float32   { return e.sustain }
func (e *ADSHR) Frequency() float32 { return e.freq }
func (e *ADSHR) SetMode(mode Mode)  { e.mode = mode }

// Trigger restarts the attack from the current amplitude.
func (e *ADSHR) Trigger() {
	e.state = Attack
	e.elapsed = 0
}

// NoteOff moves any sounding envelope into release.
func (e *ADSHR) NoteOff() {
	if e.state != Off {
		e.state = Release
	}
}

// Reset silences the envelope immediately.
func (e *ADSHR) Reset() {
	e.state = Off
	e.amp = 0
	e.freq = 0
	e.elapsed = 0
}

// Calculate advances the envelope by one tick and returns the frequency to
// render, or 0 once the envelope has fully released. At most one phase
// boundary is crossed per call.
func (e *ADSHR) Calculate(freq float32, noteOn bool) float32 {
	if e.mode == FreeRunning {
		return e.calculateFree(freq)
	}
	return e.calculateGated(freq, noteOn)
}

func (e *ADSHR) calculateGated(freq float32, noteOn bool) float32 {
	if noteOn {
		if freq != e.freq || e.state == Off || e.state == Release {
			e.Trigger()
		}
	} else {
		e.NoteOff()
	}
	e.freq = freq
	e.step(false)
	if e.state == Off {
		return 0
	}
	return freq
}

func (e *ADSHR) calculateFree(freq float32) float32 {
	if freq != e.freq {
		e.freq = freq
		if freq > 0 {
			e.Trigger()
		} else {
			e.NoteOff()
		}
	}
	e.step(true)
	if e.state == Off {
		return 0
	}
	return freq
}

func (e *ADSHR) step(timedHold bool) {
	switch e.state {
	case Attack:
		e.amp += 1 / float32(e.attack)
		if e.amp >= 1 {
			e.amp = 1
			e.state = Decay
		}
	case Decay:
		e.amp -= (1 - e.sustain) / float32(e.decay)
		if e.amp <= e.sustain {
			e.amp = e.sustain
			e.state = Hold
			e.elapsed = 0
		}
	case Hold:
		if timedHold {
			e.elapsed++
			if e.elapsed >= e.hold {
				e.elapsed = 0
				e.state = Release
			}
		}
	case Release:
		e.amp -= e.releaseStep()
		if e.amp <= epsilon {
			e.amp = 0
			e.state = Off
		}
	}
}

// releaseStep falls back to a full-scale ramp when sustain is zero so a
// note released mid-attack still reaches silence.
func (e *ADSHR) releaseStep() float32 {
	s := e.sustain / float32(e.release)
	if s <= 0 {
		s = 1 / float32(e.release)
	}
	return s
}
