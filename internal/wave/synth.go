package wave

// Params describes one SynthMaster call. Freq is in Hz, PhaseOffset is a
// fraction of a cycle and SlideTime is in samples. LFO carries the
// modulation signal for the LFO-driven modes and is scaled by ModArg; a
// missing LFO sample reads as zero.
type Params struct {
	Freq        float32
	PhaseOffset float32
	Volume      float32
	Mod         Modulation
	LFO         []float32
	ModArg      float32
	SlideTo     float32
	SlideTime   float32
	NoteOn      bool
}

// SynthMaster renders len(out) samples. Output is clipped to [-1, 1]. With
// no envelope attached, a zero frequency or a released note renders silence
// without advancing state.
func (s *Source) SynthMaster(out []float32, p Params) {
	freq := p.Freq
	if s.env != nil {
		freq = s.env.Calculate(p.Freq, p.NoteOn)
	} else if freq == 0 || !p.NoteOn {
		clear(out)
		return
	}
	if freq <= 0 {
		clear(out)
		return
	}

	s.beginSlide(p, freq)
	duty := s.duty
	for i := range out {
		var lfo float32
		if i < len(p.LFO) {
			lfo = p.LFO[i] * p.ModArg
		}

		f := freq
		switch p.Mod {
		case DutyMod:
			duty = clamp((s.duty+ampMod(1, lfo))/2, 0, 1)
		case DutySlide:
			duty = clamp(s.slide.value, 0, 1)
		case FreqSlide:
			f = max(s.slide.value, 0)
		}

		phase := s.phase
		switch p.Mod {
		case PhaseMod:
			phase += s.sr * lfo
		case PhaseSlide:
			phase += s.sr * s.slide.value
		default:
			phase += s.sr * p.PhaseOffset
		}

		amp := float32(1)
		if s.env != nil {
			s.env.Calculate(p.Freq, p.NoteOn)
			amp = s.env.Amplitude()
		}

		v := s.sample(s.wrap(phase), duty) * p.Volume * amp
		switch p.Mod {
		case AmpMod:
			v = ampMod(v, lfo)
		case AmpSlide:
			v *= s.slide.value
		}
		out[i] = Clip(v)

		scale := float32(1)
		if p.Mod == FreqMod {
			scale = 1 + lfo
		}
		s.advance(f, duty, scale)
		s.stepSlide()
	}
}

// ampMod scales v by an LFO value mapped from [-1, 1] to [0, 1].
func ampMod(v, lfo float32) float32 {
	return v * (lfo + 1) / 2
}

// beginSlide starts a new ramp when the slide mode or target changes. A
// retargeted ramp continues from its current value.
func (s *Source) beginSlide(p Params, freq float32) {
	if !p.Mod.Slide() {
		s.slide = slideState{}
		return
	}
	if s.slide.active && s.slide.mode == p.Mod && s.slide.target == p.SlideTo {
		return
	}
	var start float32
	if s.slide.active && s.slide.mode == p.Mod {
		start = s.slide.value
	} else {
		switch p.Mod {
		case AmpSlide:
			start = 1
		case FreqSlide:
			start = freq
		case DutySlide:
			start = s.duty
		case PhaseSlide:
			start = p.PhaseOffset
		}
	}
	n := max(int(p.SlideTime), 1)
	s.slide = slideState{
		active: true,
		mode:   p.Mod,
		target: p.SlideTo,
		value:  start,
		step:   (p.SlideTo - start) / float32(n),
		left:   n,
	}
}

func (s *Source) stepSlide() {
	if s.slide.left <= 0 {
		return
	}
	s.slide.value += s.slide.step
	s.slide.left--
	if s.slide.left == 0 {
		s.slide.value = s.slide.target
	}
}

// SynthBasic renders an unmodulated note.
func (s *Source) SynthBasic(out []float32, freq, phaseOffset, volume float32, noteOn bool) {
	s.SynthMaster(out, Params{Freq: freq, PhaseOffset: phaseOffset, Volume: volume, NoteOn: noteOn})
}

func (s *Source) SynthAmpMod(out []float32, freq, phaseOffset, volume float32, lfo []float32, modArg float32, noteOn bool) {
	s.SynthMaster(out, Params{Freq: freq, PhaseOffset: phaseOffset, Volume: volume, Mod: AmpMod, LFO: lfo, ModArg: modArg, NoteOn: noteOn})
}

func (s *Source) SynthFreqMod(out []float32, freq, phaseOffset, volume float32, lfo []float32, modArg float32, noteOn bool) {
	s.SynthMaster(out, Params{Freq: freq, PhaseOffset: phaseOffset, Volume: volume, Mod: FreqMod, LFO: lfo, ModArg: modArg, NoteOn: noteOn})
}

func (s *Source) SynthPhaseMod(out []float32, freq, phaseOffset, volume float32, lfo []float32, modArg float32, noteOn bool) {
	s.SynthMaster(out, Params{Freq: freq, PhaseOffset: phaseOffset, Volume: volume, Mod: PhaseMod, LFO: lfo, ModArg: modArg, NoteOn: noteOn})
}

func (s *Source) SynthDutyMod(out []float32, freq, phaseOffset, volume float32, lfo []float32, modArg float32, noteOn bool) {
	s.SynthMaster(out, Params{Freq: freq, PhaseOffset: phaseOffset, Volume: volume, Mod: DutyMod, LFO: lfo, ModArg: modArg, NoteOn: noteOn})
}
