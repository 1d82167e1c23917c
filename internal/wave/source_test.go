package wave

import (
	"errors"
	"math"
	"testing"

	"github.com/rogueop/rogueop-go/internal/envelope"
)

func TestPulseDutyThreshold(t *testing.T) {
	for _, duty := range []float32{0.1, 0.5, 0.9} {
		s, err := New(Pulse, WithDuty(duty))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		edge := float32(DefaultSampleRate) * duty
		if got := s.Sample(edge - 1); got != 1 {
			t.Errorf("duty %.1f below edge: got %v, want 1", duty, got)
		}
		if got := s.Sample(edge + 1); got != -1 {
			t.Errorf("duty %.1f above edge: got %v, want -1", duty, got)
		}
	}
}

func TestSineTable(t *testing.T) {
	s, err := New(Sine)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sr := float32(DefaultSampleRate)
	cases := []struct {
		phase float32
		want  float64
	}{
		{0, 0},
		{sr / 4, 1},
		{sr / 2, 0},
		{3 * sr / 4, -1},
	}
	for _, c := range cases {
		got := s.Sample(c.phase)
		if math.Abs(float64(got)-c.want) > 1e-2 {
			t.Errorf("sine at %v: got %v, want %v", c.phase, got, c.want)
		}
	}
}

func TestTablesAreShared(t *testing.T) {
	a, _ := New(Saw, WithSampleRate(8000))
	b, _ := New(Saw, WithSampleRate(8000))
	if &a.table[0] != &b.table[0] {
		t.Fatal("expected the same table for the same kind and rate")
	}
	if len(a.table) != 8000 {
		t.Fatalf("table length: got %d, want 8000", len(a.table))
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	if _, err := New(Kind(99)); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("unknown kind: got %v, want ErrInvalidKind", err)
	}
	if _, err := New(Sine, WithSampleRate(0)); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("zero rate: got %v, want ErrInvalidSampleRate", err)
	}
}

func TestParseKind(t *testing.T) {
	for k := Pulse; k < kindCount; k++ {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("organ"); !errors.Is(err, ErrInvalidKind) {
		t.Errorf("expected ErrInvalidKind, got %v", err)
	}
}

func TestSilenceWithoutNote(t *testing.T) {
	s, _ := New(Saw)
	out := []float32{9, 9, 9, 9}
	s.SynthBasic(out, 0, 0, 1, true)
	for i, v := range out {
		if v != 0 {
			t.Fatalf("freq 0: out[%d] = %v, want 0", i, v)
		}
	}
	out[0] = 9
	s.SynthBasic(out, 440, 0, 1, false)
	if out[0] != 0 {
		t.Fatalf("note off: got %v, want 0", out[0])
	}
	if s.Phase() != 0 {
		t.Fatalf("phase advanced during silence: %v", s.Phase())
	}
}

func TestOutputIsClipped(t *testing.T) {
	for k := Pulse; k < kindCount; k++ {
		s, _ := New(k, WithSeed(1))
		out := make([]float32, 2048)
		s.SynthBasic(out, 220, 0, 4, true)
		for i, v := range out {
			if v < -1 || v > 1 || math.IsNaN(float64(v)) {
				t.Fatalf("%v: out[%d] = %v outside [-1, 1]", k, i, v)
			}
		}
	}
}

func TestPhaseOffset(t *testing.T) {
	s, _ := New(Pulse, WithSampleRate(1000))
	out := make([]float32, 1)
	s.SynthBasic(out, 1, 0.5, 1, true)
	if out[0] != -1 {
		t.Fatalf("half-cycle offset: got %v, want -1", out[0])
	}
}

func TestAmpModSilencesAtTrough(t *testing.T) {
	s, _ := New(Pulse, WithSampleRate(1000))
	lfo := []float32{-1, -1, 1, 1}
	out := make([]float32, 4)
	s.SynthAmpMod(out, 1, 0, 1, lfo, 1, true)
	want := []float32{0, 0, 1, 1}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d]: got %v, want %v", i, out[i], want[i])
		}
	}
}

func TestFreqModScalesStep(t *testing.T) {
	s, _ := New(Saw, WithSampleRate(1000))
	out := make([]float32, 1)
	s.SynthFreqMod(out, 10, 0, 1, []float32{1}, 1, true)
	if got := s.Phase(); got != 20 {
		t.Fatalf("phase after doubled step: got %v, want 20", got)
	}
	s.SynthFreqMod(out, 10, 0, 1, []float32{-1}, 1, true)
	if got := s.Phase(); got != 20 {
		t.Fatalf("phase after zeroed step: got %v, want 20", got)
	}
}

func TestAmpSlide(t *testing.T) {
	s, _ := New(Pulse, WithSampleRate(1000))
	out := make([]float32, 6)
	s.SynthMaster(out, Params{Freq: 1, Volume: 1, Mod: AmpSlide, SlideTo: 0, SlideTime: 4, NoteOn: true})
	want := []float32{1, 0.75, 0.5, 0.25, 0, 0}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d]: got %v, want %v", i, out[i], want[i])
		}
	}
}

func TestFreqSlideReachesTarget(t *testing.T) {
	s, _ := New(Saw, WithSampleRate(1000))
	p := Params{Freq: 10, Volume: 1, Mod: FreqSlide, SlideTo: 20, SlideTime: 10, NoteOn: true}
	s.SynthMaster(make([]float32, 10), p)
	before := s.Phase()
	s.SynthMaster(make([]float32, 1), p)
	if got := s.Phase() - before; got != 20 {
		t.Fatalf("step after slide: got %v, want 20", got)
	}
}

func TestDutyWarpsTabledPhase(t *testing.T) {
	s, _ := New(Triangle, WithSampleRate(1000), WithDuty(0.25))
	out := make([]float32, 1)
	s.SynthBasic(out, 10, 0, 1, true)
	if got := s.Phase(); got != 20 {
		t.Fatalf("first half step: got %v, want 20", got)
	}
	s.SetPhase(0.5)
	s.SynthBasic(out, 10, 0, 1, true)
	if got, want := s.Phase(), float32(500+10/1.5); math.Abs(float64(got-want)) > 1e-3 {
		t.Fatalf("second half step: got %v, want %v", got, want)
	}
}

func TestEnvelopeShapesOutput(t *testing.T) {
	env := envelope.New(1, 1, 1, 0, 4, envelope.Gated)
	s, _ := New(Pulse, WithSampleRate(1000), WithEnvelope(env))
	out := make([]float32, 8)
	s.SynthBasic(out, 1, 0, 1, true)
	if out[0] != 1 {
		t.Fatalf("attack: got %v, want 1", out[0])
	}
	s.SynthBasic(out, 1, 0, 1, false)
	if out[len(out)-1] != 0 {
		t.Fatalf("released: got %v, want 0", out[len(out)-1])
	}
	if env.State() != envelope.Off {
		t.Fatalf("state: got %v, want Off", env.State())
	}
}

func TestSeededNoiseIsReproducible(t *testing.T) {
	for _, k := range []Kind{WhiteNoise, FMNoise, PinkNoise} {
		a, _ := New(k, WithSeed(42))
		b, _ := New(k, WithSeed(42))
		oa := make([]float32, 256)
		ob := make([]float32, 256)
		a.SynthBasic(oa, 440, 0, 1, true)
		b.SynthBasic(ob, 440, 0, 1, true)
		for i := range oa {
			if oa[i] != ob[i] {
				t.Fatalf("%v: sample %d differs: %v vs %v", k, i, oa[i], ob[i])
			}
		}
	}
}

func TestPinkNoiseAlternates(t *testing.T) {
	s, _ := New(PinkNoise, WithSeed(7))
	out := make([]float32, 4096)
	s.SynthBasic(out, 440, 0, 1, true)
	var flips int
	for i := 1; i < len(out); i++ {
		if out[i] == 0 {
			t.Fatalf("pink sample %d is zero", i)
		}
		if (out[i] > 0) != (out[i-1] > 0) {
			flips++
		}
	}
	if flips == 0 {
		t.Fatal("pink noise never changed polarity")
	}
}

func TestTableShapes(t *testing.T) {
	const sr = 1000
	cases := []struct {
		kind  Kind
		phase float32
		want  float64
	}{
		{Saw, 0, -1},
		{Saw, sr / 2, 0},
		{Triangle, 0, -1},
		{Triangle, sr / 2, 1},
		{Tangent, 0, 0},
		{Tangent, sr/4 - 1, 1},
		{Tangent, sr/4 + 1, -1},
		{Hemicycle, sr / 4, 1},
		{Hemicycle, 3 * sr / 4, -1},
	}
	for _, c := range cases {
		s, err := New(c.kind, WithSampleRate(sr))
		if err != nil {
			t.Fatalf("New(%v): %v", c.kind, err)
		}
		got := s.Sample(c.phase)
		if math.Abs(float64(got)-c.want) > 1e-3 {
			t.Errorf("%v at %v: got %v, want %v", c.kind, c.phase, got, c.want)
		}
	}
}

func TestTangentTableIsClipped(t *testing.T) {
	s, _ := New(Tangent, WithSampleRate(1000))
	for i, v := range s.table {
		if v < -1 || v > 1 {
			t.Fatalf("table[%d] = %v outside [-1, 1]", i, v)
		}
	}
}

func highCount(out []float32) int {
	n := 0
	for _, v := range out {
		if v > 0 {
			n++
		}
	}
	return n
}

func constantLFO(v float32, n int) []float32 {
	lfo := make([]float32, n)
	for i := range lfo {
		lfo[i] = v
	}
	return lfo
}

func TestDutyModMapsLFOToDuty(t *testing.T) {
	cases := []struct {
		lfo  float32
		want int
	}{
		{-1, 250},
		{0, 500},
		{1, 750},
	}
	for _, c := range cases {
		s, _ := New(Pulse, WithSampleRate(1000), WithDuty(0.5))
		out := make([]float32, 1000)
		s.SynthDutyMod(out, 1, 0, 1, constantLFO(c.lfo, len(out)), 1, true)
		if got := highCount(out); got != c.want {
			t.Errorf("lfo %v: high samples got %d, want %d", c.lfo, got, c.want)
		}
		if s.Duty() != 0.5 {
			t.Errorf("lfo %v: base duty changed to %v", c.lfo, s.Duty())
		}
	}
}

func TestPhaseModMatchesPhaseOffset(t *testing.T) {
	mod, _ := New(Sine, WithSampleRate(1000))
	ref, _ := New(Sine, WithSampleRate(1000))
	got := make([]float32, 16)
	want := make([]float32, 16)
	mod.SynthPhaseMod(got, 1, 0, 1, constantLFO(0.25, len(got)), 1, true)
	ref.SynthBasic(want, 1, 0.25, 1, true)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("out[%d]: got %v, want %v", i, got[i], want[i])
		}
	}
	if math.Abs(float64(got[0])-1) > 1e-3 {
		t.Fatalf("quarter-cycle shift: got %v, want 1", got[0])
	}
}

func TestPhaseSlideRampsOffset(t *testing.T) {
	s, _ := New(Saw, WithSampleRate(1000))
	out := make([]float32, 6)
	s.SynthMaster(out, Params{Freq: 1, Volume: 1, Mod: PhaseSlide, SlideTo: 0.5, SlideTime: 4, NoteOn: true})
	// phase i plus an offset of 0, 1/8, 1/4, 3/8, then 1/2.
	want := []float64{-1, -0.748, -0.496, -0.244, 0.008, 0.010}
	for i := range want {
		if math.Abs(float64(out[i])-want[i]) > 1e-3 {
			t.Fatalf("out[%d]: got %v, want %v", i, out[i], want[i])
		}
	}
}

func TestDutySlideReachesTarget(t *testing.T) {
	s, _ := New(Pulse, WithSampleRate(1000), WithDuty(0.5))
	p := Params{Freq: 1, Volume: 1, Mod: DutySlide, SlideTo: 0.1, SlideTime: 10, NoteOn: true}
	s.SynthMaster(make([]float32, 10), p)
	out := make([]float32, 1000)
	s.SynthMaster(out, p)
	if got := highCount(out); got < 99 || got > 101 {
		t.Fatalf("high samples after slide: got %d, want 100", got)
	}
	if s.Duty() != 0.5 {
		t.Fatalf("base duty changed to %v", s.Duty())
	}
}

func BenchmarkSynthMaster(b *testing.B) {
	s, _ := New(Sine)
	lfo := make([]float32, 512)
	out := make([]float32, 512)
	for i := range lfo {
		lfo[i] = float32(math.Sin(float64(i) / 40))
	}
	b.ReportAllocs()
	for b.Loop() {
		s.SynthFreqMod(out, 440, 0, 0.5, lfo, 0.3, true)
	}
}
