package envelope

import (
	"math"
	"testing"
)

func TestAttackRisesMonotonicallyToDecay(t *testing.T) {
	e := New(10, 10, 0.5, 5, 10, Gated)
	if e.State() != Off {
		t.Fatalf("initial state = %v, want off", e.State())
	}
	prev := e.Amplitude()
	ticks := 0
	for e.State() != Decay {
		if ticks > 20 {
			t.Fatalf("attack did not finish after %d ticks (amp=%f)", ticks, e.Amplitude())
		}
		if got := e.Calculate(440, true); got != 440 {
			t.Fatalf("tick %d: freq = %v, want 440", ticks, got)
		}
		ticks++
		amp := e.Amplitude()
		if amp <= prev {
			t.Fatalf("tick %d: amplitude %f did not increase from %f", ticks, amp, prev)
		}
		if e.State() != Attack && e.State() != Decay {
			t.Fatalf("tick %d: unexpected state %v", ticks, e.State())
		}
		prev = amp
	}
	if e.Amplitude() != 1 {
		t.Fatalf("amplitude at decay = %f, want 1", e.Amplitude())
	}
}

func TestGatedFullCycle(t *testing.T) {
	e := New(10, 10, 0.5, 5, 10, Gated)
	var states []State
	record := func() {
		if len(states) == 0 || states[len(states)-1] != e.State() {
			states = append(states, e.State())
		}
	}
	for i := 0; i < 25; i++ {
		e.Calculate(220, true)
		record()
	}
	var last float32 = -1
	for i := 0; i < 100 && e.State() != Off; i++ {
		last = e.Calculate(220, false)
		record()
	}
	want := []State{Attack, Decay, Hold, Release, Off}
	if len(states) != len(want) {
		t.Fatalf("states = %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Fatalf("states = %v, want %v", states, want)
		}
	}
	if math.Abs(float64(e.Amplitude())) > epsilon {
		t.Fatalf("amplitude at off = %f, want ~0", e.Amplitude())
	}
	if last != 0 {
		t.Fatalf("freq on release completion = %v, want 0", last)
	}
	if got := e.Calculate(220, false); got != 0 {
		t.Fatalf("freq while off = %v, want 0", got)
	}
}

func TestGatedHoldsSustainWhileNoteOn(t *testing.T) {
	e := New(2, 2, 0.25, 1, 4, Gated)
	for i := 0; i < 50; i++ {
		e.Calculate(100, true)
	}
	if e.State() != Hold {
		t.Fatalf("state = %v, want hold while note is held", e.State())
	}
	if e.Amplitude() != 0.25 {
		t.Fatalf("amplitude = %f, want sustain 0.25", e.Amplitude())
	}
}

func TestGatedRetriggersOnFrequencyChange(t *testing.T) {
	e := New(4, 4, 0.5, 1, 4, Gated)
	for i := 0; i < 20; i++ {
		e.Calculate(100, true)
	}
	e.Calculate(200, true)
	if e.State() != Attack {
		t.Fatalf("state after frequency change = %v, want attack", e.State())
	}
}

func TestFreeRunningCompletesCycleOnce(t *testing.T) {
	e := New(3, 3, 0.5, 4, 3, FreeRunning)
	seen := map[State]bool{}
	for i := 0; i < 200; i++ {
		// noteOn is ignored in free-running mode
		e.Calculate(330, i%2 == 0)
		seen[e.State()] = true
	}
	for _, s := range []State{Attack, Decay, Hold, Release, Off} {
		if !seen[s] {
			t.Errorf("state %v never visited", s)
		}
	}
	if e.State() != Off {
		t.Fatalf("final state = %v, want off", e.State())
	}
	if got := e.Calculate(330, true); got != 0 {
		t.Fatalf("same frequency should not retrigger, got %v", got)
	}
	e.Calculate(440, false)
	if e.State() != Attack {
		t.Fatalf("new frequency should retrigger, state = %v", e.State())
	}
}

func TestDegenerateDurationsAreClamped(t *testing.T) {
	e := New(0, -3, 2, -1, 0, Gated)
	if e.Sustain() != 1 {
		t.Fatalf("sustain = %f, want clamp to 1", e.Sustain())
	}
	e.Calculate(100, true)
	if math.IsInf(float64(e.Amplitude()), 0) || math.IsNaN(float64(e.Amplitude())) {
		t.Fatalf("amplitude not finite: %f", e.Amplitude())
	}
	if e.Amplitude() != 1 {
		t.Fatalf("zero attack should reach full scale in one tick, got %f", e.Amplitude())
	}
}

func TestZeroSustainStillReleases(t *testing.T) {
	e := New(100, 10, 0, 1, 10, Gated)
	for i := 0; i < 50; i++ {
		e.Calculate(100, true)
	}
	for i := 0; i < 20; i++ {
		e.Calculate(100, false)
	}
	if e.State() != Off {
		t.Fatalf("state = %v, want off", e.State())
	}
}
