package effects

// EQ3Band splits the signal at two one-pole crossovers and rescales each band.
type EQ3Band struct {
	lowGain  float32
	midGain  float32
	highGain float32
	lpAlpha  float32
	hpAlpha  float32
	lp, hp   float32
}

// NewEQ3Band creates a 3-band EQ.
// lowGain, midGain, highGain: gain for each band (1.0 = unity)
// lowFreq: crossover between low and mid
// highFreq: crossover between mid and high
func NewEQ3Band(sampleRate int, lowGain, midGain, highGain, lowFreq, highFreq float32) *EQ3Band {
	return &EQ3Band{
		lowGain:  lowGain,
		midGain:  midGain,
		highGain: highGain,
		lpAlpha:  onePole(sampleRate, float64(lowFreq)),
		hpAlpha:  onePole(sampleRate, float64(highFreq)),
	}
}

func (eq *EQ3Band) Process(buf []float32) {
	for i, x := range buf {
		eq.lp += eq.lpAlpha * (x - eq.lp)
		eq.hp += eq.hpAlpha * (x - eq.hp)
		low := eq.lp
		high := x - eq.hp
		mid := x - low - high
		buf[i] = low*eq.lowGain + mid*eq.midGain + high*eq.highGain
	}
}

func (eq *EQ3Band) Reset() { eq.lp, eq.hp = 0, 0 }
