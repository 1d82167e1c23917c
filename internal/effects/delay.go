package effects

// Delay is a feedback echo.
type Delay struct {
	line     []float32
	pos      int
	feedback float32
	wet      float32
}

// NewDelay creates a delay effect.
// delayMs: delay time in milliseconds
// feedback: feedback amount 0..0.95
// wet: wet/dry mix 0..1
func NewDelay(sampleRate int, delayMs float64, feedback, wet float32) *Delay {
	samples := max(int(delayMs*float64(sampleRate)/1000.0), 1)
	return &Delay{
		line:     make([]float32, samples),
		feedback: clamp(feedback, 0, 0.95),
		wet:      clamp(wet, 0, 1),
	}
}

func (d *Delay) Process(buf []float32) {
	for i, x := range buf {
		echo := d.line[d.pos]
		d.line[d.pos] = x + echo*d.feedback
		d.pos++
		if d.pos == len(d.line) {
			d.pos = 0
		}
		buf[i] = x*(1-d.wet) + echo*d.wet
	}
}

func (d *Delay) Reset() {
	clear(d.line)
	d.pos = 0
}
