package effects

import "math"

// Distortion is tanh waveshaping with pre/post gain and an optional lowpass.
type Distortion struct {
	preGain  float32
	postGain float32
	lpfAlpha float32
	lpf      float32
}

// NewDistortion creates a distortion effect.
// preGain: input gain (higher = more distortion)
// postGain: output gain
// lpfCutoff: lowpass cutoff in Hz (0 = no filter)
func NewDistortion(sampleRate int, preGain, postGain, lpfCutoff float32) *Distortion {
	d := &Distortion{preGain: preGain, postGain: postGain}
	if lpfCutoff > 0 && lpfCutoff < float32(sampleRate)/2 {
		d.lpfAlpha = onePole(sampleRate, float64(lpfCutoff))
	}
	return d
}

func (d *Distortion) Process(buf []float32) {
	for i, x := range buf {
		y := float32(math.Tanh(float64(x*d.preGain))) * d.postGain
		if d.lpfAlpha > 0 {
			d.lpf += d.lpfAlpha * (y - d.lpf)
			y = d.lpf
		}
		buf[i] = y
	}
}

func (d *Distortion) Reset() { d.lpf = 0 }
