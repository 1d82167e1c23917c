package rogueop

import (
	"fmt"
	"io"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	intaudio "github.com/rogueop/rogueop-go/internal/audio"
)

// RenderSamples pulls seconds of mixed output from the engine without a
// device.
func (e *Engine) RenderSamples(seconds float64) []float32 {
	out := make([]float32, e.frames(seconds))
	e.Process(out)
	return out
}

// frames converts seconds to a sample count. Negative and NaN durations
// render nothing.
func (e *Engine) frames(seconds float64) int {
	if !(seconds > 0) {
		return 0
	}
	return int(float64(e.cfg.SampleRate) * seconds)
}

// RenderPCM renders seconds of output quantized at the configured bit depth.
func (e *Engine) RenderPCM(seconds float64) ([]byte, error) {
	return intaudio.EncodePCM(e.RenderSamples(seconds), e.cfg.BitDepth)
}

// WriteWAV encodes seconds of mono output as a WAV file at the configured
// sample rate and bit depth.
func (e *Engine) WriteWAV(w io.WriteSeeker, seconds float64) error {
	format, err := intaudio.Format(e.cfg.SampleRate, e.cfg.BitDepth)
	if err != nil {
		return err
	}
	if err := wav.Encode(w, beep.Take(e.frames(seconds), intaudio.NewStreamer(e)), format); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	return nil
}
