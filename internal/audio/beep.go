package audio

import (
	"github.com/gopxl/beep"
)

// Streamer adapts a SampleSource to beep.Streamer, writing each mono sample
// to both channels.
type Streamer struct {
	source SampleSource
	buf    []float32
	done   bool
}

func NewStreamer(source SampleSource) *Streamer {
	return &Streamer{source: source}
}

func (s *Streamer) Stream(samples [][2]float64) (int, bool) {
	if s.done || finished(s.source) {
		s.done = true
		return 0, false
	}
	if cap(s.buf) < len(samples) {
		s.buf = make([]float32, len(samples))
	}
	buf := s.buf[:len(samples)]
	s.source.Process(buf)
	for i, v := range buf {
		samples[i][0] = float64(v)
		samples[i][1] = float64(v)
	}
	return len(samples), true
}

func (s *Streamer) Err() error { return nil }

// Format describes mono PCM at the given rate and bit depth for beep encoders.
func Format(sampleRate, bitDepth int) (beep.Format, error) {
	if err := checkBitDepth(bitDepth); err != nil {
		return beep.Format{}, err
	}
	return beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 1,
		Precision:   bitDepth / 8,
	}, nil
}

var _ beep.Streamer = (*Streamer)(nil)
