package audio

import (
	"encoding/binary"
	"io"
	"math"
	"sync"
)

// StreamReader renders a mono source as interleaved little-endian float32
// frames, copying each sample to every output channel.
type StreamReader struct {
	mu       sync.Mutex
	source   SampleSource
	channels int
	buf      []float32
}

// NewStreamReader creates a reader with the given channel count, at least 1.
func NewStreamReader(source SampleSource, channels int) *StreamReader {
	return &StreamReader{source: source, channels: max(channels, 1)}
}

func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frameBytes := 4 * r.channels
	frames := len(p) / frameBytes
	if frames == 0 {
		return 0, nil
	}
	if finished(r.source) {
		return 0, io.EOF
	}
	if cap(r.buf) < frames {
		r.buf = make([]float32, frames)
	}
	r.buf = r.buf[:frames]
	r.source.Process(r.buf)
	off := 0
	for _, v := range r.buf {
		u := math.Float32bits(v)
		for c := 0; c < r.channels; c++ {
			binary.LittleEndian.PutUint32(p[off:], u)
			off += 4
		}
	}
	if finished(r.source) {
		return off, io.EOF
	}
	return off, nil
}

func (r *StreamReader) Close() error { return nil }
