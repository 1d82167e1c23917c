package audio

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/gopxl/beep"
)

// rampSource emits 0, 0.25, 0.5 ... and finishes after limit samples.
type rampSource struct {
	n     int
	limit int
}

func (r *rampSource) Process(dst []float32) {
	for i := range dst {
		dst[i] = float32(r.n) * 0.25
		r.n++
	}
}

func (r *rampSource) Finished() bool { return r.limit > 0 && r.n >= r.limit }

func TestStreamReaderDuplicatesChannels(t *testing.T) {
	r := NewStreamReader(&rampSource{}, 2)
	p := make([]byte, 3*8)
	n, err := r.Read(p)
	if err != nil || n != len(p) {
		t.Fatalf("Read: n=%d err=%v", n, err)
	}
	for frame := 0; frame < 3; frame++ {
		want := float32(frame) * 0.25
		for c := 0; c < 2; c++ {
			off := frame*8 + c*4
			got := math.Float32frombits(binary.LittleEndian.Uint32(p[off:]))
			if got != want {
				t.Errorf("frame %d ch %d: got %v, want %v", frame, c, got, want)
			}
		}
	}
}

func TestStreamReaderPartialFrame(t *testing.T) {
	r := NewStreamReader(&rampSource{}, 1)
	n, err := r.Read(make([]byte, 3))
	if n != 0 || err != nil {
		t.Fatalf("short buffer: n=%d err=%v", n, err)
	}
}

func TestStreamReaderEOF(t *testing.T) {
	r := NewStreamReader(&rampSource{limit: 4}, 1)
	n, err := r.Read(make([]byte, 16))
	if n != 16 || !errors.Is(err, io.EOF) {
		t.Fatalf("final read: n=%d err=%v", n, err)
	}
	n, err = r.Read(make([]byte, 16))
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Fatalf("after finish: n=%d err=%v", n, err)
	}
}

func TestStreamerWithTake(t *testing.T) {
	s := beep.Take(5, NewStreamer(&rampSource{}))
	samples := make([][2]float64, 8)
	n, ok := s.Stream(samples)
	if n != 5 || !ok {
		t.Fatalf("Stream: n=%d ok=%v", n, ok)
	}
	if samples[4][0] != 1 || samples[4][1] != 1 {
		t.Errorf("sample 4: got %v, want [1 1]", samples[4])
	}
	if n, ok := s.Stream(samples); n != 0 || ok {
		t.Errorf("drained take: n=%d ok=%v", n, ok)
	}
}

func TestStreamerStopsWhenFinished(t *testing.T) {
	s := NewStreamer(&rampSource{limit: 2})
	samples := make([][2]float64, 2)
	if n, ok := s.Stream(samples); n != 2 || !ok {
		t.Fatalf("first: n=%d ok=%v", n, ok)
	}
	if n, ok := s.Stream(samples); n != 0 || ok {
		t.Fatalf("second: n=%d ok=%v", n, ok)
	}
}

func TestEncodePCM(t *testing.T) {
	in := []float32{-1, 0, 1, 2}
	b8, err := EncodePCM(in, 8)
	if err != nil {
		t.Fatalf("8-bit: %v", err)
	}
	want8 := []byte{1, 128, 255, 255}
	for i := range want8 {
		if b8[i] != want8[i] {
			t.Errorf("8-bit[%d]: got %d, want %d", i, b8[i], want8[i])
		}
	}

	b16, err := EncodePCM(in, 16)
	if err != nil {
		t.Fatalf("16-bit: %v", err)
	}
	want16 := []int16{-32767, 0, 32767, 32767}
	for i, w := range want16 {
		got := int16(binary.LittleEndian.Uint16(b16[i*2:]))
		if got != w {
			t.Errorf("16-bit[%d]: got %d, want %d", i, got, w)
		}
	}

	if _, err := EncodePCM(in, 24); !errors.Is(err, ErrBitDepth) {
		t.Errorf("24-bit: got %v, want ErrBitDepth", err)
	}
}

func TestFormat(t *testing.T) {
	f, err := Format(11025, 16)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if f.NumChannels != 1 || f.Precision != 2 || f.SampleRate != 11025 {
		t.Errorf("unexpected format %+v", f)
	}
	if _, err := Format(11025, 12); err == nil {
		t.Error("expected bit depth error")
	}
}
