package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var ErrBitDepth = errors.New("audio: bit depth must be 8 or 16")

func checkBitDepth(bitDepth int) error {
	if bitDepth != 8 && bitDepth != 16 {
		return fmt.Errorf("%w: got %d", ErrBitDepth, bitDepth)
	}
	return nil
}

// EncodePCM quantizes samples to 8-bit unsigned or 16-bit signed
// little-endian PCM. Samples are clipped to [-1, 1] first.
func EncodePCM(samples []float32, bitDepth int) ([]byte, error) {
	if err := checkBitDepth(bitDepth); err != nil {
		return nil, err
	}
	out := make([]byte, len(samples)*bitDepth/8)
	for i, v := range samples {
		v = min(max(v, -1), 1)
		if bitDepth == 8 {
			out[i] = byte(128 + int(math.Round(float64(v)*127)))
			continue
		}
		q := int16(math.Round(float64(v) * math.MaxInt16))
		binary.LittleEndian.PutUint16(out[i*2:], uint16(q))
	}
	return out, nil
}
