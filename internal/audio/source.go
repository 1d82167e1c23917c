// Package audio moves mono float32 sample streams to an output: an ebiten
// or oto device, a beep streamer, or raw PCM bytes.
package audio

// SampleSource fills dst with the next mono samples.
type SampleSource interface {
	Process(dst []float32)
}

// FinishingSource is a SampleSource that can signal when playback has ended.
// Once Finished reports true, readers return io.EOF on the next read.
type FinishingSource interface {
	SampleSource
	Finished() bool
}

// Backend is a device output that pulls from a SampleSource.
type Backend interface {
	Play()
	Pause()
	IsPlaying() bool
	Close() error
}

func finished(s SampleSource) bool {
	fs, ok := s.(FinishingSource)
	return ok && fs.Finished()
}
