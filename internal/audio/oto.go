package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// OtoPlayer plays a source through an oto context opened as mono float32.
type OtoPlayer struct {
	mu      sync.Mutex
	player  *oto.Player
	reader  *StreamReader
	playing bool
}

var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoRate int
	otoErr  error
)

func sharedOtoContext(sampleRate int) (*oto.Context, error) {
	otoOnce.Do(func() {
		otoRate = sampleRate
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatFloat32LE,
		})
		if err != nil {
			otoErr = err
			return
		}
		<-ready
		otoCtx = ctx
	})
	if otoErr != nil {
		return nil, otoErr
	}
	if otoRate != sampleRate {
		return nil, fmt.Errorf("oto context already initialized at %d Hz (requested %d Hz)", otoRate, sampleRate)
	}
	return otoCtx, nil
}

func NewOtoPlayer(sampleRate int, source SampleSource) (*OtoPlayer, error) {
	ctx, err := sharedOtoContext(sampleRate)
	if err != nil {
		return nil, err
	}
	reader := NewStreamReader(source, 1)
	return &OtoPlayer{player: ctx.NewPlayer(reader), reader: reader}, nil
}

func (o *OtoPlayer) Play() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.player != nil && !o.playing {
		o.player.Play()
		o.playing = true
	}
}

func (o *OtoPlayer) Pause() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.player != nil && o.playing {
		o.player.Pause()
		o.playing = false
	}
}

func (o *OtoPlayer) IsPlaying() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.player != nil && o.player.IsPlaying()
}

func (o *OtoPlayer) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.player == nil {
		return nil
	}
	err := o.player.Close()
	o.player = nil
	o.playing = false
	if err != nil {
		return err
	}
	return o.reader.Close()
}

var _ Backend = (*OtoPlayer)(nil)
