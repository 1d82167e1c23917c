package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// Player plays a source through ebiten's audio context. Ebiten output is
// always stereo, so mono samples are duplicated.
type Player struct {
	player *ebitaudio.Player
	reader io.ReadCloser
}

var (
	ebitenOnce sync.Once
	ebitenCtx  *ebitaudio.Context
	ebitenRate int
)

// ebiten allows one context per process.
func sharedEbitenContext(sampleRate int) (*ebitaudio.Context, error) {
	ebitenOnce.Do(func() {
		ebitenRate = sampleRate
		ebitenCtx = ebitaudio.NewContext(sampleRate)
	})
	if ebitenRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", ebitenRate, sampleRate)
	}
	return ebitenCtx, nil
}

func NewPlayer(sampleRate int, source SampleSource) (*Player, error) {
	ctx, err := sharedEbitenContext(sampleRate)
	if err != nil {
		return nil, err
	}
	reader := NewStreamReader(source, 2)
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, err
	}
	return &Player{player: pl, reader: reader}, nil
}

func (p *Player) Play()           { p.player.Play() }
func (p *Player) Pause()          { p.player.Pause() }
func (p *Player) IsPlaying() bool { return p.player.IsPlaying() }

// Position returns the current playback position (what the listener actually hears).
func (p *Player) Position() time.Duration {
	return p.player.Position()
}

func (p *Player) Close() error {
	p.player.Pause()
	if err := p.player.Close(); err != nil {
		return err
	}
	return p.reader.Close()
}

var _ Backend = (*Player)(nil)
