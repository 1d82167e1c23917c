package synth

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/rogueop/rogueop-go/internal/containers"
	"github.com/rogueop/rogueop-go/internal/effects"
)

// Mixer sums every registered oscillator into one mono stream of any read
// size. Oscillators render in their own fixed buffer sizes; the surplus of
// each is held in a per-oscillator FIFO until the next read.
type Mixer struct {
	reg      *Registry
	mu       sync.Mutex
	pending  map[*Oscillator]*containers.Deque[float32]
	eq       *effects.EQ5Band
	gainBits atomic.Uint32
}

// NewMixer creates a mixer over reg at unity master gain. eq may be nil.
func NewMixer(reg *Registry, eq *effects.EQ5Band) *Mixer {
	m := &Mixer{
		reg:     reg,
		pending: make(map[*Oscillator]*containers.Deque[float32]),
		eq:      eq,
	}
	m.SetGain(1)
	return m
}

// SetGain sets the master gain, clamped to [0, 1].
func (m *Mixer) SetGain(g float32) {
	m.gainBits.Store(math.Float32bits(min(max(g, 0), 1)))
}

func (m *Mixer) Gain() float32 {
	return math.Float32frombits(m.gainBits.Load())
}

// Process fills dst with the mixed output, clipped to [-1, 1].
func (m *Mixer) Process(dst []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(dst)
	live := m.reg.Snapshot()
	seen := make(map[*Oscillator]struct{}, len(live))
	for _, o := range live {
		seen[o] = struct{}{}
		q := m.pending[o]
		if q == nil {
			q = new(containers.Deque[float32])
			_ = q.Reserve(o.BufferSize() * 2)
			m.pending[o] = q
		}
	fill:
		for q.Len() < len(dst) {
			for _, v := range o.Generate() {
				if q.PushBack(v) != nil {
					break fill
				}
			}
		}
		for i := range dst {
			v, err := q.PopFront()
			if err != nil {
				break
			}
			dst[i] += v
		}
	}
	for o := range m.pending {
		if _, ok := seen[o]; !ok {
			delete(m.pending, o)
		}
	}

	if m.eq != nil {
		m.eq.Process(dst)
	}
	g := m.Gain()
	for i, v := range dst {
		dst[i] = min(max(v*g, -1), 1)
	}
}

// Pending reports how many samples are buffered for o.
func (m *Mixer) Pending(o *Oscillator) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if q := m.pending[o]; q != nil {
		return q.Len()
	}
	return 0
}
