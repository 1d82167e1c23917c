package synth

import (
	"log/slog"
	"sync"

	"github.com/rogueop/rogueop-go/internal/containers"
)

// Registry tracks every live Oscillator so the audio side can enumerate
// them. Oscillators register themselves on construction and stay until
// Unregister or Clear is called.
type Registry struct {
	mu     sync.Mutex
	oscs   containers.Array[*Oscillator]
	logger *slog.Logger
}

// NewRegistry returns an empty registry. A nil logger discards.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry{logger: logger}
}

func (r *Registry) Register(o *Oscillator) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.oscs.Append(o)
}

// Unregister removes o and reports whether it was registered.
func (r *Registry) Unregister(o *Oscillator) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for it := r.oscs.Iter(); it.Next(); {
		if it.Value() == o {
			_ = it.Remove()
			return true
		}
	}
	return false
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.oscs.Len()
}

// Each calls fn for each oscillator in registration order until fn returns
// false. The registry is locked for the duration, so fn must not register
// or unregister.
func (r *Registry) Each(fn func(*Oscillator) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.oscs.All() {
		if !fn(o) {
			return
		}
	}
}

// Snapshot copies the current oscillators out under the lock.
func (r *Registry) Snapshot() []*Oscillator {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Oscillator, 0, r.oscs.Len())
	for _, o := range r.oscs.All() {
		out = append(out, o)
	}
	return out
}

// Clear drops every oscillator. Called at shutdown.
func (r *Registry) Clear() {
	r.mu.Lock()
	n := r.oscs.Len()
	r.oscs.Clear()
	r.mu.Unlock()
	r.logger.Debug("oscillator registry cleared", "count", n)
}
