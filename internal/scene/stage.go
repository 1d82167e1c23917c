// Package scene holds the per-frame bookkeeping of a game: actors updated on
// every logic tick and drawables visited back to front.
package scene

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/rogueop/rogueop-go/internal/containers"
)

// Actor is updated once per logic tick while Active reports true.
// Implementations should be pointer types: removal matches by equality, and a
// value whose type is not comparable can never be removed.
type Actor interface {
	Active() bool
	Update() error
}

// Drawable is visited in draw order. Lower Z is drawn first; Topmost
// drawables come after every other regardless of Z. Removal follows the
// same equality rule as Actor.
type Drawable interface {
	Visible() bool
	Topmost() bool
	Z() float32
}

func drawOrder(a, b Drawable) int {
	if at, bt := a.Topmost(), b.Topmost(); at != bt {
		if at {
			return 1
		}
		return -1
	}
	return cmp.Compare(a.Z(), b.Z())
}

// sameElement compares two interface values without panicking when their
// dynamic type is not comparable; such values never match.
func sameElement(a, b any) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if a == nil {
		return true
	}
	if !reflect.ValueOf(a).Comparable() || !reflect.ValueOf(b).Comparable() {
		return false
	}
	return a == b
}

// Stage owns the actor and drawable sets. Update and Draw may run on
// different goroutines.
type Stage struct {
	mu     sync.Mutex
	actors containers.Array[Actor]
	ticks  uint64

	drawables *containers.LazySortedArray[Drawable]
}

func NewStage() (*Stage, error) {
	d, err := containers.NewLazySortedArray(drawOrder, containers.DefaultCapacity)
	if err != nil {
		return nil, err
	}
	return &Stage{drawables: d}, nil
}

func (s *Stage) AddActor(a Actor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actors.Append(a)
}

// RemoveActor reports whether a was present.
func (s *Stage) RemoveActor(a Actor) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for it := s.actors.Iter(); it.Next(); {
		if sameElement(it.Value(), a) {
			_ = it.Remove()
			return true
		}
	}
	return false
}

func (s *Stage) Actors() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.actors.Len()
}

func (s *Stage) AddDrawable(d Drawable) error {
	return s.drawables.Append(d)
}

func (s *Stage) RemoveDrawable(d Drawable) bool {
	return s.drawables.RemoveFunc(func(x Drawable) bool { return sameElement(x, d) }) > 0
}

func (s *Stage) Drawables() int { return s.drawables.Len() }

// Restack must be called after a drawable's Z or Topmost changes.
func (s *Stage) Restack() { s.drawables.MarkDirty() }

// Update runs one logic tick over the active actors. Actors may add or
// remove actors from inside Update; changes apply from the next tick. Every
// actor runs even if an earlier one fails, and the failures are joined.
func (s *Stage) Update() error {
	s.mu.Lock()
	batch := make([]Actor, 0, s.actors.Len())
	for _, a := range s.actors.All() {
		batch = append(batch, a)
	}
	s.ticks++
	s.mu.Unlock()

	var errs []error
	for _, a := range batch {
		if !a.Active() {
			continue
		}
		if err := a.Update(); err != nil {
			errs = append(errs, fmt.Errorf("actor %T: %w", a, err))
		}
	}
	return errors.Join(errs...)
}

// Ticks counts calls to Update.
func (s *Stage) Ticks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// Draw visits the visible drawables in draw order, sorting first if the set
// changed since the last traversal.
func (s *Stage) Draw(visit func(Drawable)) {
	for _, d := range s.drawables.Snapshot() {
		if d.Visible() {
			visit(d)
		}
	}
}
