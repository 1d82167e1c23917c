package containers

import (
	"slices"
	"sync"
)

// LazySortedArray keeps its elements ordered by a comparator, but defers the
// actual sort until an ordered read needs it. Appends and writable access
// only mark the array dirty; SortIfDirty resynchronizes it in one pass.
//
// Every operation holds a per-array mutex, so an update loop may append
// while a render loop takes a Snapshot.
type LazySortedArray[E any] struct {
	mu    sync.Mutex
	arr   Array[E]
	cmp   func(a, b E) int
	dirty bool
}

// NewLazySortedArray creates an array ordered by cmp, which must return a
// negative, zero or positive value and be a consistent total order.
// Ties are not guaranteed to keep insertion order.
func NewLazySortedArray[E any](cmp func(a, b E) int, capacity int) (*LazySortedArray[E], error) {
	if cmp == nil {
		return nil, opError("NewLazySortedArray", -1, ErrInvalidConfig)
	}
	arr, err := NewArray[E](capacity)
	if err != nil {
		return nil, err
	}
	return &LazySortedArray[E]{arr: *arr, cmp: cmp}, nil
}

func (l *LazySortedArray[E]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.arr.Len()
}

// Dirty reports whether the next ordered read will sort.
func (l *LazySortedArray[E]) Dirty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dirty
}

// MarkDirty forces a sort before the next ordered read, for callers that
// changed an element's ordering key in place.
func (l *LazySortedArray[E]) MarkDirty() {
	l.mu.Lock()
	l.dirty = true
	l.mu.Unlock()
}

func (l *LazySortedArray[E]) Append(v E) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.arr.Append(v); err != nil {
		return err
	}
	l.dirty = true
	return nil
}

// SortIfDirty sorts only when something may have changed the order since
// the last sort. It is the only O(n log n) operation.
func (l *LazySortedArray[E]) SortIfDirty() {
	l.mu.Lock()
	l.sortLocked()
	l.mu.Unlock()
}

// Sort unconditionally sorts the array.
func (l *LazySortedArray[E]) Sort() {
	l.mu.Lock()
	l.dirty = true
	l.sortLocked()
	l.mu.Unlock()
}

func (l *LazySortedArray[E]) sortLocked() {
	if !l.dirty {
		return
	}
	slices.SortFunc(l.arr.data[:l.arr.size], l.cmp)
	l.dirty = false
}

// First returns the lowest-ordered element, sorting first if needed.
func (l *LazySortedArray[E]) First() (E, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sortLocked()
	return l.arr.First()
}

// Last returns the highest-ordered element, sorting first if needed.
func (l *LazySortedArray[E]) Last() (E, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sortLocked()
	return l.arr.Last()
}

// At returns the element at index and marks the array dirty, on the
// assumption that the caller may change the element's ordering key. Read-only
// callers pay for a later sort anyway; use Peek to avoid that.
func (l *LazySortedArray[E]) At(index int) (E, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dirty = true
	return l.arr.At(index)
}

// Peek returns the element at index without touching the dirty flag. The
// caller promises not to change anything the comparator looks at.
func (l *LazySortedArray[E]) Peek(index int) (E, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.arr.At(index)
}

// Remove deletes the element at index. Removal keeps relative order, so the
// dirty flag is left as is.
func (l *LazySortedArray[E]) Remove(index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.arr.Remove(index)
}

// RemoveFunc deletes every element for which match returns true and reports
// how many were removed.
func (l *LazySortedArray[E]) RemoveFunc(match func(E) bool) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	it := l.arr.Iter()
	for it.Next() {
		if match(it.Value()) {
			_ = it.Remove()
			removed++
		}
	}
	return removed
}

// Clear drops all elements and resets the dirty flag.
func (l *LazySortedArray[E]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.arr.Clear()
	l.dirty = false
}

// Snapshot sorts if needed and returns an ordered copy that stays valid
// while other goroutines keep appending.
func (l *LazySortedArray[E]) Snapshot() []E {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sortLocked()
	return slices.Clone(l.arr.data[:l.arr.size])
}
