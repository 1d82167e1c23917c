package containers

import "iter"

// Array is a contiguous, index-addressed container with amortized doubling
// growth. Elements live at [0, Len()). The zero value is an empty array that
// allocates on first append.
//
// Array is not safe for concurrent use.
type Array[E any] struct {
	data []E // len(data) is the capacity
	size int
}

// NewArray preallocates space for capacity elements. A non-positive capacity
// uses DefaultCapacity.
func NewArray[E any](capacity int) (*Array[E], error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	data, err := allocate[E]("NewArray", capacity)
	if err != nil {
		return nil, err
	}
	return &Array[E]{data: data}, nil
}

func (a *Array[E]) Len() int    { return a.size }
func (a *Array[E]) Cap() int    { return len(a.data) }
func (a *Array[E]) Empty() bool { return a.size == 0 }

// Append adds v to the end, doubling capacity when full.
func (a *Array[E]) Append(v E) error {
	if a.size == len(a.data) {
		newCap := len(a.data) << 1
		if newCap == 0 {
			newCap = 1
		}
		if err := a.realloc("Append", newCap); err != nil {
			return err
		}
	}
	a.data[a.size] = v
	a.size++
	return nil
}

// At returns the element at index.
func (a *Array[E]) At(index int) (E, error) {
	if index < 0 || index >= a.size {
		var zero E
		return zero, opError("At", index, ErrOutOfRange)
	}
	return a.data[index], nil
}

// Set overwrites the element at index.
func (a *Array[E]) Set(index int, v E) error {
	if index < 0 || index >= a.size {
		return opError("Set", index, ErrOutOfRange)
	}
	a.data[index] = v
	return nil
}

func (a *Array[E]) First() (E, error) {
	if a.size == 0 {
		var zero E
		return zero, opError("First", -1, ErrEmpty)
	}
	return a.data[0], nil
}

func (a *Array[E]) Last() (E, error) {
	if a.size == 0 {
		var zero E
		return zero, opError("Last", -1, ErrEmpty)
	}
	return a.data[a.size-1], nil
}

// Remove deletes the element at index and shifts everything after it down
// by one. This is O(n); avoid it on per-frame paths.
func (a *Array[E]) Remove(index int) error {
	if index < 0 || index >= a.size {
		return opError("Remove", index, ErrOutOfRange)
	}
	copy(a.data[index:a.size-1], a.data[index+1:a.size])
	var zero E
	a.data[a.size-1] = zero
	a.size--
	return nil
}

// Reserve grows capacity to the next power of two >= count without changing
// the logical size. It is a no-op when count <= Len() or when the capacity
// already suffices.
func (a *Array[E]) Reserve(count int) error {
	if count <= a.size || count <= len(a.data) {
		return nil
	}
	return a.realloc("Reserve", nextPow2(count))
}

// Clear drops all elements, releasing references so they can be collected.
// Capacity is retained.
func (a *Array[E]) Clear() {
	clear(a.data[:a.size])
	a.size = 0
}

// All yields index/element pairs over [0, Len()) as of the start of iteration.
// Mutating the array while ranging is unsupported; use Iter for removal.
func (a *Array[E]) All() iter.Seq2[int, E] {
	return func(yield func(int, E) bool) {
		n := a.size
		for i := 0; i < n && i < a.size; i++ {
			if !yield(i, a.data[i]) {
				return
			}
		}
	}
}

// Iter returns a cursor that supports removing the current element mid-loop.
func (a *Array[E]) Iter() *Iterator[E] {
	return &Iterator[E]{a: a, cur: -1}
}

func (a *Array[E]) realloc(op string, newCap int) error {
	data, err := allocate[E](op, newCap)
	if err != nil {
		return err
	}
	copy(data, a.data[:a.size])
	a.data = data
	return nil
}

// Iterator walks an Array front to back.
//
//	it := arr.Iter()
//	for it.Next() {
//		if dead(it.Value()) {
//			it.Remove()
//		}
//	}
type Iterator[E any] struct {
	a    *Array[E]
	next int
	cur  int
}

func (it *Iterator[E]) Next() bool {
	if it.next >= it.a.size {
		it.cur = -1
		return false
	}
	it.cur = it.next
	it.next++
	return true
}

// Value returns the current element. It must follow a Next that returned true.
func (it *Iterator[E]) Value() E {
	return it.a.data[it.cur]
}

// Index returns the logical index of the current element, or -1.
func (it *Iterator[E]) Index() int { return it.cur }

// Remove deletes the current element and rewinds the cursor so the element
// that slid into its slot is visited next.
func (it *Iterator[E]) Remove() error {
	if it.cur < 0 {
		return opError("Iterator.Remove", -1, ErrIteratorState)
	}
	if err := it.a.Remove(it.cur); err != nil {
		return err
	}
	it.next = it.cur
	it.cur = -1
	return nil
}
