package containers

import "iter"

// Deque is a double-ended circular queue over a power-of-two buffer.
// Logical index i (0 = front) lives at physical slot (head+i) & mask, which
// wraps both ends without a modulo or branch: with 16 slots the mask is
// 0b1111, so slot -1 maps to 15 and slot 17 maps to 1.
//
// Deque is not safe for concurrent use.
type Deque[E any] struct {
	data []E
	head int
	size int
	mask int
}

// NewDeque allocates a deque whose capacity is capacity rounded up to the
// next power of two. A non-positive capacity uses DefaultCapacity.
func NewDeque[E any](capacity int) (*Deque[E], error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	capacity = nextPow2(capacity)
	data, err := allocate[E]("NewDeque", capacity)
	if err != nil {
		return nil, err
	}
	return &Deque[E]{data: data, mask: capacity - 1}, nil
}

func (d *Deque[E]) Len() int    { return d.size }
func (d *Deque[E]) Cap() int    { return len(d.data) }
func (d *Deque[E]) Empty() bool { return d.size == 0 }

// Head reports the physical slot of the front element.
func (d *Deque[E]) Head() int { return d.head }

// Tail reports the physical slot one past the back element.
func (d *Deque[E]) Tail() int { return d.physical(d.size) }

func (d *Deque[E]) physical(i int) int { return (d.head + i) & d.mask }

func (d *Deque[E]) PushBack(v E) error {
	if d.size == len(d.data) {
		if err := d.grow("PushBack"); err != nil {
			return err
		}
	}
	d.data[d.physical(d.size)] = v
	d.size++
	return nil
}

func (d *Deque[E]) PushFront(v E) error {
	if d.size == len(d.data) {
		if err := d.grow("PushFront"); err != nil {
			return err
		}
	}
	d.head = (d.head - 1) & d.mask
	d.data[d.head] = v
	d.size++
	return nil
}

func (d *Deque[E]) PopFront() (E, error) {
	var zero E
	if d.size == 0 {
		return zero, opError("PopFront", -1, ErrEmpty)
	}
	v := d.data[d.head]
	d.data[d.head] = zero
	d.head = (d.head + 1) & d.mask
	d.size--
	return v, nil
}

func (d *Deque[E]) PopBack() (E, error) {
	var zero E
	if d.size == 0 {
		return zero, opError("PopBack", -1, ErrEmpty)
	}
	idx := d.physical(d.size - 1)
	v := d.data[idx]
	d.data[idx] = zero
	d.size--
	return v, nil
}

// At returns the element at logical index i from the front.
func (d *Deque[E]) At(i int) (E, error) {
	if i < 0 || i >= d.size {
		var zero E
		return zero, opError("At", i, ErrOutOfRange)
	}
	return d.data[d.physical(i)], nil
}

func (d *Deque[E]) First() (E, error) {
	if d.size == 0 {
		var zero E
		return zero, opError("First", -1, ErrEmpty)
	}
	return d.data[d.head], nil
}

func (d *Deque[E]) Last() (E, error) {
	if d.size == 0 {
		var zero E
		return zero, opError("Last", -1, ErrEmpty)
	}
	return d.data[d.physical(d.size-1)], nil
}

// Remove deletes logical index i in O(min(i, n-i)) by shifting whichever
// side of i is shorter: elements before i move one slot toward the back and
// head advances, or elements after i move one slot toward the front. Masked
// indexing makes this identical for wrapped and contiguous layouts.
func (d *Deque[E]) Remove(i int) error {
	if i < 0 || i >= d.size {
		return opError("Remove", i, ErrOutOfRange)
	}
	var zero E
	if i < d.size/2 {
		for j := i; j > 0; j-- {
			d.data[d.physical(j)] = d.data[d.physical(j-1)]
		}
		d.data[d.head] = zero
		d.head = (d.head + 1) & d.mask
	} else {
		for j := i; j < d.size-1; j++ {
			d.data[d.physical(j)] = d.data[d.physical(j+1)]
		}
		d.data[d.physical(d.size-1)] = zero
	}
	d.size--
	return nil
}

// Reserve grows capacity to the next power of two >= count. The contents are
// linearized and head resets to 0.
func (d *Deque[E]) Reserve(count int) error {
	if count <= d.size || count <= len(d.data) {
		return nil
	}
	return d.realloc("Reserve", nextPow2(count))
}

// Clear drops all elements and releases their references.
func (d *Deque[E]) Clear() {
	clear(d.data)
	d.head = 0
	d.size = 0
}

// All yields logical index/element pairs front to back.
func (d *Deque[E]) All() iter.Seq2[int, E] {
	return func(yield func(int, E) bool) {
		n := d.size
		for i := 0; i < n && i < d.size; i++ {
			if !yield(i, d.data[d.physical(i)]) {
				return
			}
		}
	}
}

func (d *Deque[E]) grow(op string) error {
	newCap := len(d.data) << 1
	if newCap == 0 {
		newCap = 1
	}
	return d.realloc(op, newCap)
}

// realloc copies the live range into a fresh buffer starting at slot 0.
// The range is either one contiguous run [head, head+size) or, when it wraps
// past the end, [head, cap) followed by [0, tail).
func (d *Deque[E]) realloc(op string, newCap int) error {
	data, err := allocate[E](op, newCap)
	if err != nil {
		return err
	}
	if d.head+d.size <= len(d.data) {
		copy(data, d.data[d.head:d.head+d.size])
	} else {
		n := copy(data, d.data[d.head:])
		copy(data[n:], d.data[:d.size-n])
	}
	d.data = data
	d.head = 0
	d.mask = newCap - 1
	return nil
}
