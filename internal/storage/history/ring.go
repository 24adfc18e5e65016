// Package history
package history

// ring is a fixed-capacity FIFO. Once full, each push overwrites the oldest
// element. It does no locking of its own.
type ring[T any] struct {
	buf   []T
	start int
	size  int
}

func newRing[T any](capacity int) *ring[T] {
	return &ring[T]{buf: make([]T, capacity)}
}

func (r *ring[T]) push(v T) {
	c := len(r.buf)
	if r.size < c {
		r.buf[(r.start+r.size)%c] = v
		r.size++
		return
	}
	r.buf[r.start] = v
	r.start = (r.start + 1) % c
}

// items returns a copy, oldest first.
func (r *ring[T]) items() []T {
	out := make([]T, r.size)
	n := copy(out, r.buf[r.start:min(r.start+r.size, len(r.buf))])
	copy(out[n:], r.buf[:r.size-n])
	return out
}

func (r *ring[T]) len() int {
	return r.size
}
