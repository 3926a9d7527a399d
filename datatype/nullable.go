package datatype

// Optional is a value that may be absent.
type Optional[T any] struct {
	Value   T
	Present bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Present: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Nullable encodes an Optional as a presence byte followed by the payload.
// The slot is padded to a power of two; a zero-filled slot reads as absent,
// so freshly allocated segments need no initialisation.
type Nullable[T any] struct {
	dt   Fixed[T]
	size int
}

// NewNullable wraps dt.
func NewNullable[T any](dt Fixed[T]) Nullable[T] {
	return Nullable[T]{dt: dt, size: NextPowerOfTwo(dt.Size() + 1)}
}

func (n Nullable[T]) Size() int {
	return n.size
}

func (n Nullable[T]) Read(b []byte, off int) Optional[T] {
	if b[off] == 0 {
		return Optional[T]{}
	}
	return Optional[T]{Value: n.dt.Read(b, off+1), Present: true}
}

// Write stores v. An absent value only clears the presence byte.
func (n Nullable[T]) Write(b []byte, off int, v Optional[T]) {
	if !v.Present {
		b[off] = 0
		return
	}
	b[off] = 1
	n.dt.Write(b, off+1, v.Value)
}
