package datatype

import "math/bits"

// Fixed is a codec whose encoded size does not depend on the value.
type Fixed[T any] interface {
	// Size returns the encoded size in bytes.
	Size() int
	// Read decodes the value stored at b[off:].
	Read(b []byte, off int) T
	// Write encodes v into b[off:].
	Write(b []byte, off int, v T)
}

// Variable is a codec whose encoded size depends on the value.
type Variable[T any] interface {
	// Size returns the encoded size of v in bytes, header included.
	Size(v T) int
	// HeaderSize returns the number of leading bytes SizeAt needs.
	HeaderSize() int
	// SizeAt returns the encoded size of the value stored at b[off:].
	// Only the first HeaderSize() bytes are read.
	SizeAt(b []byte, off int) int
	// Read decodes the value stored at b[off:].
	Read(b []byte, off int) T
	// Write encodes v into b[off:].
	Write(b []byte, off int, v T)
}

// NextPowerOfTwo returns the smallest power of two >= n (1 for n <= 1).
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// AsVariable adapts a fixed codec so it can back an append-only buffer.
func AsVariable[T any](dt Fixed[T]) Variable[T] {
	return fixedVariable[T]{dt: dt}
}

type fixedVariable[T any] struct {
	dt Fixed[T]
}

func (f fixedVariable[T]) Size(T) int                   { return f.dt.Size() }
func (f fixedVariable[T]) HeaderSize() int              { return 0 }
func (f fixedVariable[T]) SizeAt([]byte, int) int       { return f.dt.Size() }
func (f fixedVariable[T]) Read(b []byte, off int) T     { return f.dt.Read(b, off) }
func (f fixedVariable[T]) Write(b []byte, off int, v T) { f.dt.Write(b, off, v) }
