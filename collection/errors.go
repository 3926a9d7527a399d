package collection

import "errors"

var (
	// ErrInvalidValueSize is returned when a fixed value size does not fit the
	// segment layout (not a power of two, or larger than a segment).
	ErrInvalidValueSize = errors.New("collection: invalid value size")
	// ErrInvalidKey is returned when a map that derives addresses from the key
	// receives a negative key or one whose slot address overflows an int64.
	ErrInvalidKey = errors.New("collection: invalid key")
	// ErrOutOfOrder is returned when a sparse or sorted map receives a key
	// smaller than the previous one.
	ErrOutOfOrder = errors.New("collection: key out of order")
	// ErrInvalidPosition is returned for a position outside the written range
	// of an append-only buffer.
	ErrInvalidPosition = errors.New("collection: invalid position")
	// ErrIndexOutOfRange is returned for a negative or too large list index.
	ErrIndexOutOfRange = errors.New("collection: index out of range")
)
