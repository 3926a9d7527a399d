package collection

import (
	"errors"
	"fmt"

	"github.com/hupe1980/osmcache/datatype"
)

// IndexedDataList is a list of variable-size values. Index i maps to the
// position of the value in an append-only buffer.
type IndexedDataList[T any] struct {
	index  *AlignedDataList[int64]
	values *AppendOnlyBuffer[T]
}

// NewIndexedDataList creates a list from an empty index and buffer.
func NewIndexedDataList[T any](index *AlignedDataList[int64], values *AppendOnlyBuffer[T]) *IndexedDataList[T] {
	return &IndexedDataList[T]{index: index, values: values}
}

// Add appends v and returns its index.
func (l *IndexedDataList[T]) Add(v T) (int64, error) {
	pos, err := l.values.Add(v)
	if err != nil {
		return 0, err
	}
	return l.index.Add(int64(pos))
}

// Get returns the value at index i.
func (l *IndexedDataList[T]) Get(i int64) (T, error) {
	if i < 0 || i >= l.index.Size() {
		var zero T
		return zero, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	pos, err := l.index.Get(i)
	if err != nil {
		var zero T
		return zero, err
	}
	return l.values.Get(Position(pos))
}

// Set replaces the value at index i. The old value stays in the buffer.
func (l *IndexedDataList[T]) Set(i int64, v T) error {
	if i < 0 || i >= l.index.Size() {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	pos, err := l.values.Add(v)
	if err != nil {
		return err
	}
	return l.index.Set(i, int64(pos))
}

// Size returns the number of indexes.
func (l *IndexedDataList[T]) Size() int64 {
	return l.index.Size()
}

// Close closes the index and the buffer.
func (l *IndexedDataList[T]) Close() error {
	return errors.Join(l.index.Close(), l.values.Close())
}

// IndexedDataStore maps non-negative ids to variable-size values. Slot id of
// the index holds the value's position, or nothing if id was never put.
type IndexedDataStore[T any] struct {
	index  *AlignedDataList[datatype.Optional[int64]]
	values *AppendOnlyBuffer[T]
}

// NewIndexedDataStore creates a store from an empty index and buffer. The
// index codec is normally datatype.NewNullable(datatype.Long{}).
func NewIndexedDataStore[T any](index *AlignedDataList[datatype.Optional[int64]], values *AppendOnlyBuffer[T]) *IndexedDataStore[T] {
	return &IndexedDataStore[T]{index: index, values: values}
}

// Put stores v under id. Ids may arrive in any order; the last write wins.
func (s *IndexedDataStore[T]) Put(id int64, v T) error {
	if !s.index.inRange(id) {
		return fmt.Errorf("%w: %d", ErrInvalidKey, id)
	}
	pos, err := s.values.Add(v)
	if err != nil {
		return err
	}
	return s.index.Set(id, datatype.Some(int64(pos)))
}

// Get returns the value stored under id.
func (s *IndexedDataStore[T]) Get(id int64) (T, bool, error) {
	var zero T
	if id < 0 || id >= s.index.Size() {
		return zero, false, nil
	}
	o, err := s.index.Get(id)
	if err != nil || !o.Present {
		return zero, false, err
	}
	v, err := s.values.Get(Position(o.Value))
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// Size returns one past the largest id put.
func (s *IndexedDataStore[T]) Size() int64 {
	return s.index.Size()
}

// Close closes the index and the buffer.
func (s *IndexedDataStore[T]) Close() error {
	return errors.Join(s.index.Close(), s.values.Close())
}
