package collection

import (
	"errors"
	"fmt"

	"github.com/hupe1980/osmcache/datatype"
)

// SortedDataMap stores (key, position) pairs in key order and finds a key by
// binary search inside its 256-key chunk. Values are variable-size and live
// in an append-only buffer.
type SortedDataMap[T any] struct {
	offsets *AlignedDataList[int64]
	keys    *AlignedDataList[datatype.Pair[int64, int64]]
	values  *AppendOnlyBuffer[T]

	lastKey   int64
	lastChunk int64
}

// NewSortedDataMap creates a sorted map from two empty lists and an empty
// buffer.
func NewSortedDataMap[T any](offsets *AlignedDataList[int64], keys *AlignedDataList[datatype.Pair[int64, int64]], values *AppendOnlyBuffer[T]) *SortedDataMap[T] {
	return &SortedDataMap[T]{
		offsets:   offsets,
		keys:      keys,
		values:    values,
		lastKey:   -1,
		lastChunk: -1,
	}
}

// Put stores v under key. Keys must be non-decreasing; repeating the last key
// replaces its value.
func (m *SortedDataMap[T]) Put(key int64, v T) error {
	if key < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidKey, key)
	}
	if key < m.lastKey {
		return fmt.Errorf("%w: %d after %d", ErrOutOfOrder, key, m.lastKey)
	}

	pos, err := m.values.Add(v)
	if err != nil {
		return err
	}
	pair := datatype.Pair[int64, int64]{Left: key, Right: int64(pos)}

	if key == m.lastKey {
		return m.keys.Set(m.keys.Size()-1, pair)
	}

	if chunk, _ := chunkOf(key); chunk != m.lastChunk {
		size := m.keys.Size()
		for m.offsets.Size() <= chunk {
			if _, err := m.offsets.Add(size); err != nil {
				return err
			}
		}
		m.lastChunk = chunk
	}

	if _, err := m.keys.Add(pair); err != nil {
		return err
	}
	m.lastKey = key
	return nil
}

// Get returns the value stored under key.
func (m *SortedDataMap[T]) Get(key int64) (T, bool, error) {
	var zero T
	if key < 0 {
		return zero, false, nil
	}

	chunk, _ := chunkOf(key)
	n := m.offsets.Size()
	if chunk >= n {
		return zero, false, nil
	}

	lo, err := m.offsets.Get(chunk)
	if err != nil {
		return zero, false, err
	}
	hi := m.keys.Size()
	if chunk+1 < n {
		next, err := m.offsets.Get(chunk + 1)
		if err != nil {
			return zero, false, err
		}
		hi = min(hi, next)
	}
	hi--

	for lo <= hi {
		mid := int64(uint64(lo+hi) >> 1)
		p, err := m.keys.Get(mid)
		if err != nil {
			return zero, false, err
		}
		switch {
		case p.Left < key:
			lo = mid + 1
		case p.Left > key:
			hi = mid - 1
		default:
			v, err := m.values.Get(Position(p.Right))
			if err != nil {
				return zero, false, err
			}
			return v, true, nil
		}
	}
	return zero, false, nil
}

// Close closes the lists and the buffer.
func (m *SortedDataMap[T]) Close() error {
	return errors.Join(m.offsets.Close(), m.keys.Close(), m.values.Close())
}
