package collection

import (
	"errors"
	"fmt"

	"github.com/hupe1980/osmcache/datatype"
)

// SparseDataMap stores values for non-decreasing keys densely within each
// 256-key chunk.
//
// For every chunk it records where the chunk's first value lives in values
// (offsets) and that value's offset inside the chunk (pads). Gaps between
// two keys of the same chunk are filled with absent placeholders, so a lookup
// is one subtraction. Chunks without keys cost one offset and one pad entry.
type SparseDataMap[T any] struct {
	offsets *AlignedDataList[int64]
	pads    *AlignedDataList[byte]
	values  *AlignedDataList[datatype.Optional[T]]

	lastKey    int64
	lastChunk  int64
	lastOffset int64
}

// NewSparseDataMap creates a sparse map from three empty lists.
func NewSparseDataMap[T any](offsets *AlignedDataList[int64], pads *AlignedDataList[byte], values *AlignedDataList[datatype.Optional[T]]) *SparseDataMap[T] {
	return &SparseDataMap[T]{
		offsets:   offsets,
		pads:      pads,
		values:    values,
		lastKey:   -1,
		lastChunk: -1,
	}
}

// Put stores v under key. Keys must be non-decreasing; repeating the last key
// overwrites its value.
func (m *SparseDataMap[T]) Put(key int64, v T) error {
	if key < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidKey, key)
	}
	if key < m.lastKey {
		return fmt.Errorf("%w: %d after %d", ErrOutOfOrder, key, m.lastKey)
	}

	chunk, offset := chunkOf(key)
	switch {
	case chunk != m.lastChunk:
		size := m.values.Size()
		for m.offsets.Size() < chunk {
			if err := m.addChunk(size, 0); err != nil {
				return err
			}
		}
		if err := m.addChunk(size, byte(offset)); err != nil {
			return err
		}
		m.lastChunk = chunk
	case offset == m.lastOffset:
		return m.values.Set(m.values.Size()-1, datatype.Some(v))
	default:
		for i := m.lastOffset + 1; i < offset; i++ {
			if _, err := m.values.Add(datatype.None[T]()); err != nil {
				return err
			}
		}
	}

	if _, err := m.values.Add(datatype.Some(v)); err != nil {
		return err
	}
	m.lastKey = key
	m.lastOffset = offset
	return nil
}

func (m *SparseDataMap[T]) addChunk(offset int64, pad byte) error {
	if _, err := m.offsets.Add(offset); err != nil {
		return err
	}
	_, err := m.pads.Add(pad)
	return err
}

// Get returns the value stored under key.
func (m *SparseDataMap[T]) Get(key int64) (T, bool, error) {
	var zero T
	if key < 0 {
		return zero, false, nil
	}

	chunk, offset := chunkOf(key)
	n := m.offsets.Size()
	if chunk >= n {
		return zero, false, nil
	}

	lo, err := m.offsets.Get(chunk)
	if err != nil {
		return zero, false, err
	}
	hi := m.values.Size()
	if chunk+1 < n {
		next, err := m.offsets.Get(chunk + 1)
		if err != nil {
			return zero, false, err
		}
		hi = min(hi, next)
	}
	hi--

	pad, err := m.pads.Get(chunk)
	if err != nil {
		return zero, false, err
	}
	index := lo + offset - int64(pad)
	if index < lo || index > hi {
		return zero, false, nil
	}

	o, err := m.values.Get(index)
	if err != nil {
		return zero, false, err
	}
	return o.Value, o.Present, nil
}

// Close closes the three lists.
func (m *SparseDataMap[T]) Close() error {
	return errors.Join(m.offsets.Close(), m.pads.Close(), m.values.Close())
}
