package collection

import (
	"fmt"
	"math"

	"github.com/hupe1980/osmcache/datatype"
	"github.com/hupe1980/osmcache/memory"
)

// DenseDataMap stores the value for key k at byte k<<shift. Every slot
// carries a presence byte, so never-written keys read as absent.
//
// Memory grows with the largest key put, not with the number of keys.
type DenseDataMap[T any] struct {
	dt       datatype.Nullable[T]
	mem      memory.Memory
	shift    uint
	limit    int64 // largest key whose slot address fits in an int64
	segShift uint
	segMask  int64
}

// NewDenseDataMap creates a dense map over mem.
func NewDenseDataMap[T any](dt datatype.Fixed[T], mem memory.Memory) (*DenseDataMap[T], error) {
	n := datatype.NewNullable(dt)
	size := n.Size()
	if size > mem.SegmentSize() || mem.SegmentSize()%size != 0 {
		return nil, fmt.Errorf("%w: slot size %d with segment size %d", ErrInvalidValueSize, size, mem.SegmentSize())
	}
	return &DenseDataMap[T]{
		dt:       n,
		mem:      mem,
		shift:    memory.Log2(size),
		limit:    math.MaxInt64 >> memory.Log2(size),
		segShift: mem.SegmentShift(),
		segMask:  mem.SegmentMask(),
	}, nil
}

func (m *DenseDataMap[T]) locate(key int64) ([]byte, int, error) {
	pos := key << m.shift
	seg, err := m.mem.Segment(memory.SegmentIndex(pos, m.segShift))
	if err != nil {
		return nil, 0, err
	}
	return seg, memory.SegmentOffset(pos, m.segMask), nil
}

// Put stores v under key. Keys may arrive in any order; the last write wins.
func (m *DenseDataMap[T]) Put(key int64, v T) error {
	if key < 0 || key > m.limit {
		return fmt.Errorf("%w: %d", ErrInvalidKey, key)
	}
	seg, off, err := m.locate(key)
	if err != nil {
		return err
	}
	m.dt.Write(seg, off, datatype.Some(v))
	return nil
}

// Get returns the value stored under key.
func (m *DenseDataMap[T]) Get(key int64) (T, bool, error) {
	var zero T
	if key < 0 || key > m.limit {
		return zero, false, nil
	}
	seg, off, err := m.locate(key)
	if err != nil {
		return zero, false, err
	}
	o := m.dt.Read(seg, off)
	return o.Value, o.Present, nil
}

// Close closes the backing memory.
func (m *DenseDataMap[T]) Close() error {
	return m.mem.Close()
}
