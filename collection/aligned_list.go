package collection

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/osmcache/datatype"
	"github.com/hupe1980/osmcache/memory"
)

// AlignedDataList is an append-only list of fixed-size elements.
// Element i is stored at byte i<<shift of the memory.
type AlignedDataList[T any] struct {
	dt    datatype.Fixed[T]
	mem   memory.Memory
	shift uint
	limit int64 // largest index whose address fits in an int64

	segShift uint
	segMask  int64

	mu   sync.Mutex // serialises Add and size growth in Set
	size atomic.Int64
}

// NewAlignedDataList creates a list over mem. The element size must be a
// power of two no larger than the segment size.
func NewAlignedDataList[T any](dt datatype.Fixed[T], mem memory.Memory) (*AlignedDataList[T], error) {
	size := dt.Size()
	if !memory.IsPowerOfTwo(size) || size > mem.SegmentSize() {
		return nil, fmt.Errorf("%w: element size %d with segment size %d", ErrInvalidValueSize, size, mem.SegmentSize())
	}
	return &AlignedDataList[T]{
		dt:       dt,
		mem:      mem,
		shift:    memory.Log2(size),
		limit:    math.MaxInt64 >> memory.Log2(size),
		segShift: mem.SegmentShift(),
		segMask:  mem.SegmentMask(),
	}, nil
}

func (l *AlignedDataList[T]) inRange(i int64) bool {
	return i >= 0 && i <= l.limit
}

func (l *AlignedDataList[T]) locate(i int64) ([]byte, int, error) {
	pos := i << l.shift
	seg, err := l.mem.Segment(memory.SegmentIndex(pos, l.segShift))
	if err != nil {
		return nil, 0, err
	}
	return seg, memory.SegmentOffset(pos, l.segMask), nil
}

// Add appends v and returns its index.
func (l *AlignedDataList[T]) Add(v T) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.size.Load()
	if !l.inRange(i) {
		return 0, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	seg, off, err := l.locate(i)
	if err != nil {
		return 0, err
	}
	l.dt.Write(seg, off, v)
	l.size.Store(i + 1)
	return i, nil
}

// Get returns element i. Indexes at or beyond Size are not rejected: they
// read whatever the memory holds there, which is how a list is read back
// from a reopened mapped memory.
func (l *AlignedDataList[T]) Get(i int64) (T, error) {
	if !l.inRange(i) {
		var zero T
		return zero, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	seg, off, err := l.locate(i)
	if err != nil {
		var zero T
		return zero, err
	}
	return l.dt.Read(seg, off), nil
}

// Set overwrites element i. Setting at or beyond Size grows the list to i+1.
func (l *AlignedDataList[T]) Set(i int64, v T) error {
	if !l.inRange(i) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	seg, off, err := l.locate(i)
	if err != nil {
		return err
	}
	l.dt.Write(seg, off, v)

	if i >= l.size.Load() {
		l.mu.Lock()
		if i >= l.size.Load() {
			l.size.Store(i + 1)
		}
		l.mu.Unlock()
	}
	return nil
}

// Size returns the number of elements.
func (l *AlignedDataList[T]) Size() int64 {
	return l.size.Load()
}

// Memory returns the backing memory.
func (l *AlignedDataList[T]) Memory() memory.Memory {
	return l.mem
}

// Close closes the backing memory.
func (l *AlignedDataList[T]) Close() error {
	return l.mem.Close()
}
