package collection

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/osmcache/datatype"
	"github.com/hupe1980/osmcache/memory"
)

// Position is the byte offset of a value inside the AppendOnlyBuffer that
// returned it. It has no meaning for any other buffer.
type Position int64

// AppendOnlyBuffer stores variable-size values back to back. Values may
// straddle a segment boundary; they are then copied through a scratch buffer.
type AppendOnlyBuffer[T any] struct {
	dt  datatype.Variable[T]
	mem memory.Memory

	segSize  int
	segShift uint
	segMask  int64

	mu     sync.Mutex // serialises Add
	offset atomic.Int64
	count  atomic.Int64
}

// NewAppendOnlyBuffer creates an empty buffer over mem.
func NewAppendOnlyBuffer[T any](dt datatype.Variable[T], mem memory.Memory) *AppendOnlyBuffer[T] {
	return &AppendOnlyBuffer[T]{
		dt:       dt,
		mem:      mem,
		segSize:  mem.SegmentSize(),
		segShift: mem.SegmentShift(),
		segMask:  mem.SegmentMask(),
	}
}

// Add appends v and returns the position it was written at.
func (b *AppendOnlyBuffer[T]) Add(v T) (Position, error) {
	size := b.dt.Size(v)

	b.mu.Lock()
	defer b.mu.Unlock()

	pos := b.offset.Load()
	seg, off, err := b.locate(pos)
	if err != nil {
		return 0, err
	}
	if off+size <= b.segSize {
		b.dt.Write(seg, off, v)
	} else {
		scratch := make([]byte, size)
		b.dt.Write(scratch, 0, v)
		if err := b.copyIn(pos, scratch); err != nil {
			return 0, err
		}
	}

	b.offset.Store(pos + int64(size))
	b.count.Add(1)
	return Position(pos), nil
}

// Get decodes the value at p. p must have been returned by Add on this
// buffer; other offsets inside the written range decode garbage.
func (b *AppendOnlyBuffer[T]) Get(p Position) (T, error) {
	v, _, err := b.read(int64(p))
	return v, err
}

func (b *AppendOnlyBuffer[T]) read(pos int64) (T, int, error) {
	var zero T
	if pos < 0 || pos >= b.offset.Load() {
		return zero, 0, fmt.Errorf("%w: %d", ErrInvalidPosition, pos)
	}

	seg, off, err := b.locate(pos)
	if err != nil {
		return zero, 0, err
	}

	var size int
	if hdr := b.dt.HeaderSize(); off+hdr <= b.segSize {
		size = b.dt.SizeAt(seg, off)
	} else {
		head := make([]byte, hdr)
		if err := b.copyOut(pos, head); err != nil {
			return zero, 0, err
		}
		size = b.dt.SizeAt(head, 0)
	}

	if off+size <= b.segSize {
		return b.dt.Read(seg, off), size, nil
	}

	scratch := make([]byte, size)
	if err := b.copyOut(pos, scratch); err != nil {
		return zero, 0, err
	}
	return b.dt.Read(scratch, 0), size, nil
}

func (b *AppendOnlyBuffer[T]) locate(pos int64) ([]byte, int, error) {
	seg, err := b.mem.Segment(memory.SegmentIndex(pos, b.segShift))
	if err != nil {
		return nil, 0, err
	}
	return seg, memory.SegmentOffset(pos, b.segMask), nil
}

// copyIn scatters src across consecutive segments starting at pos.
func (b *AppendOnlyBuffer[T]) copyIn(pos int64, src []byte) error {
	for len(src) > 0 {
		seg, off, err := b.locate(pos)
		if err != nil {
			return err
		}
		n := copy(seg[off:], src)
		src = src[n:]
		pos += int64(n)
	}
	return nil
}

// copyOut gathers len(dst) bytes starting at pos.
func (b *AppendOnlyBuffer[T]) copyOut(pos int64, dst []byte) error {
	for len(dst) > 0 {
		seg, off, err := b.locate(pos)
		if err != nil {
			return err
		}
		n := copy(dst, seg[off:])
		dst = dst[n:]
		pos += int64(n)
	}
	return nil
}

// Size returns the number of values added.
func (b *AppendOnlyBuffer[T]) Size() int64 {
	return b.count.Load()
}

// Offset returns the number of bytes written, which is also the position the
// next value will get.
func (b *AppendOnlyBuffer[T]) Offset() int64 {
	return b.offset.Load()
}

// Iterator returns an iterator over the values written so far, in order.
func (b *AppendOnlyBuffer[T]) Iterator() *Iterator[T] {
	return &Iterator[T]{b: b, end: b.offset.Load()}
}

// Close closes the backing memory.
func (b *AppendOnlyBuffer[T]) Close() error {
	return b.mem.Close()
}

// Iterator walks an AppendOnlyBuffer from position 0.
//
//	it := buf.Iterator()
//	for it.Next() {
//	    use(it.Position(), it.Value())
//	}
//	if err := it.Err(); err != nil { ... }
type Iterator[T any] struct {
	b     *AppendOnlyBuffer[T]
	next  int64
	end   int64
	pos   Position
	value T
	err   error
}

// Next advances to the next value and reports whether there is one.
func (it *Iterator[T]) Next() bool {
	if it.err != nil || it.next >= it.end {
		return false
	}
	v, size, err := it.b.read(it.next)
	if err != nil {
		it.err = err
		return false
	}
	it.pos = Position(it.next)
	it.value = v
	it.next += int64(size)
	return true
}

// Value returns the current value.
func (it *Iterator[T]) Value() T { return it.value }

// Position returns the position of the current value.
func (it *Iterator[T]) Position() Position { return it.pos }

// Err returns the first error encountered.
func (it *Iterator[T]) Err() error { return it.err }
