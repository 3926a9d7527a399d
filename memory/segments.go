package memory

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/osmcache/internal/conv"
	"github.com/hupe1980/osmcache/internal/resource"
)

// segment is one allocated unit. release is nil for heap segments.
type segment struct {
	data    []byte
	release func() error
}

// allocator creates the backend segment for an index.
type allocator interface {
	name() string
	allocate(index int) (*segment, error)
	// closeBackend releases backend resources after all segments are released.
	closeBackend() error
	// remove deletes the backing storage. Called after closeBackend.
	remove() error
}

// segments implements the shared part of every Memory: addressing constants,
// the lazily grown segment table and the lifecycle.
type segments struct {
	size  int
	shift uint
	mask  int64

	// table is replaced, never mutated, so readers need no lock.
	table atomic.Pointer[[]*segment]

	mu        sync.Mutex // Protects growth, allocated and closed
	allocated *roaring.Bitmap
	closed    bool
	cleared   bool

	backend    allocator
	logger     *slog.Logger
	controller *resource.Controller
}

func newSegments(o options, backend allocator) *segments {
	s := &segments{
		size:       o.segmentSize,
		shift:      Log2(o.segmentSize),
		mask:       int64(o.segmentSize - 1),
		allocated:  roaring.New(),
		backend:    backend,
		logger:     o.logger.With("backend", backend.name()),
		controller: o.controller,
	}
	empty := make([]*segment, 0)
	s.table.Store(&empty)
	return s
}

func (s *segments) SegmentSize() int   { return s.size }
func (s *segments) SegmentShift() uint { return s.shift }
func (s *segments) SegmentMask() int64 { return s.mask }

// Segment returns the segment at index, allocating it on first use.
func (s *segments) Segment(index int) ([]byte, error) {
	if index < 0 {
		return nil, ErrInvalidSegment
	}

	// Fast path: segment already published.
	table := *s.table.Load()
	if index < len(table) {
		if seg := table[index]; seg != nil {
			return seg.data, nil
		}
	}

	return s.allocate(index)
}

func (s *segments) allocate(index int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}

	// Double check under lock
	current := *s.table.Load()
	if index < len(current) && current[index] != nil {
		return current[index].data, nil
	}

	member, err := conv.IntToUint32(index)
	if err != nil {
		return nil, &MemoryError{Op: "allocate", Segment: index, Err: err}
	}

	if err := s.controller.AcquireMemory(int64(s.size)); err != nil {
		return nil, &MemoryError{Op: "allocate", Segment: index, Err: err}
	}

	seg, err := s.backend.allocate(index)
	if err != nil {
		s.controller.ReleaseMemory(int64(s.size))
		return nil, err
	}

	grown := make([]*segment, max(len(current), index+1))
	copy(grown, current)
	grown[index] = seg
	s.table.Store(&grown)
	s.allocated.Add(member)

	s.logger.Debug("segment allocated", "index", index, "size", s.size)

	return seg.data, nil
}

// Allocated returns a snapshot of the indexes of all existing segments.
func (s *segments) Allocated() *roaring.Bitmap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allocated.Clone()
}

// markExisting registers a segment that exists in backing storage but has not
// been mapped yet.
func (s *segments) markExisting(index int) {
	if member, err := conv.IntToUint32(index); err == nil {
		s.allocated.Add(member)
	}
}

// Close releases all segments. It is idempotent.
func (s *segments) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeLocked()
}

func (s *segments) closeLocked() error {
	if s.closed {
		return nil
	}
	s.closed = true

	table := *s.table.Load()
	empty := make([]*segment, 0)
	s.table.Store(&empty)

	var errs []error
	released := 0
	for i, seg := range table {
		if seg == nil {
			continue
		}
		released++
		if seg.release != nil {
			if err := seg.release(); err != nil {
				errs = append(errs, &MemoryError{Op: "release", Segment: i, Err: err})
			}
		}
	}
	s.controller.ReleaseMemory(int64(released) * int64(s.size))

	if err := s.backend.closeBackend(); err != nil {
		errs = append(errs, err)
	}

	s.logger.Debug("memory closed", "segments", released)

	return errors.Join(errs...)
}

// Clear closes the memory and deletes its backing storage. It is idempotent.
func (s *segments) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	closeErr := s.closeLocked()
	if s.cleared {
		return closeErr
	}
	s.cleared = true
	s.allocated.Clear()

	if err := s.backend.remove(); err != nil {
		return errors.Join(closeErr, err)
	}

	s.logger.Debug("memory cleared")

	return closeErr
}
