package memory

import (
	"github.com/hupe1980/osmcache/internal/mmap"
)

// OffHeap is a Memory whose segments are anonymous mappings outside the Go
// heap. Segments cannot be written to disk without a copy.
type OffHeap struct {
	*segments
}

// NewOffHeap creates a transient off-heap memory.
func NewOffHeap(opts ...Option) (*OffHeap, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return &OffHeap{segments: newSegments(o, offHeapAllocator{size: o.segmentSize, advice: o.advice})}, nil
}

type offHeapAllocator struct {
	size   int
	advice mmap.AccessPattern
}

func (offHeapAllocator) name() string { return "offheap" }

func (a offHeapAllocator) allocate(index int) (*segment, error) {
	m, err := mmap.MapAnon(a.size)
	if err != nil {
		return nil, &MemoryError{Op: "map", Segment: index, Err: err}
	}
	if a.advice != mmap.AccessDefault {
		_ = m.Advise(a.advice)
	}
	return &segment{data: m.Bytes(), release: m.Close}, nil
}

func (offHeapAllocator) closeBackend() error { return nil }
func (offHeapAllocator) remove() error       { return nil }
