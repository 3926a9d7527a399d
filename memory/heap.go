package memory

// Heap is a Memory whose segments are Go byte slices.
type Heap struct {
	*segments
}

// NewHeap creates a transient on-heap memory.
func NewHeap(opts ...Option) (*Heap, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Heap{segments: newSegments(o, heapAllocator{size: o.segmentSize})}, nil
}

type heapAllocator struct {
	size int
}

func (heapAllocator) name() string { return "heap" }

func (a heapAllocator) allocate(int) (*segment, error) {
	return &segment{data: make([]byte, a.size)}, nil
}

func (heapAllocator) closeBackend() error { return nil }
func (heapAllocator) remove() error       { return nil }
