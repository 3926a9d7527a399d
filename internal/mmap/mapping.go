package mmap

import (
	"sync/atomic"
)

// Mapping is a read-write memory mapping.
// It owns the underlying byte slice and is responsible for unmapping it.
type Mapping struct {
	data   []byte
	raw    []byte // full mapped region, data is a window into it
	closed atomic.Bool
	// unmap is the platform-specific function to unmap the memory.
	unmap func([]byte) error
}

// MapFile maps size bytes of the file behind h, starting at offset, as a
// shared read-write region. The file must already be at least offset+size
// bytes long. Offsets that are not a multiple of the allocation granularity
// are served by mapping from the preceding boundary.
func MapFile(h Handle, offset int64, size int) (*Mapping, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if offset < 0 {
		return nil, ErrInvalidOffset
	}

	g := int64(granularity())
	aligned := offset &^ (g - 1)
	lead := int(offset - aligned)

	raw, unmapFunc, err := osMap(h.Fd(), aligned, size+lead)
	if err != nil {
		return nil, err
	}

	return &Mapping{data: raw[lead : lead+size : lead+size], raw: raw, unmap: unmapFunc}, nil
}

// MapAnon creates a zero-filled anonymous read-write mapping of size bytes.
// The memory lives outside the Go heap and is invisible to the garbage collector.
func MapAnon(size int) (*Mapping, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	data, unmapFunc, err := osMapAnon(size)
	if err != nil {
		return nil, err
	}

	return &Mapping{data: data, raw: data, unmap: unmapFunc}, nil
}

// Close unmaps the memory. It is idempotent.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil // Already closed
	}
	raw := m.raw
	m.data, m.raw = nil, nil
	if m.unmap != nil && raw != nil {
		return m.unmap(raw)
	}
	return nil
}

// Bytes returns the mapped byte slice.
// Warning: The slice is valid only until Close() is called.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Size returns the size of the mapping in bytes.
func (m *Mapping) Size() int {
	return len(m.data)
}

// Advise provides hints to the kernel about how the memory will be accessed.
func (m *Mapping) Advise(pattern AccessPattern) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if m.data == nil {
		return nil
	}
	return osAdvise(m.data, pattern)
}
