// Package memory provides segmented, byte-addressable storage.
//
// A Memory hands out fixed-size, power-of-two byte segments addressed by
// index. A 64-bit logical position p decomposes into
//
//	segmentIndex  = p >> SegmentShift()
//	segmentOffset = p & SegmentMask()
//
// and every structure in package collection relies on exactly this split.
//
// # Backends
//
//   - Heap: segments are ordinary Go byte slices.
//   - OffHeap: segments are anonymous mappings outside the Go heap, so a
//     multi-gigabyte node cache does not inflate GC work.
//   - MappedFile: segment i is a shared mapping of bytes [i*size, (i+1)*size)
//     of one growing file.
//   - MappedDirectory: segment i is its own file "<i>.part" of exactly size
//     bytes, so a huge sparse address space never needs one pre-sized file.
//
// # Allocation
//
// Segment(i) allocates on first reference. The fast path is a lock-free load
// of an atomically published segment table; the slow path takes a mutex,
// re-checks, allocates and publishes a grown copy of the table. Concurrent
// callers asking for the same new segment observe a single allocation.
//
// # Lifecycle
//
// Close releases (unmaps) all segments. Clear additionally deletes the
// backing file or directory. Both are idempotent. Neither is safe to call
// concurrently with Segment.
package memory
