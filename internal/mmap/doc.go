// Package mmap provides read-write memory mappings used as segment storage.
//
// # Overview
//
// A Mapping is either a shared view of a byte range inside a file (MapFile) or
// an anonymous region outside the Go heap (MapAnon). Writes to a file mapping
// land in the page cache and reach the file without explicit I/O.
//
// # Usage
//
//	f, _ := os.OpenFile("nodes.bin", os.O_RDWR|os.O_CREATE, 0o644)
//	_ = f.Truncate(2 << 20)
//	m, err := mmap.MapFile(f, 1<<20, 1<<20) // second MiB of the file
//	if err != nil { ... }
//	defer m.Close()
//
//	buf := m.Bytes()
//	m.Advise(mmap.AccessRandom)
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with MAP_SHARED, madvise(2) for hints
//   - Windows: CreateFileMapping/MapViewOfFile (Advise is a no-op)
//
// File offsets need not be aligned. MapFile maps from the preceding multiple
// of the allocation granularity (the page size on Unix, 64 KiB on Windows) and
// returns the requested range.
//
// # Thread Safety
//
// Close is idempotent and protected by an atomic flag. Callers must ensure no
// goroutine touches Bytes() after Close returns.
package mmap
