package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hupe1980/osmcache/internal/fs"
	"github.com/hupe1980/osmcache/internal/mmap"
)

// SegmentFileSuffix is the file name suffix of mapped-directory segments.
const SegmentFileSuffix = ".part"

// MappedDirectory is a Memory whose segments are individual files named
// "<index>.part" inside one directory, each exactly SegmentSize() bytes.
type MappedDirectory struct {
	*segments
	dir string
}

// NewMappedDirectory opens or creates dir. Segment files already present are
// reported by Allocated and read back on first access.
func NewMappedDirectory(dir string, opts ...Option) (*MappedDirectory, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	if err := o.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, &MemoryError{Op: "create", Path: dir, Segment: -1, Err: err}
	}
	entries, err := o.fs.ReadDir(dir)
	if err != nil {
		return nil, &MemoryError{Op: "list", Path: dir, Segment: -1, Err: err}
	}

	a := &directoryAllocator{fs: o.fs, dir: dir, size: o.segmentSize, advice: o.advice}
	m := &MappedDirectory{segments: newSegments(o, a), dir: dir}
	for _, e := range entries {
		if index, ok := ParseSegmentFileName(e.Name()); ok && !e.IsDir() {
			m.markExisting(index)
		}
	}
	return m, nil
}

// Dir returns the backing directory.
func (m *MappedDirectory) Dir() string {
	return m.dir
}

// SegmentFileName returns the file name of segment index.
func SegmentFileName(index int) string {
	return strconv.Itoa(index) + SegmentFileSuffix
}

// ParseSegmentFileName extracts the segment index from a file name such as "12.part".
func ParseSegmentFileName(name string) (int, bool) {
	base, ok := strings.CutSuffix(name, SegmentFileSuffix)
	if !ok {
		return 0, false
	}
	index, err := strconv.Atoi(base)
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}

type directoryAllocator struct {
	fs     fs.FileSystem
	dir    string
	size   int
	advice mmap.AccessPattern
}

func (*directoryAllocator) name() string { return "mappeddirectory" }

func (a *directoryAllocator) allocate(index int) (*segment, error) {
	path := filepath.Join(a.dir, SegmentFileName(index))

	f, err := a.fs.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, &MemoryError{Op: "open", Path: path, Segment: index, Err: err}
	}
	// The mapping outlives the descriptor.
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &MemoryError{Op: "stat", Path: path, Segment: index, Err: err}
	}
	if info.Size() != int64(a.size) {
		if info.Size() > int64(a.size) {
			return nil, &MemoryError{Op: "open", Path: path, Segment: index,
				Err: fmt.Errorf("segment file is %d bytes, expected %d", info.Size(), a.size)}
		}
		if err := f.Truncate(int64(a.size)); err != nil {
			return nil, &MemoryError{Op: "grow", Path: path, Segment: index, Err: err}
		}
	}

	m, err := mmap.MapFile(f, 0, a.size)
	if err != nil {
		return nil, &MemoryError{Op: "map", Path: path, Segment: index, Err: err}
	}
	if a.advice != mmap.AccessDefault {
		_ = m.Advise(a.advice)
	}
	return &segment{data: m.Bytes(), release: m.Close}, nil
}

func (*directoryAllocator) closeBackend() error { return nil }

func (a *directoryAllocator) remove() error {
	if err := a.fs.RemoveAll(a.dir); err != nil {
		return &MemoryError{Op: "remove", Path: a.dir, Segment: -1, Err: err}
	}
	return nil
}
