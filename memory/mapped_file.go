package memory

import (
	"os"
	"path/filepath"

	"github.com/hupe1980/osmcache/internal/conv"
	"github.com/hupe1980/osmcache/internal/fs"
	"github.com/hupe1980/osmcache/internal/mmap"
)

// MappedFile is a Memory whose segments are views into one file. Segment i
// covers bytes [i*SegmentSize(), (i+1)*SegmentSize()). The file grows as
// segments are allocated.
type MappedFile struct {
	*segments
	path string
}

// NewMappedFile opens or creates the file at path. Whole segments already
// present in an existing file are reported by Allocated and read back on
// first access.
func NewMappedFile(path string, opts ...Option) (*MappedFile, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	if err := o.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &MemoryError{Op: "create", Path: path, Segment: -1, Err: err}
	}
	f, err := o.fs.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, &MemoryError{Op: "open", Path: path, Segment: -1, Err: err}
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, &MemoryError{Op: "stat", Path: path, Segment: -1, Err: err}
	}

	a := &fileAllocator{
		fs:     o.fs,
		file:   f,
		path:   path,
		size:   int64(o.segmentSize),
		length: info.Size(),
		advice: o.advice,
	}
	existing, err := conv.Int64ToInt(info.Size() / a.size)
	if err != nil {
		_ = f.Close()
		return nil, &MemoryError{Op: "open", Path: path, Segment: -1, Err: err}
	}

	m := &MappedFile{segments: newSegments(o, a), path: path}
	for i := range existing {
		m.markExisting(i)
	}
	return m, nil
}

// Path returns the backing file path.
func (m *MappedFile) Path() string {
	return m.path
}

type fileAllocator struct {
	fs     fs.FileSystem
	file   fs.File
	path   string
	size   int64
	length int64 // current file length, guarded by the segments mutex
	advice mmap.AccessPattern
}

func (*fileAllocator) name() string { return "mappedfile" }

func (a *fileAllocator) allocate(index int) (*segment, error) {
	offset := int64(index) * a.size
	if end := offset + a.size; end > a.length {
		if err := a.file.Truncate(end); err != nil {
			return nil, &MemoryError{Op: "grow", Path: a.path, Segment: index, Err: err}
		}
		a.length = end
	}

	m, err := mmap.MapFile(a.file, offset, int(a.size))
	if err != nil {
		return nil, &MemoryError{Op: "map", Path: a.path, Segment: index, Err: err}
	}
	if a.advice != mmap.AccessDefault {
		_ = m.Advise(a.advice)
	}
	return &segment{data: m.Bytes(), release: m.Close}, nil
}

func (a *fileAllocator) closeBackend() error {
	if a.file == nil {
		return nil
	}
	err := a.file.Close()
	a.file = nil
	if err != nil {
		return &MemoryError{Op: "close", Path: a.path, Segment: -1, Err: err}
	}
	return nil
}

func (a *fileAllocator) remove() error {
	if err := a.fs.Remove(a.path); err != nil && !os.IsNotExist(err) {
		return &MemoryError{Op: "remove", Path: a.path, Segment: -1, Err: err}
	}
	return nil
}
