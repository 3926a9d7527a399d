package memory

import (
	"errors"
	"log/slog"
	"math/bits"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/osmcache/internal/fs"
	"github.com/hupe1980/osmcache/internal/mmap"
	"github.com/hupe1980/osmcache/internal/resource"
)

// DefaultSegmentSize is the segment size used when none is configured (1 GiB).
const DefaultSegmentSize = 1 << 30

var (
	// ErrInvalidSegmentSize is returned when the segment size is not a positive power of two.
	ErrInvalidSegmentSize = errors.New("memory: segment size must be a positive power of two")
	// ErrInvalidSegment is returned for a negative segment index.
	ErrInvalidSegment = errors.New("memory: invalid segment index")
	// ErrClosed is returned when a segment is requested from a closed memory.
	ErrClosed = errors.New("memory: closed")
)

// Memory is a growable, ordered collection of fixed-size byte segments.
type Memory interface {
	// SegmentSize returns the size of every segment in bytes.
	SegmentSize() int
	// SegmentShift returns log2(SegmentSize()).
	SegmentShift() uint
	// SegmentMask returns SegmentSize()-1.
	SegmentMask() int64
	// Segment returns the segment at index, allocating it on first use.
	// The returned slice stays valid until Close.
	Segment(index int) ([]byte, error)
	// Allocated returns a snapshot of the indexes of all segments that exist,
	// including segments found on disk when a mapped memory was reopened.
	Allocated() *roaring.Bitmap
	// Close releases all segments.
	Close() error
	// Clear closes the memory and deletes its backing storage.
	Clear() error
}

// SegmentIndex returns the index of the segment holding position.
func SegmentIndex(position int64, shift uint) int {
	return int(position >> shift)
}

// SegmentOffset returns the offset of position inside its segment.
func SegmentOffset(position int64, mask int64) int {
	return int(position & mask)
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Log2 returns log2(n) for a power of two n.
func Log2(n int) uint {
	return uint(bits.TrailingZeros64(uint64(n)))
}

type options struct {
	segmentSize int
	logger      *slog.Logger
	controller  *resource.Controller
	fs          fs.FileSystem
	advice      mmap.AccessPattern
}

// Option configures a Memory.
type Option func(*options)

// WithSegmentSize sets the segment size in bytes. It must be a power of two.
func WithSegmentSize(size int) Option {
	return func(o *options) {
		o.segmentSize = size
	}
}

// WithLogger sets the logger used for allocation and lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithController charges every allocated segment against the controller's
// memory limit. Released segments are credited back on Close.
func WithController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

// WithFileSystem sets the file system used by the mapped backends.
func WithFileSystem(f fs.FileSystem) Option {
	return func(o *options) {
		if f != nil {
			o.fs = f
		}
	}
}

// WithAdvice sets the access-pattern hint applied to every mapped segment.
func WithAdvice(p mmap.AccessPattern) Option {
	return func(o *options) {
		o.advice = p
	}
}

func applyOptions(opts []Option) (options, error) {
	o := options{
		segmentSize: DefaultSegmentSize,
		logger:      slog.New(slog.DiscardHandler),
		fs:          fs.Default,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if !IsPowerOfTwo(o.segmentSize) {
		return o, ErrInvalidSegmentSize
	}
	return o, nil
}
