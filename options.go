package osmcache

import (
	"fmt"

	"github.com/hupe1980/osmcache/memory"
)

// Backend selects where map memory lives.
type Backend int

const (
	// BackendHeap allocates segments on the Go heap.
	BackendHeap Backend = iota
	// BackendOffHeap allocates segments as anonymous mappings.
	BackendOffHeap
	// BackendMappedFile maps one file per memory.
	BackendMappedFile
	// BackendMappedDirectory maps one directory of segment files per memory.
	BackendMappedDirectory
)

func (b Backend) String() string {
	switch b {
	case BackendHeap:
		return "heap"
	case BackendOffHeap:
		return "offheap"
	case BackendMappedFile:
		return "mappedfile"
	case BackendMappedDirectory:
		return "mappeddirectory"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

func (b Backend) mapped() bool {
	return b == BackendMappedFile || b == BackendMappedDirectory
}

// Strategy selects the LongDataMap implementation.
type Strategy int

const (
	// StrategyDense addresses values by id.
	StrategyDense Strategy = iota
	// StrategySparse stores non-decreasing ids chunk by chunk.
	StrategySparse
	// StrategySorted binary-searches non-decreasing ids.
	StrategySorted
	// StrategyHash keeps a Go map from id to value position.
	StrategyHash
)

func (s Strategy) String() string {
	switch s {
	case StrategyDense:
		return "dense"
	case StrategySparse:
		return "sparse"
	case StrategySorted:
		return "sorted"
	case StrategyHash:
		return "hash"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

type options struct {
	backend            Backend
	dir                string
	segmentSize        int
	coordinateStrategy Strategy
	referenceStrategy  Strategy
	compactCoordinates bool
	logger             *Logger
	metricsCollector   MetricsCollector
	memoryLimit        int64
}

func defaultOptions() options {
	return options{
		backend:            BackendHeap,
		segmentSize:        memory.DefaultSegmentSize,
		coordinateStrategy: StrategyDense,
		referenceStrategy:  StrategyDense,
		logger:             NoopLogger(),
		metricsCollector:   NoopMetricsCollector{},
	}
}

// Option configures Open.
type Option func(*options)

// WithBackend selects the memory backend. Defaults to BackendHeap.
func WithBackend(b Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithDir sets the directory the mapped backends create their files in.
// Each map memory gets its own file or subdirectory.
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// WithSegmentSize sets the segment size of every memory. It must be a power
// of two. Defaults to memory.DefaultSegmentSize.
func WithSegmentSize(size int) Option {
	return func(o *options) {
		o.segmentSize = size
	}
}

// WithCoordinateStrategy selects the node coordinate map.
func WithCoordinateStrategy(s Strategy) Option {
	return func(o *options) {
		o.coordinateStrategy = s
	}
}

// WithReferenceStrategy selects the way reference map. StrategySparse needs
// fixed-size values and is rejected here.
func WithReferenceStrategy(s Strategy) Option {
	return func(o *options) {
		o.referenceStrategy = s
	}
}

// WithCompactCoordinates stores coordinates as two float32 (8 bytes) instead
// of two float64 (16 bytes). Precision drops to roughly a metre.
func WithCompactCoordinates(compact bool) Option {
	return func(o *options) {
		o.compactCoordinates = compact
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector. If nil is passed, metrics
// are discarded.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithMemoryLimit caps the bytes of segments all maps may allocate together.
// Zero means unlimited.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}
