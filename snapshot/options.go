package snapshot

import (
	"log/slog"
	"runtime"
)

type options struct {
	compression Compression
	concurrency int
	ioLimit     int64
	retries     int
	chunkSize   int
	logger      *slog.Logger
}

// Option configures Export and Import.
type Option func(*options)

// WithCompression sets the segment compression for Export. Import reads it
// from the manifest. Defaults to CompressionZstd.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithConcurrency sets how many segments are transferred at once.
// Defaults to GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithIOLimit caps the uncompressed throughput of all transfers together, in
// bytes per second. Zero means unlimited.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.ioLimit = bytesPerSec
	}
}

// WithRetries retries a failed segment transfer up to n times with
// exponential backoff. Missing blobs and cancellation are not retried.
func WithRetries(n int) Option {
	return func(o *options) {
		o.retries = n
	}
}

// WithLogger sets the logger. Segments are logged at debug level and the
// summary at info level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{
		compression: CompressionZstd,
		concurrency: runtime.GOMAXPROCS(0),
		chunkSize:   1 << 20,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
