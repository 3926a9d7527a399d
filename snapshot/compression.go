package snapshot

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects how segment blobs are encoded.
type Compression string

const (
	// CompressionNone stores raw segment bytes.
	CompressionNone Compression = "none"
	// CompressionZstd uses zstd streams (better ratio, the default).
	CompressionZstd Compression = "zstd"
	// CompressionLZ4 uses lz4 frames (faster, good for hot data).
	CompressionLZ4 Compression = "lz4"
)

func (c Compression) check() (Compression, error) {
	switch c {
	case CompressionNone, CompressionZstd, CompressionLZ4:
		return c, nil
	default:
		return c, fmt.Errorf("%w: %q", ErrUnknownCompression, string(c))
	}
}

// compressor wraps w. Closing the result flushes the stream but does not
// close w.
func (c Compression) compressor(w io.Writer) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionZstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		_, err := c.check()
		return nil, err
	}
}

// decompressor wraps r. Closing the result releases decoder resources but
// does not close r.
func (c Compression) decompressor(r io.Reader) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionZstd:
		dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		_, err := c.check()
		return nil, err
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
