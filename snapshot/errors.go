package snapshot

import (
	"errors"
	"fmt"
)

var (
	// ErrChecksumMismatch is wrapped by ChecksumError.
	ErrChecksumMismatch = errors.New("snapshot: checksum mismatch")
	// ErrSegmentSizeMismatch is returned when the target memory's segment
	// size differs from the snapshot's.
	ErrSegmentSizeMismatch = errors.New("snapshot: segment size mismatch")
	// ErrUnknownCompression is returned for an unsupported compression.
	ErrUnknownCompression = errors.New("snapshot: unknown compression")
	// ErrInvalidManifest is returned for a manifest that cannot be used.
	ErrInvalidManifest = errors.New("snapshot: invalid manifest")
	// ErrCorruptSegment is returned when a segment blob does not decode to
	// exactly one segment.
	ErrCorruptSegment = errors.New("snapshot: corrupt segment")
)

// ChecksumError reports a segment whose restored bytes do not match the
// checksum recorded at export.
type ChecksumError struct {
	Segment int
	Want    uint32
	Got     uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("snapshot: segment %d: checksum %08x, want %08x", e.Segment, e.Got, e.Want)
}

func (e *ChecksumError) Unwrap() error { return ErrChecksumMismatch }
