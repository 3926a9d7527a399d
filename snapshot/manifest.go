package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/hupe1980/osmcache/blobstore"
)

const (
	// ManifestName is the blob name of the manifest below the prefix.
	ManifestName = "manifest.json"
	// CurrentVersion is the manifest format version written by Export.
	CurrentVersion = 1
	// SegmentSuffix is the blob name suffix of exported segments.
	SegmentSuffix = ".seg"
)

// Manifest describes one exported memory.
type Manifest struct {
	Version     int            `json:"version"`
	SegmentSize int            `json:"segment_size"`
	Compression Compression    `json:"compression"`
	CreatedAt   time.Time      `json:"created_at"`
	Segments    []SegmentEntry `json:"segments"`
}

// SegmentEntry describes a single exported segment.
type SegmentEntry struct {
	Index      int    `json:"index"`
	StoredSize int64  `json:"stored_size"` // compressed bytes in the store
	CRC32C     uint32 `json:"crc32c"`      // of the uncompressed segment
}

// StoredBytes returns the total compressed size of all segments.
func (m *Manifest) StoredBytes() int64 {
	var n int64
	for _, s := range m.Segments {
		n += s.StoredSize
	}
	return n
}

func (m *Manifest) validate() error {
	if m.Version != CurrentVersion {
		return fmt.Errorf("%w: version %d", ErrInvalidManifest, m.Version)
	}
	if m.SegmentSize <= 0 || m.SegmentSize&(m.SegmentSize-1) != 0 {
		return fmt.Errorf("%w: segment size %d", ErrInvalidManifest, m.SegmentSize)
	}
	if _, err := m.Compression.check(); err != nil {
		return err
	}
	seen := make(map[int]struct{}, len(m.Segments))
	for _, s := range m.Segments {
		if s.Index < 0 {
			return fmt.Errorf("%w: segment index %d", ErrInvalidManifest, s.Index)
		}
		if _, dup := seen[s.Index]; dup {
			return fmt.Errorf("%w: duplicate segment %d", ErrInvalidManifest, s.Index)
		}
		seen[s.Index] = struct{}{}
	}
	return nil
}

func segmentName(prefix string, index int) string {
	return path.Join(prefix, strconv.Itoa(index)+SegmentSuffix)
}

func manifestName(prefix string) string {
	return path.Join(prefix, ManifestName)
}

// ReadManifest loads and validates the manifest of the snapshot at prefix.
func ReadManifest(ctx context.Context, store blobstore.Store, prefix string) (*Manifest, error) {
	data, err := blobstore.ReadAll(ctx, store, manifestName(prefix))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func writeManifest(ctx context.Context, store blobstore.Store, prefix string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return blobstore.PutBytes(ctx, store, manifestName(prefix), data)
}
