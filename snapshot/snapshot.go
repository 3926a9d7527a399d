package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/osmcache/blobstore"
	"github.com/hupe1980/osmcache/internal/hash"
	"github.com/hupe1980/osmcache/internal/resource"
	"github.com/hupe1980/osmcache/memory"
)

// Export writes every allocated segment of mem below prefix and then the
// manifest. An existing snapshot at prefix is overwritten segment by segment;
// call Delete first to drop segments the new snapshot does not contain.
func Export(ctx context.Context, mem memory.Memory, store blobstore.Store, prefix string, opts ...Option) (*Manifest, error) {
	o := applyOptions(opts)
	if _, err := o.compression.check(); err != nil {
		return nil, err
	}

	start := time.Now()
	ctrl := o.controller()
	indexes := mem.Allocated().ToArray()
	entries := make([]SegmentEntry, len(indexes))

	g, gctx := errgroup.WithContext(ctx)
	for i, idx := range indexes {
		g.Go(func() error {
			if err := ctrl.AcquireWorker(gctx); err != nil {
				return err
			}
			defer ctrl.ReleaseWorker()

			var entry SegmentEntry
			err := o.retry(gctx, int(idx), func() (err error) {
				entry, err = exportSegment(gctx, mem, store, prefix, int(idx), o, ctrl)
				return err
			})
			if err != nil {
				return fmt.Errorf("snapshot: export segment %d: %w", idx, err)
			}
			entries[i] = entry

			o.logger.DebugContext(gctx, "exported segment",
				"prefix", prefix,
				"segment", entry.Index,
				"stored_bytes", entry.StoredSize,
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m := &Manifest{
		Version:     CurrentVersion,
		SegmentSize: mem.SegmentSize(),
		Compression: o.compression,
		CreatedAt:   time.Now().UTC(),
		Segments:    entries,
	}
	if err := writeManifest(ctx, store, prefix, m); err != nil {
		return nil, fmt.Errorf("snapshot: write manifest: %w", err)
	}

	o.logger.InfoContext(ctx, "snapshot exported",
		"prefix", prefix,
		"segments", len(entries),
		"bytes", int64(len(entries))*int64(m.SegmentSize),
		"stored_bytes", m.StoredBytes(),
		"compression", string(m.Compression),
		"duration", time.Since(start),
	)
	return m, nil
}

func exportSegment(ctx context.Context, mem memory.Memory, store blobstore.Store, prefix string, index int, o options, ctrl *resource.Controller) (SegmentEntry, error) {
	seg, err := mem.Segment(index)
	if err != nil {
		return SegmentEntry{}, err
	}

	pr, pw := io.Pipe()
	done := make(chan error, 1)
	go func() {
		err := compressTo(ctx, pw, seg, o, ctrl)
		_ = pw.CloseWithError(err)
		done <- err
	}()

	cr := &countingReader{r: pr}
	putErr := store.Put(ctx, segmentName(prefix, index), cr)
	// Unblocks the writer if Put stopped reading early.
	_ = pr.CloseWithError(io.ErrClosedPipe)
	writeErr := <-done

	if putErr != nil {
		return SegmentEntry{}, putErr
	}
	if writeErr != nil {
		return SegmentEntry{}, writeErr
	}

	return SegmentEntry{
		Index:      index,
		StoredSize: cr.n,
		CRC32C:     hash.CRC32C(seg),
	}, nil
}

func compressTo(ctx context.Context, w io.Writer, seg []byte, o options, ctrl *resource.Controller) error {
	cw, err := o.compression.compressor(w)
	if err != nil {
		return err
	}
	for off := 0; off < len(seg); off += o.chunkSize {
		end := min(off+o.chunkSize, len(seg))
		if err := ctrl.AcquireIO(ctx, end-off); err != nil {
			_ = cw.Close()
			return err
		}
		if _, err := cw.Write(seg[off:end]); err != nil {
			_ = cw.Close()
			return err
		}
	}
	return cw.Close()
}

// Import reads the snapshot at prefix into mem, allocating its segments as
// needed. The segment size of mem must match the snapshot's. Every segment is
// verified against its checksum; a mismatch is reported as a *ChecksumError.
// Segments of mem that the snapshot does not contain are left untouched.
func Import(ctx context.Context, store blobstore.Store, prefix string, mem memory.Memory, opts ...Option) (*Manifest, error) {
	o := applyOptions(opts)

	m, err := ReadManifest(ctx, store, prefix)
	if err != nil {
		return nil, err
	}
	if m.SegmentSize != mem.SegmentSize() {
		return nil, fmt.Errorf("%w: snapshot %d, memory %d", ErrSegmentSizeMismatch, m.SegmentSize, mem.SegmentSize())
	}

	start := time.Now()
	ctrl := o.controller()

	g, gctx := errgroup.WithContext(ctx)
	for _, entry := range m.Segments {
		g.Go(func() error {
			if err := ctrl.AcquireWorker(gctx); err != nil {
				return err
			}
			defer ctrl.ReleaseWorker()

			err := o.retry(gctx, entry.Index, func() error {
				return importSegment(gctx, store, prefix, mem, m.Compression, entry, o, ctrl)
			})
			if err != nil {
				return fmt.Errorf("snapshot: import segment %d: %w", entry.Index, err)
			}

			o.logger.DebugContext(gctx, "imported segment",
				"prefix", prefix,
				"segment", entry.Index,
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	o.logger.InfoContext(ctx, "snapshot imported",
		"prefix", prefix,
		"segments", len(m.Segments),
		"bytes", int64(len(m.Segments))*int64(m.SegmentSize),
		"duration", time.Since(start),
	)
	return m, nil
}

func importSegment(ctx context.Context, store blobstore.Store, prefix string, mem memory.Memory, c Compression, entry SegmentEntry, o options, ctrl *resource.Controller) error {
	rc, err := store.Get(ctx, segmentName(prefix, entry.Index))
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	dr, err := c.decompressor(rc)
	if err != nil {
		return err
	}
	defer func() { _ = dr.Close() }()

	seg, err := mem.Segment(entry.Index)
	if err != nil {
		return err
	}

	h := hash.NewCRC32C()
	for off := 0; off < len(seg); off += o.chunkSize {
		end := min(off+o.chunkSize, len(seg))
		if err := ctrl.AcquireIO(ctx, end-off); err != nil {
			return err
		}
		if _, err := io.ReadFull(dr, seg[off:end]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return fmt.Errorf("%w: short by %d bytes", ErrCorruptSegment, len(seg)-off)
			}
			return err
		}
		_, _ = h.Write(seg[off:end])
	}

	var extra [1]byte
	switch _, err := io.ReadFull(dr, extra[:]); {
	case err == nil:
		return fmt.Errorf("%w: trailing data", ErrCorruptSegment)
	case !errors.Is(err, io.EOF):
		return err
	}

	if got := h.Sum32(); got != entry.CRC32C {
		return &ChecksumError{Segment: entry.Index, Want: entry.CRC32C, Got: got}
	}
	return nil
}

// Delete removes the snapshot at prefix. The manifest goes first so that an
// interrupted Delete leaves a snapshot that Import rejects.
func Delete(ctx context.Context, store blobstore.Store, prefix string) error {
	if err := store.Delete(ctx, manifestName(prefix)); err != nil {
		return err
	}

	dir := listPrefix(prefix)
	names, err := store.List(ctx, dir)
	if err != nil {
		return err
	}
	for _, name := range names {
		rest := strings.TrimPrefix(name, dir)
		if strings.Contains(rest, "/") || !strings.HasSuffix(rest, SegmentSuffix) {
			continue
		}
		if err := store.Delete(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func listPrefix(prefix string) string {
	if prefix == "" || strings.HasSuffix(prefix, "/") {
		return prefix
	}
	return prefix + "/"
}

func (o options) controller() *resource.Controller {
	return resource.NewController(resource.Config{
		MaxWorkers:         int64(o.concurrency),
		IOLimitBytesPerSec: o.ioLimit,
	})
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
