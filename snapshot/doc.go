// Package snapshot copies the allocated segments of a memory.Memory to a
// blobstore.Store and back.
//
// A snapshot under prefix p consists of one blob per allocated segment,
// p/<index>.seg, compressed as a stream, plus p/manifest.json which lists
// every segment with its CRC32-C. The manifest is written last, so a
// snapshot without a manifest is incomplete and Import refuses it.
//
//	mem, _ := memory.NewMappedDirectory("./nodes")
//	...
//	m, err := snapshot.Export(ctx, mem, store, "planet/nodes",
//	    snapshot.WithCompression(snapshot.CompressionZstd),
//	    snapshot.WithConcurrency(8),
//	    snapshot.WithIOLimit(200<<20),
//	)
//
//	restored, _ := memory.NewOffHeap(memory.WithSegmentSize(m.SegmentSize))
//	_, err = snapshot.Import(ctx, store, "planet/nodes", restored)
//
// Export reads segments while they are copied, so the memory must not be
// written concurrently.
package snapshot
