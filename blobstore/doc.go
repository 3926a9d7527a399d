// Package blobstore provides named, immutable blobs for snapshots.
//
// Store is the interface every backend implements. Implementations must be
// safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local file system, atomic replace via rename
//   - MemoryStore: in-process map, for tests
//   - s3.Store: Amazon S3 with multipart uploads
//   - minio.Store: MinIO and other S3-compatible servers
//
// Blob names use forward slashes ("planet/nodes/0.seg") on every backend.
package blobstore
