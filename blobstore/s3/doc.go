// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("osm/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	manifest, err := snapshot.Export(ctx, mem, store, "planet/nodes")
//
// # Features
//
//   - Multipart uploads for large segments via the transfer manager
//   - CRC32-C checksums on upload
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
