package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// ErrInvalidName is returned for an empty name or one that escapes the
// store root.
var ErrInvalidName = errors.New("blobstore: invalid blob name")

// Store holds named blobs.
type Store interface {
	// Put stores everything read from r under name, replacing an existing
	// blob. Readers never observe a partially written blob.
	Put(ctx context.Context, name string, r io.Reader) error
	// Get opens the blob for reading. The caller must close it.
	Get(ctx context.Context, name string) (io.ReadCloser, error)
	// Delete removes the blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the sorted names of all blobs starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// PutBytes stores data under name.
func PutBytes(ctx context.Context, s Store, name string, data []byte) error {
	return s.Put(ctx, name, bytes.NewReader(data))
}

// ReadAll returns the content of the blob.
func ReadAll(ctx context.Context, s Store, name string) ([]byte, error) {
	rc, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}
