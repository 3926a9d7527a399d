// Package fs provides filesystem abstractions for testability and fault injection.
//
// The package defines two key interfaces:
//
//   - [File]: an open file that can be written, truncated, synced and mapped
//   - [FileSystem]: filesystem operations (open, remove, rename, list, ...)
//
// # Implementations
//
//   - [LocalFS]: Production implementation using standard os package
//   - [FaultyFS]: Test utility for fault injection (simulate I/O errors)
//
// # Usage
//
// Production code should use fs.Default (which is [LocalFS]):
//
//	file, err := fs.Default.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
//
// Tests can inject [FaultyFS] to simulate failures:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".part", fs.Fault{FailOnTruncate: true})
//	mem, _ := memory.NewMappedDirectory(dir, memory.WithFileSystem(ffs))
//
// Filesystem operations carry no context.Context: local syscalls are not
// interruptible. Remote transfers go through package blobstore instead.
package fs
