// Package resource implements a Controller for process-wide limits.
//
// The Controller governs three resource types:
//
//   - Memory: bytes of segment memory handed out by memory backends (fail-fast)
//   - Workers: concurrent segment transfers during snapshot export/import
//   - IO: token-bucket throughput limit for snapshot transfers
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for the hard limit and an atomic
// counter for usage. AcquireMemory never blocks: a segment allocation that
// would exceed the limit fails immediately with ErrMemoryLimitExceeded.
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 8 << 30,
//	})
//	mem, _ := memory.NewOffHeap(memory.WithController(rc))
//
// # IO Rate Limiting
//
//	rc := resource.NewController(resource.Config{
//	    IOLimitBytesPerSec: 100 << 20, // 100MB/s
//	})
//	if err := rc.AcquireIO(ctx, len(segment)); err != nil {
//	    return err
//	}
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
