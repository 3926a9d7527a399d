package collection

// LongDataMap maps int64 keys to values of type T.
//
// Get reports ok == false for keys that were never put. A non-nil error means
// the backing memory could not be accessed.
type LongDataMap[T any] interface {
	Put(key int64, v T) error
	Get(key int64) (T, bool, error)
	Close() error
}

// Sparse and sorted maps group keys into chunks of 256 consecutive keys.
const (
	chunkShift = 8
	chunkMask  = 1<<chunkShift - 1
)

func chunkOf(key int64) (chunk int64, offset int64) {
	return key >> chunkShift, key & chunkMask
}

var (
	_ LongDataMap[int64]   = (*DenseDataMap[int64])(nil)
	_ LongDataMap[int64]   = (*SparseDataMap[int64])(nil)
	_ LongDataMap[[]int64] = (*SortedDataMap[[]int64])(nil)
	_ LongDataMap[[]int64] = (*HashDataMap[[]int64])(nil)
	_ LongDataMap[[]int64] = (*IndexedDataStore[[]int64])(nil)
)
