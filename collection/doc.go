// Package collection implements lists, stores and long-keyed maps on top of
// package memory.
//
// # Primitives
//
//   - AlignedDataList: fixed-size elements, element i at byte i<<shift.
//   - AppendOnlyBuffer: variable-size values; Add returns the Position (byte
//     offset) at which the value was written and Get decodes in place.
//
// # Maps
//
// All four LongDataMap implementations map an int64 key to a value and differ
// in what they assume about key distribution:
//
//	DenseDataMap   key<<shift addressing; O(1); memory ~ max(key); any order
//	SparseDataMap  256-key chunks + gap placeholders; O(1); keys non-decreasing
//	SortedDataMap  256-key chunks + binary search over (key, position) pairs
//	HashDataMap    Go map to buffer positions; any order; upserts
//
// Sparse and sorted maps derive their layout from call order, so keys must be
// put in non-decreasing order. A smaller key than the previous one is
// rejected with ErrOutOfOrder.
//
// # Concurrency
//
// One writer during the put phase. Once all puts have returned, any number of
// goroutines may call Get concurrently.
package collection
