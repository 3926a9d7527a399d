package collection

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/osmcache/datatype"
	"github.com/hupe1980/osmcache/memory"
)

func newHeap(t *testing.T, segmentSize int) memory.Memory {
	t.Helper()
	m, err := memory.NewHeap(memory.WithSegmentSize(segmentSize))
	require.NoError(t, err)
	return m
}

func newList[T any](t *testing.T, dt datatype.Fixed[T], segmentSize int) *AlignedDataList[T] {
	t.Helper()
	l, err := NewAlignedDataList(dt, newHeap(t, segmentSize))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func newBuffer[T any](t *testing.T, dt datatype.Variable[T], segmentSize int) *AppendOnlyBuffer[T] {
	t.Helper()
	b := NewAppendOnlyBuffer(dt, newHeap(t, segmentSize))
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func newSparse[T any](t *testing.T, dt datatype.Fixed[T]) *SparseDataMap[T] {
	t.Helper()
	return NewSparseDataMap(
		newList[int64](t, datatype.Long{}, 1<<10),
		newList[byte](t, datatype.Byte{}, 1<<10),
		newList[datatype.Optional[T]](t, datatype.NewNullable(dt), 1<<10),
	)
}

func newSorted[T any](t *testing.T, dt datatype.Variable[T]) *SortedDataMap[T] {
	t.Helper()
	return NewSortedDataMap(
		newList[int64](t, datatype.Long{}, 1<<10),
		newList[datatype.Pair[int64, int64]](t, datatype.NewPairType[int64, int64](datatype.Long{}, datatype.Long{}), 1<<10),
		newBuffer(t, dt, 1<<10),
	)
}
