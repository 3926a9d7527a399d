package collection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/osmcache/datatype"
	"github.com/hupe1980/osmcache/memory"
)

func TestAlignedDataList_AddGet(t *testing.T) {
	// 8 longs per segment.
	l := newList[int64](t, datatype.Long{}, 64)

	for i := int64(0); i < 100; i++ {
		idx, err := l.Add(i * 3)
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}
	assert.Equal(t, int64(100), l.Size())
	assert.Equal(t, 13, int(l.Memory().Allocated().GetCardinality()))

	for i := int64(0); i < 100; i++ {
		v, err := l.Get(i)
		require.NoError(t, err)
		assert.Equal(t, i*3, v)
	}
}

func TestAlignedDataList_Set(t *testing.T) {
	l := newList[datatype.Coordinate](t, datatype.CoordinateType{}, 64)

	_, err := l.Add(datatype.Coordinate{Lon: 1, Lat: 2})
	require.NoError(t, err)

	require.NoError(t, l.Set(0, datatype.Coordinate{Lon: 3, Lat: 4}))
	assert.Equal(t, int64(1), l.Size())

	require.NoError(t, l.Set(9, datatype.Coordinate{Lon: 5, Lat: 6}))
	assert.Equal(t, int64(10), l.Size())

	v, err := l.Get(0)
	require.NoError(t, err)
	assert.Equal(t, datatype.Coordinate{Lon: 3, Lat: 4}, v)

	v, err = l.Get(9)
	require.NoError(t, err)
	assert.Equal(t, datatype.Coordinate{Lon: 5, Lat: 6}, v)

	v, err = l.Get(5)
	require.NoError(t, err)
	assert.Equal(t, datatype.Coordinate{}, v)

	idx, err := l.Add(datatype.Coordinate{Lon: 7, Lat: 8})
	require.NoError(t, err)
	assert.Equal(t, int64(10), idx)
}

func TestAlignedDataList_NegativeIndex(t *testing.T) {
	l := newList[int64](t, datatype.Long{}, 64)

	_, err := l.Get(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.ErrorIs(t, l.Set(-1, 1), ErrIndexOutOfRange)
}

func TestAlignedDataList_AddressOverflow(t *testing.T) {
	l := newList[int64](t, datatype.Long{}, 64)
	require.NoError(t, l.Set(0, 7))

	for _, i := range []int64{1 << 60, 1 << 61} {
		_, err := l.Get(i)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", i)
		assert.ErrorIs(t, l.Set(i, 1), ErrIndexOutOfRange, "index %d", i)
	}

	v, err := l.Get(0)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)
	assert.Equal(t, int64(1), l.Size())
}

func TestAlignedDataList_InvalidValueSize(t *testing.T) {
	_, err := NewAlignedDataList[datatype.Coordinate](datatype.CoordinateType{}, newHeap(t, 8))
	assert.ErrorIs(t, err, ErrInvalidValueSize)

	pair := datatype.NewPairType[int64, int32](datatype.Long{}, datatype.Int{})
	_, err = NewAlignedDataList[datatype.Pair[int64, int32]](pair, newHeap(t, 64))
	assert.ErrorIs(t, err, ErrInvalidValueSize)
}

func TestAlignedDataList_MappedDirectoryLifecycle(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "longs")

	mem, err := memory.NewMappedDirectory(dir, memory.WithSegmentSize(32))
	require.NoError(t, err)
	l, err := NewAlignedDataList[int64](datatype.Long{}, mem)
	require.NoError(t, err)
	for i := int64(0); i < 10; i++ {
		_, err := l.Add(i * i)
		require.NoError(t, err)
	}
	require.NoError(t, l.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	mem, err = memory.NewMappedDirectory(dir, memory.WithSegmentSize(32))
	require.NoError(t, err)
	l, err = NewAlignedDataList[int64](datatype.Long{}, mem)
	require.NoError(t, err)
	for i := int64(0); i < 10; i++ {
		v, err := l.Get(i)
		require.NoError(t, err)
		assert.Equal(t, i*i, v)
	}

	require.NoError(t, mem.Clear())
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}
