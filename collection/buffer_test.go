package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/osmcache/datatype"
	"github.com/hupe1980/osmcache/internal/testutil"
)

func TestAppendOnlyBuffer_Straddling(t *testing.T) {
	// 32-byte segments force most lists across one or more boundaries.
	b := newBuffer[[]int64](t, datatype.LongList{}, 32)
	rng := testutil.NewRNG(4711)

	var (
		values    [][]int64
		positions []Position
		offset    int64
	)
	for range 200 {
		v := rng.References(12, 1<<40)
		p, err := b.Add(v)
		require.NoError(t, err)
		assert.Equal(t, Position(offset), p)
		offset += int64(datatype.LongList{}.Size(v))

		values = append(values, v)
		positions = append(positions, p)
	}
	assert.Equal(t, int64(200), b.Size())
	assert.Equal(t, offset, b.Offset())

	for i, p := range positions {
		v, err := b.Get(p)
		require.NoError(t, err)
		assert.Equal(t, values[i], v, "position %d", p)
	}
}

func TestAppendOnlyBuffer_ValueLargerThanSegment(t *testing.T) {
	b := newBuffer[string](t, datatype.String{}, 16)

	long := "a value that spans several sixteen byte segments"
	p1, err := b.Add("x")
	require.NoError(t, err)
	p2, err := b.Add(long)
	require.NoError(t, err)
	p3, err := b.Add("")
	require.NoError(t, err)

	v, err := b.Get(p1)
	require.NoError(t, err)
	assert.Equal(t, "x", v)

	v, err = b.Get(p2)
	require.NoError(t, err)
	assert.Equal(t, long, v)

	v, err = b.Get(p3)
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestAppendOnlyBuffer_InvalidPosition(t *testing.T) {
	b := newBuffer[string](t, datatype.String{}, 64)

	_, err := b.Get(0)
	assert.ErrorIs(t, err, ErrInvalidPosition)

	_, err = b.Add("osm")
	require.NoError(t, err)

	_, err = b.Get(-1)
	assert.ErrorIs(t, err, ErrInvalidPosition)

	_, err = b.Get(Position(b.Offset()))
	assert.ErrorIs(t, err, ErrInvalidPosition)
}

func TestAppendOnlyBuffer_Iterator(t *testing.T) {
	b := newBuffer[datatype.Coordinate](t, datatype.AsVariable[datatype.Coordinate](datatype.CoordinateType{}), 64)
	rng := testutil.NewRNG(7)

	var want []datatype.Coordinate
	for range 50 {
		c := rng.Coordinate()
		_, err := b.Add(c)
		require.NoError(t, err)
		want = append(want, c)
	}

	var (
		got  []datatype.Coordinate
		last = Position(-1)
	)
	it := b.Iterator()
	for it.Next() {
		assert.Greater(t, it.Position(), last)
		last = it.Position()
		got = append(got, it.Value())
	}
	require.NoError(t, it.Err())
	assert.Equal(t, want, got)
}

func TestAppendOnlyBuffer_EmptyIterator(t *testing.T) {
	b := newBuffer[[]int64](t, datatype.LongList{}, 64)

	it := b.Iterator()
	assert.False(t, it.Next())
	assert.NoError(t, it.Err())
}
