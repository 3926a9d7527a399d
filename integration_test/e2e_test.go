package integration_test

import (
	"context"
	"path"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/osmcache"
	"github.com/hupe1980/osmcache/blobstore"
	"github.com/hupe1980/osmcache/internal/testutil"
	"github.com/hupe1980/osmcache/snapshot"
)

const segmentSize = 1 << 16

func TestE2E_ReopenMappedDirectory(t *testing.T) {
	dir := t.TempDir()
	opts := []osmcache.Option{
		osmcache.WithBackend(osmcache.BackendMappedDirectory),
		osmcache.WithDir(dir),
		osmcache.WithSegmentSize(segmentSize),
	}

	// 1. Ingest and close
	c, err := osmcache.Open(opts...)
	require.NoError(t, err)

	rng := testutil.NewRNG(1)
	ids := rng.IncreasingKeys(5000, 40)
	want := make(map[int64]osmcache.Coordinate, len(ids))
	for _, id := range ids {
		coord := rng.Coordinate()
		want[id] = coord
		require.NoError(t, c.PutCoordinate(id, coord))
	}
	require.NoError(t, c.Close())

	// 2. Reopen and verify
	c, err = osmcache.Open(opts...)
	require.NoError(t, err)
	defer func() { _ = c.Clear() }()

	for id, coord := range want {
		got, ok, err := c.Coordinate(id)
		require.NoError(t, err)
		require.True(t, ok, "node %d", id)
		assert.Equal(t, coord, got)
	}

	_, ok, err := c.Coordinate(ids[len(ids)-1] + 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestE2E_SnapshotRestore(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewLocalStore(filepath.Join(t.TempDir(), "snapshots"))
	opts := []osmcache.Option{
		osmcache.WithBackend(osmcache.BackendOffHeap),
		osmcache.WithSegmentSize(segmentSize),
		osmcache.WithCompactCoordinates(true),
	}

	// 1. Ingest and export every memory
	c, err := osmcache.Open(opts...)
	require.NoError(t, err)

	rng := testutil.NewRNG(2)
	ids := rng.IncreasingKeys(2000, 1000)
	for _, id := range ids {
		require.NoError(t, c.PutCoordinate(id, rng.Coordinate()))
	}
	want := make(map[int64]osmcache.Coordinate, len(ids))
	for _, id := range ids {
		coord, ok, err := c.Coordinate(id)
		require.NoError(t, err)
		require.True(t, ok)
		want[id] = coord
	}

	for name, mem := range c.Memories() {
		_, err := snapshot.Export(ctx, mem, store, path.Join("run-1", name), snapshot.WithConcurrency(4))
		require.NoError(t, err, name)
	}
	require.NoError(t, c.Clear())

	// 2. Restore into a fresh cache
	restored, err := osmcache.Open(opts...)
	require.NoError(t, err)
	defer func() { _ = restored.Clear() }()

	for name, mem := range restored.Memories() {
		_, err := snapshot.Import(ctx, store, path.Join("run-1", name), mem, snapshot.WithConcurrency(4))
		require.NoError(t, err, name)
	}

	for id, coord := range want {
		got, ok, err := restored.Coordinate(id)
		require.NoError(t, err)
		require.True(t, ok, "node %d", id)
		assert.Equal(t, coord, got)
	}
	assert.Positive(t, restored.AllocatedBytes())
}

func TestE2E_IngestWaysAgainstNodes(t *testing.T) {
	for _, strategy := range []osmcache.Strategy{osmcache.StrategyDense, osmcache.StrategySorted, osmcache.StrategyHash} {
		t.Run(strategy.String(), func(t *testing.T) {
			c, err := osmcache.Open(
				osmcache.WithBackend(osmcache.BackendMappedFile),
				osmcache.WithDir(t.TempDir()),
				osmcache.WithSegmentSize(segmentSize),
				osmcache.WithReferenceStrategy(strategy),
			)
			require.NoError(t, err)
			defer func() { _ = c.Clear() }()

			rng := testutil.NewRNG(3)
			nodes := rng.IncreasingKeys(3000, 5)
			for _, id := range nodes {
				require.NoError(t, c.PutCoordinate(id, rng.Coordinate()))
			}

			ways := rng.IncreasingKeys(300, 3)
			refs := make(map[int64][]int64, len(ways))
			for _, id := range ways {
				r := make([]int64, 2+rng.Intn(20))
				for i := range r {
					r[i] = nodes[rng.Intn(len(nodes))]
				}
				refs[id] = r
				require.NoError(t, c.PutReferences(id, r))
			}

			// Resolve every way to its geometry, as a renderer would.
			for _, id := range ways {
				got, ok, err := c.References(id)
				require.NoError(t, err)
				require.True(t, ok)
				require.Equal(t, refs[id], got)

				for _, n := range got {
					_, ok, err := c.Coordinate(n)
					require.NoError(t, err)
					assert.True(t, ok, "way %d node %d", id, n)
				}
			}
		})
	}
}
