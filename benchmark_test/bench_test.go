package benchmark_test

import (
	"context"
	"testing"

	"github.com/hupe1980/osmcache"
	"github.com/hupe1980/osmcache/blobstore"
	"github.com/hupe1980/osmcache/internal/testutil"
	"github.com/hupe1980/osmcache/snapshot"
)

const segmentSize = 1 << 20

var strategies = []osmcache.Strategy{
	osmcache.StrategyDense,
	osmcache.StrategySparse,
	osmcache.StrategySorted,
	osmcache.StrategyHash,
}

var backends = []osmcache.Backend{
	osmcache.BackendHeap,
	osmcache.BackendOffHeap,
	osmcache.BackendMappedFile,
	osmcache.BackendMappedDirectory,
}

func open(b *testing.B, opts ...osmcache.Option) *osmcache.Cache {
	b.Helper()
	opts = append([]osmcache.Option{
		osmcache.WithDir(b.TempDir()),
		osmcache.WithSegmentSize(segmentSize),
	}, opts...)

	c, err := osmcache.Open(opts...)
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = c.Clear() })
	return c
}

func BenchmarkPutCoordinate(b *testing.B) {
	for _, s := range strategies {
		b.Run(s.String(), func(b *testing.B) {
			b.ReportAllocs()
			c := open(b, osmcache.WithCoordinateStrategy(s))
			coord := osmcache.Coordinate{Lon: 8.54, Lat: 47.37}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				// Every other id, like a typical extract.
				if err := c.PutCoordinate(int64(i)*2, coord); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkPutCoordinate_Backend(b *testing.B) {
	for _, be := range backends {
		b.Run(be.String(), func(b *testing.B) {
			b.ReportAllocs()
			c := open(b, osmcache.WithBackend(be))
			coord := osmcache.Coordinate{Lon: 8.54, Lat: 47.37}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := c.PutCoordinate(int64(i), coord); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCoordinate_Parallel(b *testing.B) {
	const n = 1 << 16

	for _, s := range strategies {
		b.Run(s.String(), func(b *testing.B) {
			c := open(b, osmcache.WithCoordinateStrategy(s))
			rng := testutil.NewRNG(1)
			ids := rng.IncreasingKeys(n, 8)
			for _, id := range ids {
				if err := c.PutCoordinate(id, rng.Coordinate()); err != nil {
					b.Fatal(err)
				}
			}

			b.ReportAllocs()
			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				i := 0
				for pb.Next() {
					if _, _, err := c.Coordinate(ids[i%n]); err != nil {
						b.Error(err)
						return
					}
					i += 7
				}
			})
		})
	}
}

func BenchmarkPutReferences(b *testing.B) {
	refs := testutil.NewRNG(2).References(32, 1<<30)

	for _, s := range []osmcache.Strategy{osmcache.StrategyDense, osmcache.StrategySorted, osmcache.StrategyHash} {
		b.Run(s.String(), func(b *testing.B) {
			b.ReportAllocs()
			c := open(b, osmcache.WithReferenceStrategy(s))

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := c.PutReferences(int64(i), refs); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSnapshotExport(b *testing.B) {
	for _, comp := range []snapshot.Compression{snapshot.CompressionNone, snapshot.CompressionZstd, snapshot.CompressionLZ4} {
		b.Run(string(comp), func(b *testing.B) {
			c := open(b, osmcache.WithBackend(osmcache.BackendOffHeap))
			rng := testutil.NewRNG(3)
			for _, id := range rng.IncreasingKeys(1<<16, 4) {
				if err := c.PutCoordinate(id, rng.Coordinate()); err != nil {
					b.Fatal(err)
				}
			}
			mem := c.Memories()["nodes"]
			b.SetBytes(int64(mem.Allocated().GetCardinality()) * int64(mem.SegmentSize()))

			ctx := context.Background()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := snapshot.Export(ctx, mem, blobstore.NewMemoryStore(), "nodes", snapshot.WithCompression(comp)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
