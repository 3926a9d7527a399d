package osmcache_test

import (
	"fmt"
	"log"

	"github.com/hupe1980/osmcache"
)

// Example resolves the geometry of a way from its node references.
func Example() {
	cache, err := osmcache.Open(
		osmcache.WithSegmentSize(1<<16),
		osmcache.WithCoordinateStrategy(osmcache.StrategySparse),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer cache.Close()

	// Nodes arrive before ways, sorted by id.
	_ = cache.PutCoordinate(1, osmcache.Coordinate{Lon: 8.5417, Lat: 47.3769})
	_ = cache.PutCoordinate(2, osmcache.Coordinate{Lon: 8.5423, Lat: 47.3775})
	_ = cache.PutCoordinate(100, osmcache.Coordinate{Lon: 8.5431, Lat: 47.3781})
	_ = cache.PutReferences(7, []int64{1, 2, 100, 356})

	refs, _, _ := cache.References(7)
	for _, id := range refs {
		c, ok, _ := cache.Coordinate(id)
		if !ok {
			fmt.Printf("node %d missing\n", id)
			continue
		}
		fmt.Printf("node %d: %.4f %.4f\n", id, c.Lon, c.Lat)
	}
	// Output:
	// node 1: 8.5417 47.3769
	// node 2: 8.5423 47.3775
	// node 100: 8.5431 47.3781
	// node 356 missing
}
