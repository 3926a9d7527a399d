// Package osmcache resolves OpenStreetMap node ids to coordinates and way ids
// to node-id lists during a single streaming pass over a large dataset,
// without holding the dataset in process memory.
//
// # Quick Start
//
//	cache, err := osmcache.Open(
//	    osmcache.WithBackend(osmcache.BackendMappedDirectory),
//	    osmcache.WithDir("./cache"),
//	)
//	if err != nil { ... }
//	defer cache.Clear()
//
//	// Producer: nodes first, then ways.
//	_ = cache.PutCoordinate(node.ID, osmcache.Coordinate{Lon: node.Lon, Lat: node.Lat})
//	_ = cache.PutReferences(way.ID, way.NodeIDs)
//
//	// Consumer.
//	refs, ok, err := cache.References(wayID)
//	for _, id := range refs {
//	    c, ok, err := cache.Coordinate(id)
//	    ...
//	}
//
// # Backends
//
// Every map is built from one or more memory.Memory instances:
//
//	BackendHeap             Go heap; transient
//	BackendOffHeap          anonymous mappings outside the Go heap; transient
//	BackendMappedFile       one file per memory under WithDir
//	BackendMappedDirectory  one directory of <n>.part files per memory under WithDir
//
// # Strategies
//
// The coordinate and reference maps are chosen independently:
//
//	StrategyDense   O(1), memory grows with the largest id (default)
//	StrategySparse  O(1), ids must be put in non-decreasing order (coordinates only)
//	StrategySorted  binary search, ids must be put in non-decreasing order
//	StrategyHash    any order, index on the Go heap
//
// Sorted PBF extracts deliver ids in ascending order per entity type, which
// is what the sparse and sorted strategies rely on.
//
// # Concurrency
//
// A Cache has one writer. Once all puts have returned, lookups may run from
// any number of goroutines.
//
// # Packages
//
//   - memory: segmented byte storage and its four backends
//   - datatype: fixed and variable size codecs
//   - collection: lists, append-only buffer and the LongDataMap family
//   - snapshot: export and import of memories to a blob store
//   - blobstore: local, in-memory, S3 and MinIO blob stores
package osmcache
