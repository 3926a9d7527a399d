package osmcache

import (
	"context"
	"errors"
	"maps"
	"sync/atomic"
	"time"

	"github.com/hupe1980/osmcache/collection"
	"github.com/hupe1980/osmcache/datatype"
	"github.com/hupe1980/osmcache/memory"
)

// Coordinate is a node position in degrees.
type Coordinate = datatype.Coordinate

// Cache holds the node coordinate map and the way reference map of one
// ingestion run.
type Cache struct {
	coordinates collection.LongDataMap[Coordinate]
	references  collection.LongDataMap[[]int64]
	memories    map[string]memory.Memory

	logger  *Logger
	metrics MetricsCollector
	closed  atomic.Bool
	cleared atomic.Bool
}

// Open creates a cache. Without options it keeps dense maps on the Go heap.
func Open(optFns ...Option) (*Cache, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	c, err := open(&o)
	o.logger.logOpen(context.Background(), &o, err)
	return c, err
}

func open(o *options) (*Cache, error) {
	switch {
	case o.backend.mapped():
		if o.dir == "" {
			return nil, ErrDirRequired
		}
	case o.backend == BackendHeap, o.backend == BackendOffHeap:
	default:
		return nil, errors.New("osmcache: unknown backend " + o.backend.String())
	}
	if !memory.IsPowerOfTwo(o.segmentSize) {
		return nil, ErrInvalidSegmentSize
	}

	b := newBuilder(o)

	coordinates, err := b.coordinateMap()
	if err != nil {
		return nil, errors.Join(err, b.close())
	}
	references, err := b.referenceMap()
	if err != nil {
		return nil, errors.Join(err, b.close())
	}

	return &Cache{
		coordinates: coordinates,
		references:  references,
		memories:    b.memories,
		logger:      o.logger,
		metrics:     o.metricsCollector,
	}, nil
}

// PutCoordinate stores the coordinate of node id.
func (c *Cache) PutCoordinate(id int64, coord Coordinate) error {
	if c.closed.Load() {
		return ErrClosed
	}
	start := time.Now()
	err := c.coordinates.Put(id, coord)
	c.metrics.RecordPutCoordinate(time.Since(start), err)
	return err
}

// Coordinate returns the coordinate of node id. ok is false if the node was
// never put.
func (c *Cache) Coordinate(id int64) (coord Coordinate, ok bool, err error) {
	if c.closed.Load() {
		return Coordinate{}, false, ErrClosed
	}
	start := time.Now()
	coord, ok, err = c.coordinates.Get(id)
	c.metrics.RecordCoordinateLookup(ok, time.Since(start), err)
	return coord, ok, err
}

// PutReferences stores the node ids of way id.
func (c *Cache) PutReferences(id int64, refs []int64) error {
	if c.closed.Load() {
		return ErrClosed
	}
	start := time.Now()
	err := c.references.Put(id, refs)
	c.metrics.RecordPutReferences(len(refs), time.Since(start), err)
	return err
}

// References returns the node ids of way id. ok is false if the way was
// never put. The returned slice is owned by the caller.
func (c *Cache) References(id int64) (refs []int64, ok bool, err error) {
	if c.closed.Load() {
		return nil, false, ErrClosed
	}
	start := time.Now()
	refs, ok, err = c.references.Get(id)
	c.metrics.RecordReferencesLookup(ok, time.Since(start), err)
	return refs, ok, err
}

// Memories returns the memories backing the cache by name, for example to
// export them with package snapshot.
func (c *Cache) Memories() map[string]memory.Memory {
	return maps.Clone(c.memories)
}

// AllocatedBytes returns the bytes of all segments allocated so far.
func (c *Cache) AllocatedBytes() int64 {
	var total int64
	for _, m := range c.memories {
		total += int64(m.Allocated().GetCardinality()) * int64(m.SegmentSize())
	}
	return total
}

// Close releases every memory. Mapped files stay on disk.
func (c *Cache) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := errors.Join(c.coordinates.Close(), c.references.Close())
	c.logger.LogClose(context.Background(), false, err)
	return err
}

// Clear closes the cache and deletes the files of mapped backends.
func (c *Cache) Clear() error {
	err := c.Close()
	if !c.cleared.CompareAndSwap(false, true) {
		return err
	}
	for _, m := range c.memories {
		err = errors.Join(err, m.Clear())
	}
	c.logger.LogClose(context.Background(), true, err)
	return err
}
