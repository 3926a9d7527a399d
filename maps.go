package osmcache

import (
	"errors"
	"path/filepath"

	"github.com/hupe1980/osmcache/collection"
	"github.com/hupe1980/osmcache/datatype"
	"github.com/hupe1980/osmcache/internal/mmap"
	"github.com/hupe1980/osmcache/internal/resource"
	"github.com/hupe1980/osmcache/memory"
)

// builder creates the memories of one cache and remembers them for cleanup.
type builder struct {
	opts       *options
	controller *resource.Controller
	logger     *Logger
	memories   map[string]memory.Memory
}

func newBuilder(o *options) *builder {
	b := &builder{
		opts:     o,
		logger:   o.logger.WithBackend(o.backend),
		memories: make(map[string]memory.Memory),
	}
	if o.memoryLimit > 0 {
		b.controller = resource.NewController(resource.Config{MemoryLimitBytes: o.memoryLimit})
	}
	return b
}

func (b *builder) memory(name string, advice mmap.AccessPattern) (memory.Memory, error) {
	opts := []memory.Option{
		memory.WithSegmentSize(b.opts.segmentSize),
		memory.WithLogger(b.logger.WithMemory(name).Logger),
		memory.WithController(b.controller),
		memory.WithAdvice(advice),
	}

	var (
		m   memory.Memory
		err error
	)
	switch b.opts.backend {
	case BackendOffHeap:
		m, err = memory.NewOffHeap(opts...)
	case BackendMappedFile:
		m, err = memory.NewMappedFile(filepath.Join(b.opts.dir, name+".bin"), opts...)
	case BackendMappedDirectory:
		m, err = memory.NewMappedDirectory(filepath.Join(b.opts.dir, name), opts...)
	default:
		m, err = memory.NewHeap(opts...)
	}
	if err != nil {
		return nil, err
	}
	b.memories[name] = m
	return m, nil
}

func (b *builder) close() error {
	var err error
	for _, m := range b.memories {
		err = errors.Join(err, m.Close())
	}
	return err
}

func list[T any](b *builder, name string, dt datatype.Fixed[T], advice mmap.AccessPattern) (*collection.AlignedDataList[T], error) {
	m, err := b.memory(name, advice)
	if err != nil {
		return nil, err
	}
	return collection.NewAlignedDataList(dt, m)
}

func buffer[T any](b *builder, name string, dt datatype.Variable[T], advice mmap.AccessPattern) (*collection.AppendOnlyBuffer[T], error) {
	m, err := b.memory(name, advice)
	if err != nil {
		return nil, err
	}
	return collection.NewAppendOnlyBuffer(dt, m), nil
}

func (b *builder) coordinateMap() (collection.LongDataMap[Coordinate], error) {
	b.logger = b.opts.logger.WithBackend(b.opts.backend).WithMap("coordinates")
	var dt datatype.Fixed[Coordinate] = datatype.CoordinateType{}
	if b.opts.compactCoordinates {
		dt = datatype.CompactCoordinateType{}
	}

	switch s := b.opts.coordinateStrategy; s {
	case StrategyDense:
		m, err := b.memory("nodes", mmap.AccessRandom)
		if err != nil {
			return nil, err
		}
		dense, err := collection.NewDenseDataMap(dt, m)
		if err != nil {
			return nil, err
		}
		return dense, nil
	case StrategySparse:
		offsets, err := list[int64](b, "nodes-offsets", datatype.Long{}, mmap.AccessRandom)
		if err != nil {
			return nil, err
		}
		pads, err := list[byte](b, "nodes-pads", datatype.Byte{}, mmap.AccessRandom)
		if err != nil {
			return nil, err
		}
		values, err := list[datatype.Optional[Coordinate]](b, "nodes-values", datatype.NewNullable(dt), mmap.AccessRandom)
		if err != nil {
			return nil, err
		}
		return collection.NewSparseDataMap(offsets, pads, values), nil
	case StrategySorted:
		return sortedMap(b, "nodes", datatype.AsVariable(dt))
	case StrategyHash:
		values, err := buffer(b, "nodes-values", datatype.AsVariable(dt), mmap.AccessRandom)
		if err != nil {
			return nil, err
		}
		return collection.NewHashDataMap(values), nil
	default:
		return nil, &ErrInvalidStrategy{Map: "coordinate", Strategy: s}
	}
}

func (b *builder) referenceMap() (collection.LongDataMap[[]int64], error) {
	b.logger = b.opts.logger.WithBackend(b.opts.backend).WithMap("references")
	var dt datatype.Variable[[]int64] = datatype.LongList{}

	switch s := b.opts.referenceStrategy; s {
	case StrategyDense:
		index, err := list[datatype.Optional[int64]](b, "ways-index", datatype.NewNullable[int64](datatype.Long{}), mmap.AccessRandom)
		if err != nil {
			return nil, err
		}
		values, err := buffer(b, "ways-values", dt, mmap.AccessRandom)
		if err != nil {
			return nil, err
		}
		return collection.NewIndexedDataStore(index, values), nil
	case StrategySorted:
		return sortedMap(b, "ways", dt)
	case StrategyHash:
		values, err := buffer(b, "ways-values", dt, mmap.AccessRandom)
		if err != nil {
			return nil, err
		}
		return collection.NewHashDataMap(values), nil
	default:
		return nil, &ErrInvalidStrategy{Map: "reference", Strategy: s}
	}
}

func sortedMap[T any](b *builder, prefix string, dt datatype.Variable[T]) (collection.LongDataMap[T], error) {
	offsets, err := list[int64](b, prefix+"-offsets", datatype.Long{}, mmap.AccessRandom)
	if err != nil {
		return nil, err
	}
	keys, err := list[datatype.Pair[int64, int64]](b, prefix+"-keys", datatype.NewPairType[int64, int64](datatype.Long{}, datatype.Long{}), mmap.AccessRandom)
	if err != nil {
		return nil, err
	}
	values, err := buffer(b, prefix+"-values", dt, mmap.AccessSequential)
	if err != nil {
		return nil, err
	}
	return collection.NewSortedDataMap(offsets, keys, values), nil
}
