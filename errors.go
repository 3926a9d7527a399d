package osmcache

import (
	"errors"
	"fmt"

	"github.com/hupe1980/osmcache/collection"
	"github.com/hupe1980/osmcache/internal/resource"
	"github.com/hupe1980/osmcache/memory"
)

var (
	// ErrClosed is returned when a closed cache is used.
	ErrClosed = errors.New("osmcache: cache is closed")
	// ErrDirRequired is returned when a mapped backend is selected without a directory.
	ErrDirRequired = errors.New("osmcache: directory required for mapped backends")
	// ErrUnsupportedStrategy is wrapped by ErrInvalidStrategy.
	ErrUnsupportedStrategy = errors.New("osmcache: unsupported strategy")

	// ErrInvalidSegmentSize is returned when the segment size is not a power of two.
	ErrInvalidSegmentSize = memory.ErrInvalidSegmentSize
	// ErrInvalidValueSize is returned when a value does not fit the segment layout.
	ErrInvalidValueSize = collection.ErrInvalidValueSize
	// ErrInvalidKey is returned for negative ids on strategies that address by id.
	ErrInvalidKey = collection.ErrInvalidKey
	// ErrOutOfOrder is returned when an ordered strategy receives a smaller id
	// than the previous one.
	ErrOutOfOrder = collection.ErrOutOfOrder
	// ErrMemoryLimitExceeded is returned when a segment allocation would exceed
	// the limit set with WithMemoryLimit.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded
)

// ErrInvalidStrategy indicates a strategy that cannot back the named map.
type ErrInvalidStrategy struct {
	Map      string
	Strategy Strategy
}

func (e *ErrInvalidStrategy) Error() string {
	return fmt.Sprintf("osmcache: strategy %s cannot back the %s map", e.Strategy, e.Map)
}

func (e *ErrInvalidStrategy) Unwrap() error { return ErrUnsupportedStrategy }
