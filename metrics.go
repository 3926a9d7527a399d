package osmcache

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Every Cache operation calls exactly one method after it returns.
type MetricsCollector interface {
	// RecordPutCoordinate is called after each PutCoordinate.
	RecordPutCoordinate(duration time.Duration, err error)

	// RecordPutReferences is called after each PutReferences.
	// count is the length of the stored list.
	RecordPutReferences(count int, duration time.Duration, err error)

	// RecordCoordinateLookup is called after each Coordinate lookup.
	// found reports whether the id was present.
	RecordCoordinateLookup(found bool, duration time.Duration, err error)

	// RecordReferencesLookup is called after each References lookup.
	RecordReferencesLookup(found bool, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPutCoordinate(time.Duration, error)          {}
func (NoopMetricsCollector) RecordPutReferences(int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordCoordinateLookup(bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordReferencesLookup(bool, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	CoordinatePuts       atomic.Int64
	CoordinatePutErrors  atomic.Int64
	CoordinatePutNanos   atomic.Int64
	ReferencePuts        atomic.Int64
	ReferencePutErrors   atomic.Int64
	ReferenceItems       atomic.Int64
	CoordinateLookups    atomic.Int64
	CoordinateMisses     atomic.Int64
	CoordinateLookupErrs atomic.Int64
	ReferenceLookups     atomic.Int64
	ReferenceMisses      atomic.Int64
	ReferenceLookupErrs  atomic.Int64
}

// RecordPutCoordinate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPutCoordinate(duration time.Duration, err error) {
	b.CoordinatePuts.Add(1)
	b.CoordinatePutNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CoordinatePutErrors.Add(1)
	}
}

// RecordPutReferences implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPutReferences(count int, _ time.Duration, err error) {
	b.ReferencePuts.Add(1)
	if err != nil {
		b.ReferencePutErrors.Add(1)
		return
	}
	b.ReferenceItems.Add(int64(count))
}

// RecordCoordinateLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCoordinateLookup(found bool, _ time.Duration, err error) {
	b.CoordinateLookups.Add(1)
	switch {
	case err != nil:
		b.CoordinateLookupErrs.Add(1)
	case !found:
		b.CoordinateMisses.Add(1)
	}
}

// RecordReferencesLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReferencesLookup(found bool, _ time.Duration, err error) {
	b.ReferenceLookups.Add(1)
	switch {
	case err != nil:
		b.ReferenceLookupErrs.Add(1)
	case !found:
		b.ReferenceMisses.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CoordinatePuts:       b.CoordinatePuts.Load(),
		CoordinatePutErrors:  b.CoordinatePutErrors.Load(),
		CoordinatePutAvgNano: b.getAvgCoordinatePutNanos(),
		ReferencePuts:        b.ReferencePuts.Load(),
		ReferencePutErrors:   b.ReferencePutErrors.Load(),
		ReferenceItems:       b.ReferenceItems.Load(),
		CoordinateLookups:    b.CoordinateLookups.Load(),
		CoordinateMisses:     b.CoordinateMisses.Load(),
		CoordinateLookupErrs: b.CoordinateLookupErrs.Load(),
		ReferenceLookups:     b.ReferenceLookups.Load(),
		ReferenceMisses:      b.ReferenceMisses.Load(),
		ReferenceLookupErrs:  b.ReferenceLookupErrs.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgCoordinatePutNanos() int64 {
	count := b.CoordinatePuts.Load()
	if count == 0 {
		return 0
	}
	return b.CoordinatePutNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	CoordinatePuts       int64
	CoordinatePutErrors  int64
	CoordinatePutAvgNano int64
	ReferencePuts        int64
	ReferencePutErrors   int64
	ReferenceItems       int64
	CoordinateLookups    int64
	CoordinateMisses     int64
	CoordinateLookupErrs int64
	ReferenceLookups     int64
	ReferenceMisses      int64
	ReferenceLookupErrs  int64
}
