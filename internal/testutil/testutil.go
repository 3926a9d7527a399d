package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/osmcache/datatype"
)

// RNG wraps a seeded math/rand source. It is safe for concurrent use.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic test data
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Int63n returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Int63n(n int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Int63n(n)
}

// Perm returns a pseudo-random permutation of [0,n).
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// IncreasingKeys returns n strictly increasing non-negative keys. Consecutive
// keys differ by at least 1 and less than maxGap+1.
func (r *RNG) IncreasingKeys(n int, maxGap int64) []int64 {
	if maxGap < 1 {
		maxGap = 1
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]int64, n)
	next := r.rand.Int63n(maxGap)
	for i := range keys {
		keys[i] = next
		next += 1 + r.rand.Int63n(maxGap)
	}
	return keys
}

// Coordinate returns a random coordinate with lon in [-180, 180) and lat in
// [-90, 90).
func (r *RNG) Coordinate() datatype.Coordinate {
	r.mu.Lock()
	defer r.mu.Unlock()
	return datatype.Coordinate{
		Lon: r.rand.Float64()*360 - 180,
		Lat: r.rand.Float64()*180 - 90,
	}
}

// References returns a list of up to maxLen random ids below maxID. The list
// may be empty.
func (r *RNG) References(maxLen int, maxID int64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	refs := make([]int64, r.rand.Intn(maxLen+1))
	for i := range refs {
		refs[i] = r.rand.Int63n(maxID)
	}
	return refs
}
