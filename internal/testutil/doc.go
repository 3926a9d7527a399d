// Package testutil provides seeded random data for tests and benchmarks.
//
//	rng := testutil.NewRNG(seed)
//	ids := rng.IncreasingKeys(1000, 50)    // strictly increasing, gaps < 50
//	c := rng.Coordinate()                  // valid lon/lat
//	refs := rng.References(16, 1<<40)      // way node list
package testutil
