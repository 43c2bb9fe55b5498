// Package testutil provides testing utilities for stabgo.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Circuits
//
//	rng := testutil.NewRNG(seed)
//	c := rng.RandomCircuit(64, 1000, testutil.CircuitOptions{})
//
// The same seed always yields the same circuit, so failures reproduce.
package testutil
