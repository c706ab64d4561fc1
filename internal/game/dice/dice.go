// Package dice provides the randomness abstraction used by item generation:
// a pluggable Source and a Sampler that turns it into coin flips, weighted
// index draws and inclusive integer ranges.
package dice

import "errors"

// ErrNoWeight is returned by WeightedIndex when every weight is zero.
var ErrNoWeight = errors.New("dice: all weights are zero")

// ErrWeightOverflow is returned by WeightedIndex when the weights sum past the
// range a Source can draw from.
var ErrWeightOverflow = errors.New("dice: weight sum overflows")

// Source is the randomness provider for all sampling.
//
// Implementations returned by NewCryptoSource are safe for concurrent use;
// seeded sources are not.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
