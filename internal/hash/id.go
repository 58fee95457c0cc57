// Package hash computes the 64-bit identifiers used to compare block names
// without repeated string comparisons.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given block identifier string.
//
// Matching on the 64-bit ID turns the per-position palette lookup in the
// search engine into an integer compare; callers confirm a hit with one string
// equality check, so hash collisions cannot produce false matches.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}
