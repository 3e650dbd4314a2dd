// Package dict implements a string to float32 map with separate chaining.
//
// # Layout
//
// A Map owns an array of buckets; each bucket is a singly linked chain of
// key/value nodes. New nodes are prepended to their chain, so there is no
// ordering within a chain and no iteration order guarantee overall.
//
// # Hashing
//
// Keys are hashed with djb2 (h = h*33 + b, seeded with 5381) and reduced
// modulo the bucket count.
//
// # Rehashing
//
// Before an insert, if the entry count has reached 70% of the bucket count,
// the map grows under the shared growth law (doubling below 1 MiB buckets,
// +1 MiB afterwards) and every node is redistributed with the new modulus.
//
// # Occupancy
//
// The set of non-empty buckets is tracked in a roaring bitmap, so
// OccupiedBuckets is exact at all times. It is a diagnostic for chain
// clustering; Len is the map's size.
package dict
