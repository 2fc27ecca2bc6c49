package cache

import "time"

// entry is the value stored in the table.
//
// Entries are never mutated: Set replaces the whole entry, which also restarts
// its TTL clock.
type entry[T any] struct {
	value      T
	insertedAt time.Time
}

// IsExpired reports whether an entry inserted at insertedAt is expired at now.
//
// Expiry is boundary-inclusive: an entry is expired exactly when ttl has
// elapsed, not strictly after.
func IsExpired(insertedAt, now time.Time, ttl time.Duration) bool {
	return now.Sub(insertedAt) >= ttl
}
