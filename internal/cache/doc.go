// Package cache implements a single-process, in-memory time-to-live cache.
//
// Every entry carries the time it was inserted and becomes invalid once the
// cache-wide TTL has elapsed since then. Expiry is enforced two ways:
//   - lazily, when Get finds an expired entry it removes it and reports a miss
//   - actively, by an owned sweeper goroutine that scans the table on a fixed interval
//
// A single mutex guards the whole table. Every public operation, and every
// sweep pass, holds it for its full duration, so operations on the same key are
// linearized.
//
// Exists reports raw presence in the table and does not check expiry. Between
// the moment an entry's TTL elapses and the next sweep (or Get on that key),
// Exists may return true while Get returns a miss. Len behaves the same way.
//
// Close stops the sweeper. The table is retained and operations keep working
// with lazy expiry only.
package cache
