// Package cmap provides a concurrent-safe sharded map keyed by string.
//
// It uses sharding to reduce lock contention under many concurrent
// in-flight operations. Keys are operation identifiers, so the map is
// specialized to string keys and hashed with hash/maphash directly.
package cmap
