// Package marker implements the operation token store.
//
// The store issues unique operation IDs and tracks each live operation
// with a marker: an in-memory registry entry carrying a one-shot done
// channel, mirrored by a zero-byte file in the store's working
// directory. Registry presence means pending, absence means done; the
// file's existence carries no content and exists only so in-flight
// operations stay observable from outside the process.
//
// The done channel is the wait-release signal. Marker file removal is
// best-effort with a bounded retry; callers must never treat file
// absence as proof of anything beyond "the wait may release".
package marker
