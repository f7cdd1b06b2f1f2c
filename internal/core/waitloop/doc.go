// Package waitloop blocks a caller until an operation's marker is gone.
//
// The wait parks on the operation's done channel rather than spinning;
// a ticker wakes it only to run the caller-supplied probe, which is how
// deadline-driven cancellation reaches into the wait. Whatever the exit
// reason, the marker is removed once more on the way out so no
// operation is ever left permanently live.
package waitloop
