// Package bridge turns an asynchronous network operation into a
// blocking call.
//
// A call issues an operation ID from the marker store, starts the
// operation on the network executor with a completion handler that
// captures the outcome and removes the ID's marker, then blocks in the
// wait loop until the marker is gone. Deadlines ride in on the caller's
// context: the wait probe cancels the underlying operation once the
// context expires and forces the wait to stop.
//
// Cancellation is cooperative. The forced stop and the operation's own
// completion handler race for the marker; whichever side lands first
// wins, and a stopped call may therefore return either the handler's
// cancellation-flavored outcome or no outcome at all.
package bridge
