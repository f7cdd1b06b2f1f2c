// Package netexec provides the default HTTP network executor.
//
// It is the thin pass-through collaborator the bridge starts and waits
// on: request construction, execution and body reading happen on the
// executor's own goroutine, and the completion callback fires exactly
// once with the outcome. Cancel aborts the in-flight request; the
// resulting context error flows through the normal result channel.
package netexec
