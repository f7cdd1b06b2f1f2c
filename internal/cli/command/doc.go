// Package command provides CLI command definitions for syncbridge.
//
// It uses urfave/cli/v2 for command parsing. The fetch command is a
// thin front for the synchronous bridge: it blocks until the requested
// operation completes, times out, or is interrupted.
package command
