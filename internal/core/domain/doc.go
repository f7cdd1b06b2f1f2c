// Package domain defines the core domain models for SyncBridge.
//
// Domain models are pure value objects without any IO dependencies
// or framework coupling: operation identifiers and the structured
// error taxonomy shared by the marker store, wait loop and bridge.
package domain
