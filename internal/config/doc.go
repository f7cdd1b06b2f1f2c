// Package config defines the SyncBridge configuration structure.
package config
