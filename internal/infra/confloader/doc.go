// Package confloader provides configuration loading for syncbridge.
//
// It uses Koanf for flexible configuration loading from multiple
// sources with priority: Env > File > Default, plus an fsnotify-based
// watcher for reacting to configuration file changes at runtime.
package confloader
