// Package main provides the entry point for syncbridge.
//
// syncbridge performs asynchronous HTTP operations as blocking calls:
//
//   - Fetch a URL and wait for the completion callback to land
//   - Bound the wait with a timeout and fall back to a default value
//   - Adjust logging at runtime through the configuration file
//
// Usage:
//
//	syncbridge [command] [flags]
//	syncbridge fetch https://example.com/resource
//	syncbridge fetch --timeout 5s --default "{}" https://slow.example.com
//	syncbridge version --json
package main
