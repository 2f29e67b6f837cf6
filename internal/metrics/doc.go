// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Per-endpoint request counts and latency histograms
//   - Data directory file count and total size
package metrics
