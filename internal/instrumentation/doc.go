// Package instrumentation provides Prometheus metrics for the provider
// adapters: remote API request counts by operation and status, and OAuth
// token refresh counts by result.
//
// Metrics are optional; a nil *Metrics records nothing.
package instrumentation
