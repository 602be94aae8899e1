// Package prometheus provides Prometheus collectors for goCred metrics.
//
// [NewPrometheusExporter] accepts a [goCred.Manager] and exposes an [http.Handler]
// that renders all goCred counters and histograms in Prometheus text exposition format.
// Counter names are prefixed gocred_*_total; the histograms are
// gocred_hash_latency_seconds and gocred_verify_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry; callers mount the Handler.
//   - Mutate manager state.
package prometheus
