package internaldefs

import (
	goCred "github.com/MrEthical07/goCred"
)

// CounterDef binds one core counter to its exported name and help text.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goCred.MetricID
	Name string
	Help string
}

// HistogramDef binds one core latency histogram to its exported name and help text.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   goCred.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the credential core.
var CounterDefs = []CounterDef{
	{ID: goCred.MetricHashSuccess, Name: "gocred_hash_success_total", Help: "Successful password hash operations."},
	{ID: goCred.MetricHashFailure, Name: "gocred_hash_failure_total", Help: "Failed password hash operations."},
	{ID: goCred.MetricVerifySuccess, Name: "gocred_verify_success_total", Help: "Successful password verifications."},
	{ID: goCred.MetricVerifyFailure, Name: "gocred_verify_failure_total", Help: "Rejected password verifications."},
	{ID: goCred.MetricVerifySchemeNotFound, Name: "gocred_verify_scheme_not_found_total", Help: "Verifications against an unregistered scheme version."},
	{ID: goCred.MetricUpgradePerformed, Name: "gocred_upgrade_performed_total", Help: "Logins that produced an upgraded credential."},
	{ID: goCred.MetricUpgradeSkipped, Name: "gocred_upgrade_skipped_total", Help: "Verify-and-upgrade calls already on the current scheme."},
	{ID: goCred.MetricComplexityRejected, Name: "gocred_complexity_rejected_total", Help: "Candidate passwords below the minimum complexity score."},
}

// HistogramDefs is an exported constant or variable used by the credential core.
var HistogramDefs = []HistogramDef{
	{ID: goCred.MetricHashLatency, Name: "gocred_hash_latency_seconds", Help: "Password hash latency histogram."},
	{ID: goCred.MetricVerifyLatency, Name: "gocred_verify_latency_seconds", Help: "Password verification latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the credential core.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the credential core.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw bucket slice to the fixed width.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts to the cumulative form the
// exposition formats require.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
