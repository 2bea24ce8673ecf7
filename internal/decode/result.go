// Package decode implements the pure, I/O-free format decoders that turn
// raw request bodies into normalized records: Carbon2, Graphite and
// Prometheus text for metrics, and OTLP protobuf for logs, metrics and
// traces. Every decoder returns the same Result shape so the dispatcher in
// internal/ingest can treat them uniformly.
package decode

import (
	"net/netip"

	"github.com/sumologic/receiver-mock/internal/telemetry/sample"
)

// Result is the normalized output of a metric-line decoder.
type Result struct {
	MetricCount    uint64
	PerNameCounts  map[string]uint64
	PerIPCounts    map[netip.Addr]uint64
	SamplesToStore []sample.Sample
}

// NewResult returns an empty, ready-to-use Result.
func NewResult() Result {
	return Result{
		PerNameCounts: make(map[string]uint64),
		PerIPCounts:   make(map[netip.Addr]uint64),
	}
}

// handleMetric records one occurrence of metricName.
func (r *Result) handleMetric(metricName string) {
	r.PerNameCounts[metricName]++
	r.MetricCount++
}

// handleIP records one ingested line from addr.
func (r *Result) handleIP(addr netip.Addr) {
	r.PerIPCounts[addr]++
}

// LogBatch is one ResourceLogs' worth of rendered log lines sharing a
// single resource-derived metadata map.
type LogBatch struct {
	Metadata map[string]string
	Lines    []string
}
