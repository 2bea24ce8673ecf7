// Package metricstore holds the in-memory metric repository: total/per-name/
// per-IP counters plus the last-seen sample for each distinct series.
package metricstore

import (
	"net/netip"
	"sync"

	"github.com/sumologic/receiver-mock/internal/decode"
	"github.com/sumologic/receiver-mock/internal/telemetry/sample"
)

// Repository accumulates decode.Result values from every ingested metrics
// batch. Grounded on original_source/.../router/mod.rs::AppState's
// metrics/metrics_list/metrics_ip_list/metrics_samples fields and its
// add_metrics_result method.
type Repository struct {
	mu         sync.RWMutex
	totalCount uint64
	perName    map[string]uint64
	perIP      map[netip.Addr]uint64
	samples    map[string]sample.Sample
}

// New returns an empty Repository.
func New() *Repository {
	return &Repository{
		perName: make(map[string]uint64),
		perIP:   make(map[netip.Addr]uint64),
		samples: make(map[string]sample.Sample),
	}
}

// AddResult merges one decoder's Result into the repository. When
// storeSamples is false, result's samples (if any) are ignored: counters
// are always accumulated regardless of the store-metrics flag.
func (r *Repository) AddResult(result decode.Result, storeSamples bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.totalCount += result.MetricCount
	for name, count := range result.PerNameCounts {
		r.perName[name] += count
	}
	for addr, count := range result.PerIPCounts {
		r.perIP[addr] += count
	}

	if !storeSamples {
		return
	}
	for _, s := range result.SamplesToStore {
		// Last write for a given series identity wins, mirroring Rust's
		// HashSet::replace semantics (the original original_source
		// Sample's Hash/Eq ignore value and timestamp).
		r.samples[s.Key()] = s
	}
}

// Total returns the cumulative metric count across every batch.
func (r *Repository) Total() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.totalCount
}

// PerName returns a snapshot of the per-metric-name counters.
func (r *Repository) PerName() map[string]uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]uint64, len(r.perName))
	for k, v := range r.perName {
		out[k] = v
	}
	return out
}

// PerIP returns a snapshot of the per-source-address counters.
func (r *Repository) PerIP() map[netip.Addr]uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[netip.Addr]uint64, len(r.perIP))
	for k, v := range r.perIP {
		out[k] = v
	}
	return out
}

// Filter returns every stored sample matching query. A query key of
// "__name__" matches against the sample's metric name rather than its
// labels; any other key must be present in the sample's labels, and an
// empty query value means "present, any value" while a non-empty value
// must match exactly. All query entries must match (logical AND).
//
// Grounded on original_source/.../metrics/mod.rs::filter_samples. Unlike
// the log-metadata query, this match is exact-string, not regex: the two
// query paths are deliberately not unified.
func (r *Repository) Filter(query map[string]string) []sample.Sample {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []sample.Sample
	for _, s := range r.samples {
		if sampleMatches(s, query) {
			out = append(out, s)
		}
	}
	return out
}

func sampleMatches(s sample.Sample, query map[string]string) bool {
	for key, want := range query {
		if key == "__name__" {
			if want != "" && s.Metric != want {
				return false
			}
			continue
		}
		got, ok := s.Labels[key]
		if !ok {
			return false
		}
		if want != "" && got != want {
			return false
		}
	}
	return true
}

// Reset clears every counter and stored sample.
func (r *Repository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.totalCount = 0
	r.perName = make(map[string]uint64)
	r.perIP = make(map[netip.Addr]uint64)
	r.samples = make(map[string]sample.Sample)
}
