// Package sample defines the metric sample shape shared by every decoder
// and the metric repository's dedup set, along with the series-identity
// key used to implement that dedup.
package sample

import (
	"sort"
	"strings"
)

// Sample is a single metric data point. Series identity is (Metric,
// Labels) only: Value and TimestampMillis are not part of identity, so two
// samples for the same series compare equal for dedup purposes regardless
// of their value or timestamp.
type Sample struct {
	Metric          string            `json:"metric"`
	Value           float64           `json:"value"`
	Labels          map[string]string `json:"labels"`
	TimestampMillis uint64            `json:"timestamp"`
}

// SeriesKey returns the canonical identity key for a (metric, labels)
// pair: label keys are sorted before being combined so that two label maps
// with the same content always produce the same key, regardless of
// insertion order. This stands in for Rust's custom Hash/Eq impl on Sample
// (see original_source/.../metrics/mod.rs), which explicitly sorts labels
// before hashing for the same reason.
func SeriesKey(metric string, labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(metric)
	for _, k := range keys {
		b.WriteByte('\x1f')
		b.WriteString(k)
		b.WriteByte('\x1e')
		b.WriteString(labels[k])
	}
	return b.String()
}

// Key returns s's series identity key.
func (s Sample) Key() string {
	return SeriesKey(s.Metric, s.Labels)
}
