// Package logstore holds the two log-facing repositories: aggregate
// message/byte counters per source IP, and the full message index used to
// answer metadata-filtered count queries.
package logstore

import (
	"net/netip"
	"sync"
)

// LogStats is a message/byte counter pair.
type LogStats struct {
	MessageCount uint64
	ByteCount    uint64
}

// StatsRepository tracks total and per-source-address log volume.
// Grounded on original_source/.../logs/mod.rs::LogStatsRepository.
type StatsRepository struct {
	mu     sync.RWMutex
	total  LogStats
	byAddr map[netip.Addr]LogStats
}

// NewStatsRepository returns an empty StatsRepository.
func NewStatsRepository() *StatsRepository {
	return &StatsRepository{byAddr: make(map[netip.Addr]LogStats)}
}

// Update adds messageCount/byteCount to both the total and addr's bucket.
func (r *StatsRepository) Update(messageCount, byteCount uint64, addr netip.Addr) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.total.MessageCount += messageCount
	r.total.ByteCount += byteCount

	stats := r.byAddr[addr]
	stats.MessageCount += messageCount
	stats.ByteCount += byteCount
	r.byAddr[addr] = stats
}

// Total returns the aggregate stats across all source addresses.
func (r *StatsRepository) Total() LogStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.total
}

// StatsForAddr returns addr's stats, or a zero value if it has never sent
// a message.
func (r *StatsRepository) StatsForAddr(addr netip.Addr) LogStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byAddr[addr]
}

// ByAddr returns a snapshot copy of every source address's stats, for the
// Prometheus self-metrics endpoint's per-IP families.
func (r *StatsRepository) ByAddr() map[netip.Addr]LogStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[netip.Addr]LogStats, len(r.byAddr))
	for addr, stats := range r.byAddr {
		out[addr] = stats
	}
	return out
}
