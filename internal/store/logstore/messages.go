package logstore

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/sumologic/receiver-mock/internal/clock"
	"github.com/sumologic/receiver-mock/internal/regexcache"
	"github.com/sumologic/receiver-mock/internal/telemetry/metadata"
)

type logMessage struct {
	metadata metadata.Metadata
}

// MessageRepository indexes log messages by timestamp so that range
// queries don't need to scan the whole set, and answers metadata-filtered
// count queries via a shared anchored-regex cache. Go has no built-in
// BTreeMap; messagesByTS plus an incrementally maintained sorted key slice
// is the idiomatic replacement, generalized from the sort.Slice-on-read
// pattern in _examples/fiddeb-otlp_cardinality_checker's in-memory store,
// since range queries are on the hot path and resorting per query would be
// wasteful.
//
// Grounded on original_source/.../logs/mod.rs::LogRepository.
type MessageRepository struct {
	mu           sync.RWMutex
	messagesByTS map[uint64][]logMessage
	sortedTS     []uint64
	regexCache   *regexcache.Cache
	logf         func(string, ...any)
}

// NewMessageRepository returns an empty MessageRepository. logf receives a
// warning whenever a message's timestamp can't be recovered from its body
// and the wall clock is substituted instead; pass nil to discard it.
func NewMessageRepository(logf func(string, ...any)) *MessageRepository {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &MessageRepository{
		messagesByTS: make(map[uint64][]logMessage),
		regexCache:   regexcache.New(),
		logf:         logf,
	}
}

// Add indexes body under its JSON "timestamp" field, falling back to the
// current wall-clock time (with a warning) when the body isn't a JSON
// object with a numeric, non-negative "timestamp" key.
func (r *MessageRepository) Add(body string, md metadata.Metadata) {
	ts, ok := timestampFromBody(body)
	if !ok {
		r.logf("couldn't find timestamp in log line %q, using current time", body)
		ts = clock.NowMillis()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.messagesByTS[ts]; !exists {
		i := sort.Search(len(r.sortedTS), func(i int) bool { return r.sortedTS[i] >= ts })
		r.sortedTS = append(r.sortedTS, 0)
		copy(r.sortedTS[i+1:], r.sortedTS[i:])
		r.sortedTS[i] = ts
	}
	r.messagesByTS[ts] = append(r.messagesByTS[ts], logMessage{metadata: md})
}

// Count returns the number of messages whose timestamp falls in the
// half-open range [fromTS, toTS) and whose metadata matches query. An
// empty query value for a key means "present, any value"; a non-empty
// value is matched as an anchored regex against the stored value (the
// query key must be present in the message's metadata either way).
func (r *MessageRepository) Count(fromTS, toTS uint64, query map[string]string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lo := sort.Search(len(r.sortedTS), func(i int) bool { return r.sortedTS[i] >= fromTS })
	count := 0
	for i := lo; i < len(r.sortedTS) && r.sortedTS[i] < toTS; i++ {
		for _, msg := range r.messagesByTS[r.sortedTS[i]] {
			matched, err := r.matches(query, msg.metadata)
			if err != nil {
				return 0, err
			}
			if matched {
				count++
			}
		}
	}
	return count, nil
}

func (r *MessageRepository) matches(query map[string]string, target metadata.Metadata) (bool, error) {
	for key, value := range query {
		targetValue, ok := target[key]
		if !ok {
			return false, nil
		}
		if value == "" {
			continue
		}
		re, err := r.regexCache.Get(value)
		if err != nil {
			return false, err
		}
		if !re.MatchString(targetValue) {
			return false, nil
		}
	}
	return true, nil
}

// timestampFromBody extracts a non-negative integral "timestamp" field
// from a JSON object body. Any other shape (non-JSON, non-object, missing,
// negative or non-integral field) reports ok=false.
func timestampFromBody(body string) (ts uint64, ok bool) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return 0, false
	}
	value, present := raw["timestamp"]
	if !present {
		return 0, false
	}
	f, isNumber := value.(float64)
	if !isNumber || f < 0 || f != float64(int64(f)) {
		return 0, false
	}
	return uint64(f), true
}
