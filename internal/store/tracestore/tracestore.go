// Package tracestore holds the in-memory span and trace repository.
package tracestore

import (
	"fmt"
	"sync"

	"github.com/sumologic/receiver-mock/internal/telemetry/span"
)

// Trace groups the ids of the spans that belong to it, in the order they
// were received.
type Trace struct {
	SpanIDs []string
}

// Repository holds every received span plus the traces they group into.
// spansMu always guards spans; tracesMu always guards traces. Callers that
// need both locks acquire spansMu before tracesMu, matching the fixed
// ordering used throughout the receiver to avoid deadlock.
//
// Grounded on original_source/.../traces/mod.rs (Span, Trace, filter_spans,
// filter_traces) and original_source/.../router/traces_data.rs's handlers.
type Repository struct {
	spansMu sync.RWMutex
	spans   map[string]span.Span

	tracesMu sync.RWMutex
	traces   map[string]*Trace
}

// New returns an empty Repository.
func New() *Repository {
	return &Repository{
		spans:  make(map[string]span.Span),
		traces: make(map[string]*Trace),
	}
}

// AddSpans stores every span and appends its id to its trace's span list,
// creating the trace on first sight. Locks spans before traces.
func (r *Repository) AddSpans(spans []span.Span) {
	r.spansMu.Lock()
	for _, s := range spans {
		r.spans[s.ID] = s
	}
	r.spansMu.Unlock()

	r.tracesMu.Lock()
	for _, s := range spans {
		t, ok := r.traces[s.TraceID]
		if !ok {
			t = &Trace{}
			r.traces[s.TraceID] = t
		}
		t.SpanIDs = append(t.SpanIDs, s.ID)
	}
	r.tracesMu.Unlock()
}

// ListSpans returns every stored span matching query.
func (r *Repository) ListSpans(query map[string]string) []span.Span {
	r.spansMu.RLock()
	defer r.spansMu.RUnlock()

	var out []span.Span
	for _, s := range r.spans {
		if span.MatchesSpan(s, query) {
			out = append(out, s)
		}
	}
	return out
}

// ListTraces returns, for every trace with at least one span matching
// query, the full materialized list of that trace's spans (not just the
// matching ones). A span id referenced by a trace but no longer present
// produces a warning via logf (nil is accepted and discards it) rather
// than failing the whole query.
func (r *Repository) ListTraces(query map[string]string, logf func(string, ...any)) [][]span.Span {
	if logf == nil {
		logf = func(string, ...any) {}
	}

	r.spansMu.RLock()
	defer r.spansMu.RUnlock()
	r.tracesMu.RLock()
	defer r.tracesMu.RUnlock()

	var out [][]span.Span
	for _, t := range r.traces {
		spans := make([]span.Span, 0, len(t.SpanIDs))
		for _, id := range t.SpanIDs {
			s, ok := r.spans[id]
			if !ok {
				logf(fmt.Sprintf("span with id %s not found", id))
				continue
			}
			spans = append(spans, s)
		}

		matched := false
		for _, s := range spans {
			if span.MatchesSpan(s, query) {
				matched = true
				break
			}
		}
		if matched {
			out = append(out, spans)
		}
	}
	return out
}
