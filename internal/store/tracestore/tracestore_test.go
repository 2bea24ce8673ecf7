package tracestore

import (
	"testing"

	"github.com/sumologic/receiver-mock/internal/telemetry/span"
)

func TestAddSpansGroupsByTrace(t *testing.T) {
	r := New()
	r.AddSpans([]span.Span{
		{ID: "s1", TraceID: "t1", Name: "a"},
		{ID: "s2", TraceID: "t1", Name: "b"},
		{ID: "s3", TraceID: "t2", Name: "c"},
	})

	spans := r.ListSpans(nil)
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(spans))
	}

	traces := r.ListTraces(nil, nil)
	if len(traces) != 2 {
		t.Fatalf("expected 2 traces, got %d", len(traces))
	}
}

func TestListTracesKeepsAllSpansWhenAnyMatches(t *testing.T) {
	r := New()
	r.AddSpans([]span.Span{
		{ID: "s1", TraceID: "t1", Name: "matching", Attributes: map[string]string{"kind": "http"}},
		{ID: "s2", TraceID: "t1", Name: "other"},
	})

	traces := r.ListTraces(map[string]string{"__name__": "matching"}, nil)
	if len(traces) != 1 {
		t.Fatalf("expected 1 matching trace, got %d", len(traces))
	}
	if len(traces[0]) != 2 {
		t.Errorf("expected the whole trace (both spans) returned, got %d", len(traces[0]))
	}
}

func TestListTracesExcludesNonMatching(t *testing.T) {
	r := New()
	r.AddSpans([]span.Span{
		{ID: "s1", TraceID: "t1", Name: "foo"},
		{ID: "s2", TraceID: "t2", Name: "bar"},
	})

	traces := r.ListTraces(map[string]string{"__name__": "foo"}, nil)
	if len(traces) != 1 {
		t.Fatalf("expected only t1 to match, got %d traces", len(traces))
	}
}

func TestListTracesWarnsOnDanglingSpan(t *testing.T) {
	r := New()
	r.AddSpans([]span.Span{{ID: "s1", TraceID: "t1", Name: "a"}})

	// Simulate a span disappearing from the span map without the trace
	// index being updated, by constructing a second repository state.
	r.spansMu.Lock()
	delete(r.spans, "s1")
	r.spansMu.Unlock()

	var warned bool
	traces := r.ListTraces(nil, func(string, ...any) { warned = true })
	if !warned {
		t.Errorf("expected a warning for the dangling span id")
	}
	if len(traces) != 0 {
		t.Errorf("expected the now-empty trace to not match, got %d", len(traces))
	}
}

func TestListSpansFiltersByAttribute(t *testing.T) {
	r := New()
	r.AddSpans([]span.Span{
		{ID: "s1", TraceID: "t1", Name: "a", Attributes: map[string]string{"env": "prod"}},
		{ID: "s2", TraceID: "t1", Name: "b", Attributes: map[string]string{"env": "dev"}},
	})

	spans := r.ListSpans(map[string]string{"env": "prod"})
	if len(spans) != 1 || spans[0].ID != "s1" {
		t.Errorf("expected only s1 to match, got %v", spans)
	}
}
