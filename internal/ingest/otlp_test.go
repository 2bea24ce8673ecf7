package ingest

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	logspb "go.opentelemetry.io/proto/otlp/logs/v1"
	resourcepb "go.opentelemetry.io/proto/otlp/resource/v1"
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"
	"google.golang.org/protobuf/proto"

	"github.com/sumologic/receiver-mock/internal/config"
)

func TestReceiveOTLPTracesGroupsIntoOneTrace(t *testing.T) {
	h := newTestHandler(config.Options{StoreTraces: true})

	data := &tracepb.TracesData{
		ResourceSpans: []*tracepb.ResourceSpans{
			{
				ScopeSpans: []*tracepb.ScopeSpans{
					{
						Spans: []*tracepb.Span{
							{Name: "first", SpanId: []byte{0x01}, TraceId: []byte{0xaa}},
							{Name: "second", SpanId: []byte{0x02}, TraceId: []byte{0xaa}},
						},
					},
				},
			},
		},
	}
	raw, err := proto.Marshal(data)
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/receiver/v1/traces", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/x-protobuf")
	w := httptest.NewRecorder()

	h.ReceiveOTLPTraces(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	traces := h.Traces.ListTraces(nil, nil)
	if len(traces) != 1 {
		t.Fatalf("expected 1 trace, got %d", len(traces))
	}
	if len(traces[0]) != 2 {
		t.Errorf("expected 2 spans in the trace, got %d", len(traces[0]))
	}
}

func TestReceiveOTLPLogsStoresRenderedLines(t *testing.T) {
	h := newTestHandler(config.Options{StoreLogs: true})

	data := &logspb.LogsData{
		ResourceLogs: []*logspb.ResourceLogs{
			{
				Resource: &resourcepb.Resource{
					Attributes: []*commonpb.KeyValue{
						{Key: "env", Value: &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: "prod"}}},
					},
				},
				ScopeLogs: []*logspb.ScopeLogs{
					{
						LogRecords: []*logspb.LogRecord{
							{Body: &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: `{"timestamp": 5, "log": "hi"}`}}},
						},
					},
				},
			},
		},
	}
	raw, err := proto.Marshal(data)
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/receiver/v1/logs", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/x-protobuf")
	w := httptest.NewRecorder()

	h.ReceiveOTLPLogs(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	count, err := h.LogMessages.Count(0, 10, map[string]string{"env": "prod"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 matching log, got %d", count)
	}
}

func TestReceiveOTLPWrongContentTypeIs400(t *testing.T) {
	h := newTestHandler(config.Options{})

	req := httptest.NewRequest(http.MethodPost, "/receiver/v1/metrics", bytes.NewReader(nil))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()

	h.ReceiveOTLPMetrics(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestReceiveOTLPMalformedBodyIs400(t *testing.T) {
	h := newTestHandler(config.Options{})

	req := httptest.NewRequest(http.MethodPost, "/receiver/v1/metrics", bytes.NewReader([]byte{0xff, 0xff, 0xff}))
	req.Header.Set("Content-Type", "application/x-protobuf")
	w := httptest.NewRecorder()

	h.ReceiveOTLPMetrics(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
