package ingest

import (
	"net/http"

	logspb "go.opentelemetry.io/proto/otlp/logs/v1"
	metricspb "go.opentelemetry.io/proto/otlp/metrics/v1"
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"
	"google.golang.org/protobuf/proto"

	"github.com/sumologic/receiver-mock/internal/decode"
)

const otlpProtobufContentType = "application/x-protobuf"

// ReceiveOTLPLogs implements POST /receiver/v1/logs.
func (h *Handler) ReceiveOTLPLogs(w http.ResponseWriter, r *http.Request) {
	body, addr, ok := h.preamble(w, r)
	if !ok {
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType != otlpProtobufContentType {
		writeInvalidContentType(w, contentType)
		return
	}

	var data logspb.LogsData
	if err := proto.Unmarshal([]byte(body), &data); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Unable to parse body"))
		return
	}

	batches, warnings := decode.DecodeOTLPLogs(&data)
	for _, warning := range warnings {
		h.Logger.Print(string(warning))
	}

	if h.tryDroppingData(w, contentType) {
		return
	}

	for _, batch := range batches {
		lines := batch.Lines
		if h.Redactor != nil {
			redacted := make([]string, len(lines))
			for i, line := range lines {
				redacted[i] = h.Redactor.Redact(line)
			}
			lines = redacted
		}
		h.addLogLines(lines, batch.Metadata, addr)
	}

	w.WriteHeader(http.StatusOK)
}

// ReceiveOTLPMetrics implements POST /receiver/v1/metrics.
func (h *Handler) ReceiveOTLPMetrics(w http.ResponseWriter, r *http.Request) {
	body, _, ok := h.preamble(w, r)
	if !ok {
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType != otlpProtobufContentType {
		writeInvalidContentType(w, contentType)
		return
	}

	var data metricspb.MetricsData
	if err := proto.Unmarshal([]byte(body), &data); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Unable to parse body"))
		return
	}

	result, warnings := decode.DecodeOTLPMetrics(&data)
	for _, warning := range warnings {
		h.Logger.Print(string(warning))
	}
	if h.tryDroppingData(w, contentType) {
		return
	}
	h.Metrics.AddResult(result, h.Opts.StoreMetrics)

	w.WriteHeader(http.StatusOK)
}

// ReceiveOTLPTraces implements POST /receiver/v1/traces.
func (h *Handler) ReceiveOTLPTraces(w http.ResponseWriter, r *http.Request) {
	body, _, ok := h.preamble(w, r)
	if !ok {
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType != otlpProtobufContentType {
		writeInvalidContentType(w, contentType)
		return
	}

	var data tracepb.TracesData
	if err := proto.Unmarshal([]byte(body), &data); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Unable to parse body"))
		return
	}

	spans, warnings := decode.DecodeOTLPTraces(&data)
	for _, warning := range warnings {
		h.Logger.Print(string(warning))
	}

	if h.Opts.PrintSpans {
		for _, s := range spans {
			h.Logger.Printf("span => %+v", s)
		}
	}

	if h.tryDroppingData(w, contentType) {
		return
	}

	if h.Opts.StoreTraces {
		h.Traces.AddSpans(spans)
	}

	w.WriteHeader(http.StatusOK)
}
