// Package query implements the receiver's read-side HTTP contract: the
// Prometheus self-metrics exposition, the plain-text and JSON diagnostic
// endpoints, and the metrics/logs/traces introspection queries spec.md
// §4.L describes, each gated behind its corresponding --store-* flag.
package query

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/sumologic/receiver-mock/internal/config"
	"github.com/sumologic/receiver-mock/internal/store/logstore"
	"github.com/sumologic/receiver-mock/internal/store/metricstore"
	"github.com/sumologic/receiver-mock/internal/store/tracestore"
	"github.com/sumologic/receiver-mock/internal/telemetry/sample"
	"github.com/sumologic/receiver-mock/internal/telemetry/span"
)

// Handler wires the repositories and options needed to answer every
// read-side route onto chi.
type Handler struct {
	LogMessages *logstore.MessageRepository
	LogStats    *logstore.StatsRepository
	Metrics     *metricstore.Repository
	Traces      *tracestore.Repository

	Opts   config.Options
	Logger *log.Logger
}

// PrometheusMetrics implements GET /metrics: a Prometheus exposition body
// with the fixed counters plus any non-empty per-IP families. Mirrors
// original_source/.../router/mod.rs::handler_metrics line-for-line,
// including the conditional per-IP families.
func (h *Handler) PrometheusMetrics(w http.ResponseWriter, r *http.Request) {
	logTotal := h.LogStats.Total()

	var body strings.Builder
	fmt.Fprintf(&body, "# TYPE receiver_mock_metrics_count counter\nreceiver_mock_metrics_count %d\n", h.Metrics.Total())
	fmt.Fprintf(&body, "# TYPE receiver_mock_logs_count counter\nreceiver_mock_logs_count %d\n", logTotal.MessageCount)
	fmt.Fprintf(&body, "# TYPE receiver_mock_logs_bytes_count counter\nreceiver_mock_logs_bytes_count %d\n", logTotal.ByteCount)

	if perIP := h.Metrics.PerIP(); len(perIP) > 0 {
		body.WriteString("# TYPE receiver_mock_metrics_ip_count counter\n")
		for addr, count := range perIP {
			fmt.Fprintf(&body, "receiver_mock_metrics_ip_count{ip_address=\"%s\"} %d\n", addr, count)
		}
	}

	if byAddr := h.LogStats.ByAddr(); len(byAddr) > 0 {
		var ipCount, ipBytes strings.Builder
		ipCount.WriteString("# TYPE receiver_mock_logs_ip_count counter\n")
		ipBytes.WriteString("# TYPE receiver_mock_logs_bytes_ip_count counter\n")
		for addr, stats := range byAddr {
			fmt.Fprintf(&ipCount, "receiver_mock_logs_ip_count{ip_address=\"%s\"} %d\n", addr, stats.MessageCount)
			fmt.Fprintf(&ipBytes, "receiver_mock_logs_bytes_ip_count{ip_address=\"%s\"} %d\n", addr, stats.ByteCount)
		}
		body.WriteString(ipCount.String())
		body.WriteString(ipBytes.String())
	}

	w.Write([]byte(body.String()))
}

// MetricsList implements GET /metrics-list: "<name>: <count>" lines.
func (h *Handler) MetricsList(w http.ResponseWriter, r *http.Request) {
	var out strings.Builder
	for name, count := range h.Metrics.PerName() {
		fmt.Fprintf(&out, "%s: %d\n", name, count)
	}
	w.Write([]byte(out.String()))
}

// MetricsIPs implements GET /metrics-ips: "<ip>: <count>" lines.
func (h *Handler) MetricsIPs(w http.ResponseWriter, r *http.Request) {
	var out strings.Builder
	for addr, count := range h.Metrics.PerIP() {
		fmt.Fprintf(&out, "%s: %d\n", addr, count)
	}
	w.Write([]byte(out.String()))
}

// MetricsSamples implements GET /metrics-samples?<labels>: a JSON array of
// the samples matching the query's label predicate. 501 when --store-metrics
// wasn't set, since nothing was ever retained to query.
func (h *Handler) MetricsSamples(w http.ResponseWriter, r *http.Request) {
	if !h.Opts.StoreMetrics {
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	query := flattenQuery(r.URL.Query())
	samples := h.Metrics.Filter(query)
	if samples == nil {
		samples = []sample.Sample{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(samples)
}

// MetricsReset implements POST /metrics-reset: clears every metric
// aggregate and the stored sample set.
func (h *Handler) MetricsReset(w http.ResponseWriter, r *http.Request) {
	h.Metrics.Reset()
	w.Write([]byte("All metrics were reset successfully"))
}

type logsCountResponse struct {
	Count int `json:"count"`
}

// LogsCount implements GET /logs/count?from_ts=&to_ts=&<metadata>: a JSON
// {count}. from_ts defaults to 0, to_ts to math.MaxUint64; those two query
// keys are excluded from the metadata predicate. 501 when --store-logs
// wasn't set.
func (h *Handler) LogsCount(w http.ResponseWriter, r *http.Request) {
	if !h.Opts.StoreLogs {
		w.WriteHeader(http.StatusNotImplemented)
		w.Write([]byte("Use the --store-logs flag to enable this endpoint"))
		return
	}

	params := r.URL.Query()
	fromTS, toTS, err := parseTimeRange(params)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return
	}

	metadataQuery := make(map[string]string)
	for key, values := range params {
		if key == "from_ts" || key == "to_ts" {
			continue
		}
		metadataQuery[key] = values[0]
	}

	count, err := h.LogMessages.Count(fromTS, toTS, metadataQuery)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(logsCountResponse{Count: count})
}

func parseTimeRange(params map[string][]string) (fromTS, toTS uint64, err error) {
	toTS = ^uint64(0)
	if v, ok := params["from_ts"]; ok && len(v) > 0 && v[0] != "" {
		fromTS, err = strconv.ParseUint(v[0], 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid from_ts: %w", err)
		}
	}
	if v, ok := params["to_ts"]; ok && len(v) > 0 && v[0] != "" {
		toTS, err = strconv.ParseUint(v[0], 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid to_ts: %w", err)
		}
	}
	return fromTS, toTS, nil
}

// SpansList implements GET /spans-list?<attrs>: JSON list of spans. 501
// when --store-traces wasn't set.
func (h *Handler) SpansList(w http.ResponseWriter, r *http.Request) {
	if !h.Opts.StoreTraces {
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	query := flattenQuery(r.URL.Query())
	spans := h.Traces.ListSpans(query)
	if spans == nil {
		spans = []span.Span{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(spans)
}

// TracesList implements GET /traces-list?<attrs>: JSON list of traces,
// each a list of its spans. 501 when --store-traces wasn't set.
func (h *Handler) TracesList(w http.ResponseWriter, r *http.Request) {
	if !h.Opts.StoreTraces {
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	query := flattenQuery(r.URL.Query())
	logf := func(format string, args ...any) { h.Logger.Printf(format, args...) }
	traces := h.Traces.ListTraces(query, logf)
	if traces == nil {
		traces = [][]span.Span{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(traces)
}

// flattenQuery collapses a url.Values (possibly repeated keys) into a
// single string per key, keeping the first occurrence. An empty value
// means "presence only", matching both the metric and span/trace
// predicates' conventions.
func flattenQuery(values map[string][]string) map[string]string {
	out := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			out[key] = vals[0]
		} else {
			out[key] = ""
		}
	}
	return out
}
