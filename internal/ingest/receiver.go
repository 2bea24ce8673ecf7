package ingest

import (
	"net/http"
	"net/netip"

	"github.com/sumologic/receiver-mock/internal/decode"
	"github.com/sumologic/receiver-mock/internal/telemetry/metadata"
)

// Receive implements POST / and any unknown path: the generic
// content-type-dispatched receiver from spec.md §4.K.
func (h *Handler) Receive(w http.ResponseWriter, r *http.Request) {
	body, addr, ok := h.preamble(w, r)
	if !ok {
		return
	}

	contentType := r.Header.Get("Content-Type")
	lines := splitNonEmptyLines(body)

	switch contentType {
	case "application/vnd.sumologic.carbon2":
		result := decode.DecodeCarbon2(lines, addr)
		if h.Opts.PrintMetrics {
			for _, line := range lines {
				h.Logger.Printf("metric => %s", line)
			}
		}
		if h.tryDroppingData(w, contentType) {
			return
		}
		h.Metrics.AddResult(result, h.Opts.StoreMetrics)

	case "application/vnd.sumologic.graphite":
		logf := func(format string, args ...any) { h.Logger.Printf(format, args...) }
		result := decode.DecodeGraphite(lines, addr, logf)
		if h.Opts.PrintMetrics {
			for _, line := range lines {
				h.Logger.Printf("metric => %s", line)
			}
		}
		if h.tryDroppingData(w, contentType) {
			return
		}
		h.Metrics.AddResult(result, h.Opts.StoreMetrics)

	case "application/vnd.sumologic.prometheus":
		if h.Opts.PrintMetrics {
			for _, line := range lines {
				h.Logger.Printf("metric => %s", line)
			}
		}
		result, err := decode.DecodePrometheus(lines, addr, h.Opts.StoreMetrics)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Unable to parse body"))
			return
		}
		if h.tryDroppingData(w, contentType) {
			return
		}
		h.Metrics.AddResult(result, h.Opts.StoreMetrics)

	case "application/x-www-form-urlencoded":
		md := commonMetadata(r)
		if fieldsHeader := r.Header.Get("X-Sumo-Fields"); fieldsHeader != "" {
			fields, err := metadata.ParseSumoFields(fieldsHeader)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte("Unable to parse X-Sumo-Fields header value"))
				return
			}
			md.Merge(fields)
		}
		if h.tryDroppingData(w, contentType) {
			return
		}
		h.addLogLines(lines, md, addr)

	default:
		writeInvalidContentType(w, contentType)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// addLogLines stores every line (when store-logs is set) and always
// updates the aggregate log stats, mirroring
// original_source/.../router/mod.rs::AppState::add_log_lines.
func (h *Handler) addLogLines(lines []string, md metadata.Metadata, addr netip.Addr) {
	var messageCount, byteCount uint64
	for _, line := range lines {
		messageCount++
		byteCount += uint64(len(line))
		if h.Opts.StoreLogs {
			h.LogMessages.Add(line, md)
		}
		if h.Opts.PrintLogs {
			h.Logger.Printf("log => %s", line)
		}
	}
	h.LogStats.Update(messageCount, byteCount, addr)
}
