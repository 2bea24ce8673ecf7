// Package ingest implements the receiver's write-side HTTP contract: the
// generic POST / dispatcher and the OTLP-protobuf routes, sharing one
// preamble (address extraction, header echo, delay, gzip, fault
// injection) across all of them per spec.md §4.K.
package ingest

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"math/rand/v2"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"

	"github.com/sumologic/receiver-mock/internal/config"
	"github.com/sumologic/receiver-mock/internal/logtemplate"
	"github.com/sumologic/receiver-mock/internal/store/logstore"
	"github.com/sumologic/receiver-mock/internal/store/metricstore"
	"github.com/sumologic/receiver-mock/internal/store/tracestore"
	"github.com/sumologic/receiver-mock/internal/telemetry/metadata"
)

const dummyErrorID = "E40YU-CU3Q7-RQDM7"

// MaxBodyBytes is the default per-request payload cap (spec.md §5).
const MaxBodyBytes = 200 << 20

var localhostAddr = netip.MustParseAddr("127.0.0.1")

// Handler wires every repository, the regex cache, the configured options
// and a logger into the receiver's write-side HTTP routes. It is
// registered onto a chi router by cmd/server, one method per route.
type Handler struct {
	LogMessages *logstore.MessageRepository
	LogStats    *logstore.StatsRepository
	Metrics     *metricstore.Repository
	Traces      *tracestore.Repository
	Redactor    *logtemplate.Redactor

	Opts   config.Options
	Logger *log.Logger
}

type receiverErrorField struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type receiverError struct {
	ID     string                `json:"id"`
	Errors []receiverErrorField `json:"errors"`
}

func writeInvalidContentType(w http.ResponseWriter, contentType string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(receiverError{
		ID: dummyErrorID,
		Errors: []receiverErrorField{{
			Code:    "header:invalid",
			Message: "Invalid Content-Type header: " + contentType,
		}},
	})
}

// Preamble is registered as router-wide middleware (ahead of every route,
// not just the ingest ones) the way original_source's main.rs installs its
// header-echo/delay logic via a single wrap_fn wrapping the whole actix
// App rather than per-handler.
func (h *Handler) Preamble(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Opts.PrintHeaders {
			h.printRequestHeaders(r)
		}
		if h.Opts.DelayTime > 0 {
			time.Sleep(time.Duration(h.Opts.DelayTime) * time.Millisecond)
		}
		next.ServeHTTP(w, r)
	})
}

// preamble implements the steps shared by the write-side content-type
// routes: remote address extraction, body read with the payload cap, gzip
// decompression and UTF-8 validation. It returns the decoded body as a
// string and the caller's remote address, or false if it has already
// written a terminal response (bad body). Fault injection happens later,
// once a route has finished parsing the body — see tryDroppingData.
func (h *Handler) preamble(w http.ResponseWriter, r *http.Request) (body string, addr netip.Addr, ok bool) {
	addr = remoteAddr(r)

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		return "", addr, false
	}

	contentType := r.Header.Get("Content-Type")

	if strings.EqualFold(r.Header.Get("Content-Encoding"), "gzip") {
		raw, err = decompressGzip(raw)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Unable to decompress gzip body"))
			return "", addr, false
		}
	}

	if contentType != "application/x-protobuf" && !utf8.Valid(raw) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Body is not valid UTF-8"))
		return "", addr, false
	}

	return string(raw), addr, true
}

// tryDroppingData rolls the fault-injection dice and, on a hit, writes the
// 500 response for contentType. Callers invoke this after the body has
// been decoded into its normalized records but before those records are
// merged into a repository, so a drop never leaves partial state behind
// (spec.md §4.K step 5: dropped data is not stored).
func (h *Handler) tryDroppingData(w http.ResponseWriter, contentType string) bool {
	if rand.IntN(100) >= h.Opts.DropRate {
		return false
	}
	msg := "Dropping data for " + contentType
	h.Logger.Print(msg)
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(msg))
	return true
}

func (h *Handler) printRequestHeaders(r *http.Request) {
	h.Logger.Printf("--> %s %s %s", r.Method, r.URL.Path, r.Proto)
	for key, values := range r.Header {
		for _, v := range values {
			h.Logger.Printf("--> %s: %s", key, v)
		}
	}
}

func decompressGzip(data []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

// remoteAddr extracts the caller's IP from the request, defaulting to
// 127.0.0.1 on any failure per spec.md §4.K step 1 — ingestion never fails
// just because the peer address couldn't be determined.
func remoteAddr(r *http.Request) netip.Addr {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return localhostAddr
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return localhostAddr
	}
	return addr
}

func splitNonEmptyLines(body string) []string {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return nil
	}
	lines := strings.Split(trimmed, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// commonMetadata builds the shared X-Sumo-* metadata (excluding
// X-Sumo-Fields, handled by callers that need it) attached to logs and
// metrics alike.
func commonMetadata(r *http.Request) metadata.Metadata {
	return metadata.FromSumoHeaders(r.Header)
}
