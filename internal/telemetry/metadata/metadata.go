// Package metadata holds the normalized key/value metadata attached to
// ingested logs, metrics and spans, along with the parsers that build it
// from Sumo-style HTTP headers and OTLP resource attributes.
package metadata

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
)

// Metadata is a normalized key/value mapping. Values are kept verbatim.
type Metadata map[string]string

// Clone returns a shallow copy.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge copies every entry of other into m, overwriting existing keys.
func (m Metadata) Merge(other Metadata) {
	for k, v := range other {
		m[k] = v
	}
}

// ParseSumoFields parses the value of an X-Sumo-Fields header, a
// comma-separated list of "key=value" pairs, into a Metadata map. An empty
// (or whitespace-only) value yields an empty map. Any entry without an "="
// is an error.
func ParseSumoFields(headerValue string) (Metadata, error) {
	result := make(Metadata)
	trimmed := strings.TrimSpace(headerValue)
	if trimmed == "" {
		return result, nil
	}
	for _, entry := range strings.Split(trimmed, ",") {
		entry = strings.TrimSpace(entry)
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("failed to parse X-Sumo-Fields, no `=` in %q", entry)
		}
		result[name] = value
	}
	return result, nil
}

// FromSumoHeaders maps the well-known X-Sumo-* headers (excluding
// X-Sumo-Fields, handled separately via ParseSumoFields) to their
// canonical metadata keys.
func FromSumoHeaders(h http.Header) Metadata {
	result := make(Metadata)
	if v := h.Get("X-Sumo-Name"); v != "" {
		result["_sourceName"] = v
	}
	if v := h.Get("X-Sumo-Host"); v != "" {
		result["_sourceHost"] = v
	}
	if v := h.Get("X-Sumo-Category"); v != "" {
		result["_sourceCategory"] = v
	}
	return result
}

// FromOTLPAttributes flattens a list of OTLP KeyValue attributes into a
// Metadata map, rendering each AnyValue via AnyValueToString.
func FromOTLPAttributes(attrs []*commonpb.KeyValue) Metadata {
	result := make(Metadata, len(attrs))
	for _, attr := range attrs {
		result[attr.GetKey()] = AnyValueToString(attr.GetValue())
	}
	return result
}

// AnyValueToString renders an OTLP AnyValue as a string. Strings are kept
// verbatim; bool/int/double render via their natural text form; every other
// kind (bytes, array, kvlist, or nil) renders as the empty string.
func AnyValueToString(v *commonpb.AnyValue) string {
	if v == nil {
		return ""
	}
	switch val := v.Value.(type) {
	case *commonpb.AnyValue_StringValue:
		return val.StringValue
	case *commonpb.AnyValue_BoolValue:
		return strconv.FormatBool(val.BoolValue)
	case *commonpb.AnyValue_IntValue:
		return strconv.FormatInt(val.IntValue, 10)
	case *commonpb.AnyValue_DoubleValue:
		return strconv.FormatFloat(val.DoubleValue, 'g', -1, 64)
	default:
		return ""
	}
}

// Union returns a new Metadata containing every entry of base overridden
// by every entry of overlay (overlay wins on key collision). Used to merge
// OTLP resource attributes with data-point-level attributes.
func Union(base, overlay Metadata) Metadata {
	result := base.Clone()
	result.Merge(overlay)
	return result
}
