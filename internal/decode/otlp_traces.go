package decode

import (
	"encoding/hex"

	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"

	"github.com/sumologic/receiver-mock/internal/telemetry/metadata"
	"github.com/sumologic/receiver-mock/internal/telemetry/span"
)

// DecodeOTLPTraces walks resourceSpans -> scopeSpans -> spans, hex-encoding
// the raw id bytes and unioning resource attributes with each span's own
// attributes (span side wins on key collision, mirroring the OTLP metrics
// data-point-wins rule).
//
// Grounded on _examples/fiddeb-otlp_cardinality_checker/internal/analyzer/traces.go's
// ResourceSpans/ScopeSpans/Span walk.
func DecodeOTLPTraces(data *tracepb.TracesData) ([]span.Span, []Warning) {
	var spans []span.Span
	var warnings []Warning
	if data == nil {
		return spans, warnings
	}

	for _, rs := range data.ResourceSpans {
		resourceAttrs := metadata.FromOTLPAttributes(rs.GetResource().GetAttributes())

		for _, ss := range rs.ScopeSpans {
			for _, s := range ss.Spans {
				attrs := metadata.Union(resourceAttrs, metadata.FromOTLPAttributes(s.Attributes))

				spans = append(spans, span.Span{
					Name:         s.Name,
					ID:           hex.EncodeToString(s.SpanId),
					TraceID:      hex.EncodeToString(s.TraceId),
					ParentSpanID: hex.EncodeToString(s.ParentSpanId),
					Attributes:   attrs,
				})
			}
		}
	}

	return spans, warnings
}
