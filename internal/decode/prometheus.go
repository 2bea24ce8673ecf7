package decode

import (
	"net/netip"
	"strings"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/sumologic/receiver-mock/internal/clock"
	"github.com/sumologic/receiver-mock/internal/telemetry/sample"
)

// DecodePrometheus decodes lines in Prometheus text exposition format.
// Comment lines ("#...") are skipped for counting purposes. Every other
// line's metric name (the prefix before "{") is counted once. When
// storeSamples is set, the full (non-comment) lines are additionally
// parsed with expfmt's standard Prometheus text parser to produce Sample
// records: counters, gauges and untyped values carry their reported value;
// summaries and histograms are flattened to value 0.0 per series (their
// bucket/quantile breakdown is not retained), mirroring
// original_source/.../metrics/mod.rs::lines_to_samples, which discards the
// same detail via the Rust prometheus_parse crate.
//
// Reference: https://help.sumologic.com/Metrics/Introduction-to-Metrics/Metric-Formats#prometheus
func DecodePrometheus(lines []string, addr netip.Addr, storeSamples bool) (Result, error) {
	result := NewResult()

	var kept []string
	for _, line := range lines {
		if strings.HasPrefix(line, "#") {
			continue
		}

		metricName, _, _ := strings.Cut(line, "{")
		result.handleMetric(metricName)
		result.handleIP(addr)

		if storeSamples {
			kept = append(kept, line)
		}
	}

	if !storeSamples || len(kept) == 0 {
		return result, nil
	}

	samples, err := linesToSamples(kept)
	if err != nil {
		return result, err
	}
	result.SamplesToStore = samples
	return result, nil
}

func linesToSamples(lines []string) ([]sample.Sample, error) {
	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	if err != nil {
		return nil, err
	}

	now := clock.NowMillis()
	var out []sample.Sample
	for name, family := range families {
		for _, m := range family.Metric {
			labels := make(map[string]string, len(m.Label))
			for _, l := range m.Label {
				labels[l.GetName()] = l.GetValue()
			}

			ts := now
			if m.TimestampMs != nil {
				ts = uint64(*m.TimestampMs)
			}

			value := metricValue(family.GetType(), m)
			out = append(out, sample.Sample{
				Metric:          name,
				Value:           value,
				Labels:          labels,
				TimestampMillis: ts,
			})
		}
	}
	return out, nil
}

func metricValue(kind dto.MetricType, m *dto.Metric) float64 {
	switch kind {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	case dto.MetricType_UNTYPED:
		return m.GetUntyped().GetValue()
	default:
		// Summaries and histograms are intentionally not supported beyond
		// being counted: flatten to a zero-value sample per series.
		return 0.0
	}
}
