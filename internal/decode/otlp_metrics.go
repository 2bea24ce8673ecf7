package decode

import (
	metricspb "go.opentelemetry.io/proto/otlp/metrics/v1"

	"github.com/sumologic/receiver-mock/internal/telemetry/metadata"
	"github.com/sumologic/receiver-mock/internal/telemetry/sample"
)

// Warning is a non-fatal decode diagnostic: the payload could still be
// turned into zero or more records, but something about it was unusual
// enough to surface to an operator with --print-* logging enabled.
type Warning string

// DecodeOTLPMetrics walks resourceMetrics -> scopeMetrics -> metrics and
// produces one Sample per Gauge/Sum data point. Histogram, Summary and
// ExponentialHistogram points are counted into MetricCount (every data
// point of every metric increments its metric name's count) but are not
// turned into samples, matching spec.md's "Gauge and Sum only" rule.
//
// Grounded on _examples/fiddeb-otlp_cardinality_checker/internal/analyzer/metrics.go's
// ResourceMetrics/ScopeMetrics/Metric walk and Metric.Data type switch.
func DecodeOTLPMetrics(data *metricspb.MetricsData) (Result, []Warning) {
	result := NewResult()
	var warnings []Warning
	if data == nil {
		return result, warnings
	}

	for _, rm := range data.ResourceMetrics {
		resourceAttrs := metadata.FromOTLPAttributes(rm.GetResource().GetAttributes())

		for _, sm := range rm.ScopeMetrics {
			for _, metric := range sm.Metrics {
				switch m := metric.Data.(type) {
				case *metricspb.Metric_Gauge:
					decodeNumberDataPoints(&result, metric.Name, resourceAttrs, m.Gauge.DataPoints)
				case *metricspb.Metric_Sum:
					decodeNumberDataPoints(&result, metric.Name, resourceAttrs, m.Sum.DataPoints)
				case *metricspb.Metric_Histogram:
					for range m.Histogram.DataPoints {
						result.handleMetric(metric.Name)
					}
				case *metricspb.Metric_ExponentialHistogram:
					for range m.ExponentialHistogram.DataPoints {
						result.handleMetric(metric.Name)
					}
				case *metricspb.Metric_Summary:
					for range m.Summary.DataPoints {
						result.handleMetric(metric.Name)
					}
				default:
					warnings = append(warnings, Warning("metric "+metric.Name+" has no data"))
				}
			}
		}
	}

	return result, warnings
}

func decodeNumberDataPoints(result *Result, metricName string, resourceAttrs metadata.Metadata, points []*metricspb.NumberDataPoint) {
	for _, dp := range points {
		result.handleMetric(metricName)

		labels := metadata.Union(resourceAttrs, metadata.FromOTLPAttributes(dp.Attributes))

		result.SamplesToStore = append(result.SamplesToStore, sample.Sample{
			Metric:          metricName,
			Value:           numberDataPointValue(dp),
			Labels:          labels,
			TimestampMillis: dp.TimeUnixNano / 1_000_000,
		})
	}
}

func numberDataPointValue(dp *metricspb.NumberDataPoint) float64 {
	switch v := dp.Value.(type) {
	case *metricspb.NumberDataPoint_AsDouble:
		return v.AsDouble
	case *metricspb.NumberDataPoint_AsInt:
		return float64(v.AsInt)
	default:
		return 0
	}
}
