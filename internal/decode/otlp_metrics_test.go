package decode

import (
	"testing"

	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	metricspb "go.opentelemetry.io/proto/otlp/metrics/v1"
	resourcepb "go.opentelemetry.io/proto/otlp/resource/v1"
)

func TestDecodeOTLPMetricsGaugeAndSum(t *testing.T) {
	data := &metricspb.MetricsData{
		ResourceMetrics: []*metricspb.ResourceMetrics{
			{
				Resource: &resourcepb.Resource{
					Attributes: []*commonpb.KeyValue{stringAttr("region", "us-east")},
				},
				ScopeMetrics: []*metricspb.ScopeMetrics{
					{
						Metrics: []*metricspb.Metric{
							{
								Name: "cpu_usage",
								Data: &metricspb.Metric_Gauge{
									Gauge: &metricspb.Gauge{
										DataPoints: []*metricspb.NumberDataPoint{
											{
												Attributes:    []*commonpb.KeyValue{stringAttr("host", "a")},
												Value:         &metricspb.NumberDataPoint_AsDouble{AsDouble: 12.5},
												TimeUnixNano:  1_000_000_000,
											},
										},
									},
								},
							},
							{
								Name: "requests_total",
								Data: &metricspb.Metric_Sum{
									Sum: &metricspb.Sum{
										DataPoints: []*metricspb.NumberDataPoint{
											{
												Attributes:   []*commonpb.KeyValue{stringAttr("region", "eu-west")},
												Value:        &metricspb.NumberDataPoint_AsInt{AsInt: 7},
												TimeUnixNano: 2_000_000_000,
											},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}

	result, warnings := DecodeOTLPMetrics(data)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if result.MetricCount != 2 {
		t.Fatalf("expected 2 metrics counted, got %d", result.MetricCount)
	}
	if len(result.SamplesToStore) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(result.SamplesToStore))
	}

	gauge := result.SamplesToStore[0]
	if gauge.Metric != "cpu_usage" || gauge.Value != 12.5 {
		t.Errorf("unexpected gauge sample: %+v", gauge)
	}
	if gauge.Labels["region"] != "us-east" || gauge.Labels["host"] != "a" {
		t.Errorf("expected resource+datapoint label union, got %v", gauge.Labels)
	}
	if gauge.TimestampMillis != 1000 {
		t.Errorf("expected timestamp 1000ms, got %d", gauge.TimestampMillis)
	}

	sum := result.SamplesToStore[1]
	if sum.Value != 7 {
		t.Errorf("expected AsInt cast to float64, got %v", sum.Value)
	}
	if sum.Labels["region"] != "eu-west" {
		t.Errorf("expected data-point side to win label collision, got %v", sum.Labels)
	}
}

func TestDecodeOTLPMetricsHistogramCountedNotSampled(t *testing.T) {
	data := &metricspb.MetricsData{
		ResourceMetrics: []*metricspb.ResourceMetrics{
			{
				ScopeMetrics: []*metricspb.ScopeMetrics{
					{
						Metrics: []*metricspb.Metric{
							{
								Name: "latency",
								Data: &metricspb.Metric_Histogram{
									Histogram: &metricspb.Histogram{
										DataPoints: []*metricspb.HistogramDataPoint{{}, {}},
									},
								},
							},
						},
					},
				},
			},
		},
	}

	result, _ := DecodeOTLPMetrics(data)
	if result.MetricCount != 2 {
		t.Fatalf("expected histogram data points counted, got %d", result.MetricCount)
	}
	if len(result.SamplesToStore) != 0 {
		t.Errorf("expected no samples from a histogram metric, got %d", len(result.SamplesToStore))
	}
}

func TestDecodeOTLPMetricsNilData(t *testing.T) {
	result, warnings := DecodeOTLPMetrics(nil)
	if result.MetricCount != 0 || warnings != nil {
		t.Fatalf("expected empty result for nil input, got %+v %v", result, warnings)
	}
}
