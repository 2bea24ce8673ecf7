package decode

import "testing"

func TestDecodePrometheusCountsSkipComments(t *testing.T) {
	lines := []string{
		"# HELP http_requests_total total requests",
		"# TYPE http_requests_total counter",
		`http_requests_total{method="get"} 10`,
		`http_requests_total{method="post"} 3`,
		`cpu_seconds 42`,
	}

	result, err := DecodePrometheus(lines, testAddr, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MetricCount != 3 {
		t.Fatalf("expected 3 metrics counted, got %d", result.MetricCount)
	}
	if result.PerNameCounts["http_requests_total"] != 2 {
		t.Errorf("expected http_requests_total counted twice, got %d", result.PerNameCounts["http_requests_total"])
	}
	if len(result.SamplesToStore) != 0 {
		t.Errorf("expected no samples when storeSamples is false, got %d", len(result.SamplesToStore))
	}
}

func TestDecodePrometheusCounterSamples(t *testing.T) {
	lines := []string{
		"# TYPE http_requests_total counter",
		`http_requests_total{method="get"} 10`,
	}

	result, err := DecodePrometheus(lines, testAddr, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.SamplesToStore) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(result.SamplesToStore))
	}
	s := result.SamplesToStore[0]
	if s.Metric != "http_requests_total" || s.Value != 10 {
		t.Errorf("unexpected sample %+v", s)
	}
	if s.Labels["method"] != "get" {
		t.Errorf("expected label method=get, got %v", s.Labels)
	}
}

func TestDecodePrometheusHistogramFlattensToZero(t *testing.T) {
	lines := []string{
		"# TYPE request_latency_seconds histogram",
		`request_latency_seconds_bucket{le="0.1"} 5`,
		`request_latency_seconds_bucket{le="+Inf"} 9`,
		`request_latency_seconds_sum 1.2`,
		`request_latency_seconds_count 9`,
	}

	result, err := DecodePrometheus(lines, testAddr, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MetricCount != 4 {
		t.Fatalf("expected every exposition line counted, got %d", result.MetricCount)
	}
	if len(result.SamplesToStore) != 1 {
		t.Fatalf("expected histogram flattened to a single sample, got %d", len(result.SamplesToStore))
	}
	if result.SamplesToStore[0].Value != 0.0 {
		t.Errorf("expected flattened histogram value 0.0, got %v", result.SamplesToStore[0].Value)
	}
}
