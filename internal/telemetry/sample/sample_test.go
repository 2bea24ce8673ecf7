package sample

import "testing"

func TestSeriesKeyOrderIndependent(t *testing.T) {
	a := SeriesKey("cpu", map[string]string{"host": "a", "core": "0"})
	b := SeriesKey("cpu", map[string]string{"core": "0", "host": "a"})
	if a != b {
		t.Errorf("expected order-independent keys to match: %q != %q", a, b)
	}
}

func TestSeriesKeyDistinguishesLabels(t *testing.T) {
	a := SeriesKey("cpu", map[string]string{"host": "a"})
	b := SeriesKey("cpu", map[string]string{"host": "b"})
	if a == b {
		t.Errorf("expected different label values to produce different keys")
	}
}

func TestSeriesKeyIgnoresValueAndTimestamp(t *testing.T) {
	s1 := Sample{Metric: "m", Labels: map[string]string{"a": "1"}, Value: 1, TimestampMillis: 10}
	s2 := Sample{Metric: "m", Labels: map[string]string{"a": "1"}, Value: 2, TimestampMillis: 20}
	if s1.Key() != s2.Key() {
		t.Errorf("value/timestamp must not affect series identity")
	}
}
