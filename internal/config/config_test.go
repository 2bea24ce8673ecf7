package config

import "testing"

func TestParseFlagsDefaults(t *testing.T) {
	opts, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if opts.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", opts.Port)
	}
	if opts.Hostname != "localhost" {
		t.Errorf("expected default hostname localhost, got %q", opts.Hostname)
	}
	if opts.PrintLogs || opts.PrintMetrics || opts.PrintSpans || opts.PrintHeaders {
		t.Errorf("expected all print flags to default false")
	}
	if opts.StoreLogs || opts.StoreMetrics || opts.StoreTraces {
		t.Errorf("expected all store flags to default false")
	}
	if opts.DropRate != 0 {
		t.Errorf("expected default drop-rate 0, got %d", opts.DropRate)
	}
	if opts.DelayTime != 0 {
		t.Errorf("expected default delay-time 0, got %d", opts.DelayTime)
	}
	if opts.RedactLogs {
		t.Errorf("expected redact-logs to default false")
	}
	if opts.RedactPatterns != "" {
		t.Errorf("expected redact-patterns to default empty, got %q", opts.RedactPatterns)
	}
}

func TestParseFlagsOverrides(t *testing.T) {
	opts, err := ParseFlags([]string{
		"--port", "9000",
		"--hostname", "0.0.0.0",
		"--print-logs",
		"--store-metrics",
		"--drop-rate", "25",
		"--delay-time", "500",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if opts.Port != 9000 {
		t.Errorf("expected port 9000, got %d", opts.Port)
	}
	if opts.Hostname != "0.0.0.0" {
		t.Errorf("expected hostname 0.0.0.0, got %q", opts.Hostname)
	}
	if !opts.PrintLogs {
		t.Errorf("expected print-logs true")
	}
	if !opts.StoreMetrics {
		t.Errorf("expected store-metrics true")
	}
	if opts.DropRate != 25 {
		t.Errorf("expected drop-rate 25, got %d", opts.DropRate)
	}
	if opts.DelayTime != 500 {
		t.Errorf("expected delay-time 500, got %d", opts.DelayTime)
	}
}

func TestParseFlagsRejectsOutOfRangeDropRate(t *testing.T) {
	if _, err := ParseFlags([]string{"--drop-rate", "101"}); err == nil {
		t.Errorf("expected an error for drop-rate > 100")
	}
	if _, err := ParseFlags([]string{"--drop-rate", "-1"}); err == nil {
		t.Errorf("expected an error for drop-rate < 0")
	}
}

func TestParseFlagsRejectsNegativeDelay(t *testing.T) {
	if _, err := ParseFlags([]string{"--delay-time", "-5"}); err == nil {
		t.Errorf("expected an error for negative delay-time")
	}
}

func TestParseFlagsRejectsUnknownFlag(t *testing.T) {
	if _, err := ParseFlags([]string{"--not-a-flag"}); err == nil {
		t.Errorf("expected an error for an unknown flag")
	}
}
