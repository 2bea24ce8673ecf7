package decode

import (
	"fmt"
	"net/netip"
	"strings"
)

// DecodeGraphite decodes lines in Graphite format: "dotted.name value
// timestamp". The dotted name must have exactly three components; the
// emitted metric name is "<second>_<third>". Lines with the wrong arity
// are logged (via logf, if non-nil) and skipped.
//
// Reference: https://help.sumologic.com/Metrics/Introduction-to-Metrics/Metric-Formats#graphite
// Grounded on original_source/.../metrics/mod.rs::handle_graphite.
func DecodeGraphite(lines []string, addr netip.Addr, logf func(string, ...any)) Result {
	result := NewResult()
	if logf == nil {
		logf = func(string, ...any) {}
	}

	for _, line := range lines {
		fields := strings.Split(line, " ")
		if len(fields) != 3 {
			logf("incorrect graphite metric line: %s", line)
			continue
		}

		parts := strings.Split(fields[0], ".")
		if len(parts) != 3 {
			logf("incorrect graphite metric name: %s", fields[0])
			continue
		}

		result.handleMetric(fmt.Sprintf("%s_%s", parts[1], parts[2]))
		result.handleIP(addr)
	}

	return result
}
