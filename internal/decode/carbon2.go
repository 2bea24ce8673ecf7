package decode

import (
	"net/netip"
	"strings"
)

// DecodeCarbon2 decodes lines in Carbon2.0 format: each line is
// "intrinsic_tags  meta_tags  value timestamp", where the intrinsic and
// meta sections are separated by two spaces. The metric name is the value
// of the "metric" key within the intrinsic section.
//
// Reference: https://help.sumologic.com/Metrics/Introduction-to-Metrics/Metric-Formats#carbon-2-0
// Grounded on original_source/.../metrics/mod.rs::handle_carbon2.
func DecodeCarbon2(lines []string, addr netip.Addr) Result {
	result := NewResult()

	for _, line := range lines {
		intrinsics, _, _ := strings.Cut(line, "  ")
		for _, token := range strings.Split(intrinsics, " ") {
			key, value, ok := strings.Cut(token, "=")
			if !ok {
				continue
			}
			if key == "metric" {
				result.handleMetric(value)
				break
			}
		}
		result.handleIP(addr)
	}

	return result
}
