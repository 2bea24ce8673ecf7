package decode

import (
	logspb "go.opentelemetry.io/proto/otlp/logs/v1"

	"github.com/sumologic/receiver-mock/internal/telemetry/metadata"
)

// DecodeOTLPLogs walks resourceLogs -> scopeLogs -> logRecords and groups
// rendered log lines by the resource they came from. A ResourceLogs with no
// resource attached still produces a batch (with empty metadata); only a
// genuinely malformed entry would be skipped with a warning, none exist in
// LogsData's schema today so warnings is reserved for future decode errors.
//
// Grounded on _examples/fiddeb-otlp_cardinality_checker/internal/analyzer/logs.go's
// ResourceLogs/ScopeLogs/LogRecord walk.
func DecodeOTLPLogs(data *logspb.LogsData) ([]LogBatch, []Warning) {
	var batches []LogBatch
	var warnings []Warning
	if data == nil {
		return batches, warnings
	}

	for _, rl := range data.ResourceLogs {
		md := metadata.FromOTLPAttributes(rl.GetResource().GetAttributes())

		var lines []string
		for _, sl := range rl.ScopeLogs {
			for _, record := range sl.LogRecords {
				lines = append(lines, metadata.AnyValueToString(record.Body))
			}
		}

		batches = append(batches, LogBatch{
			Metadata: md,
			Lines:    lines,
		})
	}

	return batches, warnings
}
