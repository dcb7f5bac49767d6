// Package metrics holds the benchmark sample model and the flat-file batch
// store the collector writes and the report generator reads.
package metrics

import (
	"strings"
	"time"

	"github.com/goliatone/go-formbench/pkg/model"
)

// Metric keys recorded by the collector scenarios. A sample carries only the
// keys its scenario measured; consumers must treat the map as sparse.
const (
	MetricLoadTime         = "loadTimeMs"
	MetricRenderTime       = "renderTimeMs"
	MetricInteractionTime  = "interactionTimeMs"
	MetricValidationTime   = "validationTimeMs"
	MetricSubmissionTime   = "submissionTimeMs"
	MetricHeapUsed         = "heapUsedBytes"
	MetricDOMNodes         = "domNodes"
	MetricFirstPaint       = "firstPaintMs"
	MetricFirstContentful  = "firstContentfulPaintMs"
	MetricDOMContentLoaded = "domContentLoadedMs"
)

// ValidationTimeoutSentinel is recorded as the validation time when the
// expected error indicator never appeared within the bounded wait.
const ValidationTimeoutSentinel = 2000

// Sample is one measurement taken against one variant under one field
// configuration.
type Sample struct {
	Timestamp   time.Time             `json:"timestamp"`
	TestName    string                `json:"test_name"`
	Variant     string                `json:"variant"`
	Config      model.FieldTypeConfig `json:"config"`
	TotalFields int                   `json:"total_fields"`
	Metrics     map[string]float64    `json:"metrics"`
	Details     string                `json:"details,omitempty"`
}

// Metric reads a metric value, reporting whether the sample recorded it.
func (s Sample) Metric(key string) (float64, bool) {
	value, ok := s.Metrics[key]
	return value, ok
}

// Batch is the unit of persistence: all samples one run recorded for one
// category, written as a single JSON file at run end.
type Batch struct {
	Category   string    `json:"category"`
	RunID      string    `json:"run_id,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
	Samples    []Sample  `json:"samples"`
}

// FileTimestamp renders a moment as an ISO 8601 string safe for file names:
// colons and dots are replaced with dashes.
func FileTimestamp(t time.Time) string {
	iso := t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	return strings.NewReplacer(":", "-", ".", "-").Replace(iso)
}
