package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-formbench/internal/report"
	"github.com/goliatone/go-formbench/pkg/metrics"
	"github.com/goliatone/go-formbench/pkg/sysinfo"
)

func sampleReport() *report.Report {
	generator := report.NewGenerator(
		report.WithClock(func() time.Time { return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC) }),
		report.WithRunID("test-run"),
		report.WithEnvironment(sysinfo.SystemInfo{OS: "linux"}),
	)
	return generator.Generate([]metrics.Sample{
		{Variant: "vanilla", Metrics: map[string]float64{metrics.MetricRenderTime: 50}},
		{Variant: "runtime", Metrics: map[string]float64{metrics.MetricRenderTime: 80}},
	})
}

func TestNewFormatterSelectsByName(t *testing.T) {
	if _, err := NewFormatter("table"); err != nil {
		t.Fatalf("table formatter: %v", err)
	}
	if _, err := NewFormatter("json"); err != nil {
		t.Fatalf("json formatter: %v", err)
	}
	if _, err := NewFormatter("yaml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestTableFormatterShowsCategoriesAndWinner(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, sampleReport()); err != nil {
		t.Fatalf("format: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"rendering", "vanilla", "runtime", "Overall winner"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestJSONFormatterEmitsDecodableReport(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(&buf, sampleReport()); err != nil {
		t.Fatalf("format: %v", err)
	}

	var decoded report.Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json output does not decode: %v", err)
	}
	if decoded.RunID != "test-run" {
		t.Fatalf("run id = %q, want test-run", decoded.RunID)
	}
}
