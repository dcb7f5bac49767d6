package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-formbench/pkg/metrics"
	"github.com/goliatone/go-formbench/pkg/sysinfo"
)

var reportClock = func() time.Time {
	return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
}

func testGenerator() *Generator {
	return NewGenerator(
		WithClock(reportClock),
		WithRunID("test-run"),
		WithEnvironment(sysinfo.SystemInfo{OS: "linux", Architecture: "amd64"}),
	)
}

func renderSample(variant string, ms float64) metrics.Sample {
	return metrics.Sample{
		TestName: "form-render",
		Variant:  variant,
		Metrics:  map[string]float64{metrics.MetricRenderTime: ms},
	}
}

func findCategory(t *testing.T, r *Report, name string) CategorySummary {
	t.Helper()
	for _, category := range r.Categories {
		if category.Name == name {
			return category
		}
	}
	t.Fatalf("report has no %q category", name)
	return CategorySummary{}
}

func TestAverageExcludesMissingValuesAndZeroesEmptySets(t *testing.T) {
	samples := []metrics.Sample{
		renderSample("vanilla", 100),
		renderSample("vanilla", 200),
		renderSample("vanilla", 300),
		// A runtime sample without a render metric must not drag the
		// runtime average to zero-by-division.
		{TestName: "typing", Variant: "runtime", Metrics: map[string]float64{metrics.MetricInteractionTime: 15}},
	}

	rendering := findCategory(t, testGenerator().Generate(samples), CategoryRendering)

	if got := rendering.Averages["vanilla"]; got != 200 {
		t.Fatalf("vanilla rendering average = %v, want 200", got)
	}
	if got := rendering.Averages["runtime"]; got != 0 {
		t.Fatalf("runtime rendering average = %v, want 0", got)
	}
	if rendering.Winner != WinnerInsufficient {
		t.Fatalf("one-sided zero should report %q, got %q", WinnerInsufficient, rendering.Winner)
	}
}

func TestCategoryWinnerPicksLowerMean(t *testing.T) {
	samples := []metrics.Sample{
		renderSample("vanilla", 50),
		renderSample("runtime", 80),
	}

	rendering := findCategory(t, testGenerator().Generate(samples), CategoryRendering)
	if rendering.Winner != "vanilla" {
		t.Fatalf("rendering winner = %q, want vanilla", rendering.Winner)
	}
}

func TestCategoryWinnerTies(t *testing.T) {
	samples := []metrics.Sample{
		renderSample("vanilla", 70),
		renderSample("runtime", 70),
	}
	report := testGenerator().Generate(samples)

	if got := findCategory(t, report, CategoryRendering).Winner; got != WinnerTie {
		t.Fatalf("equal means should tie, got %q", got)
	}
	// Categories with no samples at all are both-zero ties, not insufficient.
	if got := findCategory(t, report, CategoryMemory).Winner; got != WinnerTie {
		t.Fatalf("empty category should tie, got %q", got)
	}
}

func TestOverallWinnerByPointTally(t *testing.T) {
	samples := []metrics.Sample{
		renderSample("vanilla", 50),
		renderSample("runtime", 80),
		{Variant: "vanilla", Metrics: map[string]float64{metrics.MetricValidationTime: 30}},
		{Variant: "runtime", Metrics: map[string]float64{metrics.MetricValidationTime: 40}},
		{Variant: "vanilla", Metrics: map[string]float64{metrics.MetricInteractionTime: 20}},
		{Variant: "runtime", Metrics: map[string]float64{metrics.MetricInteractionTime: 10}},
	}

	report := testGenerator().Generate(samples)
	if report.OverallWinner != "vanilla" {
		t.Fatalf("overall winner = %q, want vanilla (2 categories to 1)", report.OverallWinner)
	}
}

func TestOverallWinnerTieWhenPointsEqual(t *testing.T) {
	samples := []metrics.Sample{
		renderSample("vanilla", 50),
		renderSample("runtime", 80),
		{Variant: "vanilla", Metrics: map[string]float64{metrics.MetricValidationTime: 40}},
		{Variant: "runtime", Metrics: map[string]float64{metrics.MetricValidationTime: 30}},
	}

	report := testGenerator().Generate(samples)
	if report.OverallWinner != WinnerTie {
		t.Fatalf("overall winner = %q, want %q", report.OverallWinner, WinnerTie)
	}
}

func TestInsufficientCategoriesScoreNoPoints(t *testing.T) {
	samples := []metrics.Sample{
		// Rendering is one-sided: only runtime has data. Validation is a
		// real win for vanilla.
		renderSample("runtime", 10),
		{Variant: "vanilla", Metrics: map[string]float64{metrics.MetricValidationTime: 30}},
		{Variant: "runtime", Metrics: map[string]float64{metrics.MetricValidationTime: 40}},
	}

	report := testGenerator().Generate(samples)
	if report.OverallWinner != "vanilla" {
		t.Fatalf("overall winner = %q, want vanilla (only scored category)", report.OverallWinner)
	}
}

func TestBucketingPutsLargeConfigsUnderScalability(t *testing.T) {
	samples := []metrics.Sample{
		{TestName: "form-render", Variant: "vanilla", TotalFields: 12, Metrics: map[string]float64{metrics.MetricRenderTime: 40}},
		{TestName: "form-render", Variant: "vanilla", TotalFields: 50, Metrics: map[string]float64{metrics.MetricRenderTime: 400}},
		{TestName: "blur-validation", Variant: "runtime", TotalFields: 5, Metrics: map[string]float64{metrics.MetricValidationTime: 25}},
		{TestName: "typing", Variant: "runtime", TotalFields: 5, Metrics: map[string]float64{metrics.MetricInteractionTime: 12}},
	}

	report := testGenerator().Generate(samples)

	if got := len(report.Buckets[CategoryScalability]); got != 1 {
		t.Fatalf("expected 1 scalability sample, got %d", got)
	}
	if got := len(report.Buckets[CategoryRendering]); got != 1 {
		t.Fatalf("expected 1 rendering sample, got %d", got)
	}
	if got := len(report.Buckets[CategoryValidation]); got != 1 {
		t.Fatalf("expected 1 validation sample, got %d", got)
	}
	if got := len(report.Buckets[CategoryInteraction]); got != 1 {
		t.Fatalf("expected 1 interaction sample, got %d", got)
	}
}

func TestRecommendationsCoverEveryCategoryAndOverall(t *testing.T) {
	report := testGenerator().Generate([]metrics.Sample{
		renderSample("vanilla", 50),
		renderSample("runtime", 80),
	})

	if len(report.Recommendations) != len(report.Categories)+1 {
		t.Fatalf("expected %d recommendations, got %d: %v",
			len(report.Categories)+1, len(report.Recommendations), report.Recommendations)
	}
	joined := strings.Join(report.Recommendations, "\n")
	if !strings.Contains(joined, "vanilla variant renders forms faster") {
		t.Fatalf("missing rendering recommendation:\n%s", joined)
	}
}

func TestEmitterWritesTimestampedJSONAndHTML(t *testing.T) {
	dir := t.TempDir()
	emitter, err := NewEmitter(dir)
	if err != nil {
		t.Fatalf("create emitter: %v", err)
	}

	report := testGenerator().Generate([]metrics.Sample{
		renderSample("vanilla", 50),
		renderSample("runtime", 80),
	})

	jsonPath, err := emitter.WriteJSON(report)
	if err != nil {
		t.Fatalf("write json: %v", err)
	}
	htmlPath, err := emitter.WriteHTML(report)
	if err != nil {
		t.Fatalf("write html: %v", err)
	}

	wantBase := "performance-report-2026-03-10T12-00-00-000Z"
	if got := filepath.Base(jsonPath); got != wantBase+".json" {
		t.Fatalf("json report name = %q, want %q", got, wantBase+".json")
	}
	if got := filepath.Base(htmlPath); got != wantBase+".html" {
		t.Fatalf("html report name = %q, want %q", got, wantBase+".html")
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("read json report: %v", err)
	}
	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json report does not decode: %v", err)
	}
	if decoded.RunID != "test-run" {
		t.Fatalf("round-tripped run id = %q", decoded.RunID)
	}

	page, err := os.ReadFile(htmlPath)
	if err != nil {
		t.Fatalf("read html report: %v", err)
	}
	for _, want := range []string{"Overall Winner", "vanilla", "runtime", "Recommendations"} {
		if !strings.Contains(string(page), want) {
			t.Fatalf("html report missing %q", want)
		}
	}
}

func TestEmitterSanitizesSampleDetails(t *testing.T) {
	emitter, err := NewEmitter(t.TempDir())
	if err != nil {
		t.Fatalf("create emitter: %v", err)
	}

	report := testGenerator().Generate([]metrics.Sample{
		{
			TestName: "form-render",
			Variant:  "vanilla",
			Metrics:  map[string]float64{metrics.MetricRenderTime: 10},
			Details:  `12 fields <script>alert(1)</script>`,
		},
	})

	path, err := emitter.WriteHTML(report)
	if err != nil {
		t.Fatalf("write html: %v", err)
	}
	page, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read html report: %v", err)
	}
	if strings.Contains(string(page), "<script>alert(1)</script>") {
		t.Fatalf("sample details reached the report unsanitized")
	}
	if !strings.Contains(string(page), "12 fields") {
		t.Fatalf("sanitizer stripped the legitimate detail text")
	}
}
