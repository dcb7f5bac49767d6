// Package report aggregates benchmark samples into comparative performance
// reports and emits them as JSON, HTML, and console summaries.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formbench/pkg/metrics"
	"github.com/goliatone/go-formbench/pkg/sysinfo"
)

// Winner labels for category and overall comparisons. A one-sided zero
// average means one variant recorded no samples for the category, so the
// comparison is reported as insufficient instead of crowning the empty side.
const (
	WinnerTie          = "Tie"
	WinnerInsufficient = "Insufficient Data"
)

// Category names in report order.
const (
	CategoryRendering   = "rendering"
	CategoryValidation  = "validation"
	CategoryInteraction = "interaction"
	CategoryMemory      = "memory"
	CategoryScalability = "scalability"
)

// categoryMetrics maps each scored category to the metric it averages.
var categoryMetrics = []struct {
	Name   string
	Metric string
}{
	{CategoryRendering, metrics.MetricRenderTime},
	{CategoryValidation, metrics.MetricValidationTime},
	{CategoryInteraction, metrics.MetricInteractionTime},
	{CategoryMemory, metrics.MetricHeapUsed},
}

// CategorySummary is one scored category: the per-variant means and the
// variant that won it.
type CategorySummary struct {
	Name     string             `json:"name"`
	Metric   string             `json:"metric"`
	Averages map[string]float64 `json:"averages"`
	Winner   string             `json:"winner"`
}

// Report is the derived, read-only aggregate over a sample collection. It is
// recomputed from raw samples every time, never updated incrementally.
type Report struct {
	RunID           string                      `json:"run_id"`
	GeneratedAt     time.Time                   `json:"generated_at"`
	Environment     sysinfo.SystemInfo          `json:"environment"`
	Variants        []string                    `json:"variants"`
	SampleCount     int                         `json:"sample_count"`
	Categories      []CategorySummary           `json:"categories"`
	OverallWinner   string                      `json:"overall_winner"`
	Recommendations []string                    `json:"recommendations"`
	Buckets         map[string][]metrics.Sample `json:"buckets"`
}

// Option customises report generation.
type Option func(*Generator)

// WithVariants overrides the two variants being compared.
func WithVariants(a, b string) Option {
	return func(g *Generator) {
		if a != "" && b != "" {
			g.variants = [2]string{a, b}
		}
	}
}

// WithClock overrides the time source used for the generation timestamp.
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) {
		if clock != nil {
			g.clock = clock
		}
	}
}

// WithRunID pins the report's run identifier instead of minting one.
func WithRunID(id string) Option {
	return func(g *Generator) {
		if id != "" {
			g.runID = id
		}
	}
}

// WithEnvironment supplies a pre-collected host snapshot.
func WithEnvironment(info sysinfo.SystemInfo) Option {
	return func(g *Generator) {
		g.environment = &info
	}
}

// Generator computes reports from sample collections.
type Generator struct {
	variants    [2]string
	clock       func() time.Time
	runID       string
	environment *sysinfo.SystemInfo
}

// NewGenerator constructs a generator comparing the vanilla and runtime
// variants by default.
func NewGenerator(options ...Option) *Generator {
	g := &Generator{
		variants: [2]string{"vanilla", "runtime"},
		clock:    time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	return g
}

// Generate computes one report over the given samples.
func (g *Generator) Generate(samples []metrics.Sample) *Report {
	runID := g.runID
	if runID == "" {
		runID = uuid.NewString()
	}

	env := g.environment
	if env == nil {
		collected := sysinfo.Collect()
		env = &collected
	}

	report := &Report{
		RunID:       runID,
		GeneratedAt: g.clock(),
		Environment: *env,
		Variants:    []string{g.variants[0], g.variants[1]},
		SampleCount: len(samples),
		Buckets:     bucketSamples(samples),
	}

	for _, category := range categoryMetrics {
		summary := CategorySummary{
			Name:     category.Name,
			Metric:   category.Metric,
			Averages: map[string]float64{},
		}
		for _, variant := range g.variants {
			summary.Averages[variant] = meanMetric(samples, variant, category.Metric)
		}
		summary.Winner = categoryWinner(
			g.variants[0], summary.Averages[g.variants[0]],
			g.variants[1], summary.Averages[g.variants[1]],
		)
		report.Categories = append(report.Categories, summary)
	}

	report.OverallWinner = overallWinner(g.variants, report.Categories)
	report.Recommendations = recommendations(g.variants, report.Categories, report.OverallWinner)
	return report
}
