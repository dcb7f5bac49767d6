package report

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formbench/pkg/metrics"
	gotemplate "github.com/goliatone/go-formbench/pkg/render/template/gotemplate"
)

//go:embed templates/*.tmpl
var reportTemplates embed.FS

const htmlTemplateName = "templates/report.tmpl"

// Emitter writes a report as a JSON document and a self-contained HTML
// document into one directory, both named performance-report-<timestamp>.
type Emitter struct {
	dir       string
	templates *gotemplate.Engine
	sanitizer *bluemonday.Policy
}

// NewEmitter prepares the output directory and the HTML template engine.
func NewEmitter(dir string) (*Emitter, error) {
	if dir == "" {
		return nil, fmt.Errorf("report: output directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("report: create output directory: %w", err)
	}

	engine, err := gotemplate.New(
		gotemplate.WithFS(reportTemplates),
		gotemplate.WithExtension(".tmpl"),
	)
	if err != nil {
		return nil, fmt.Errorf("report: configure template engine: %w", err)
	}

	return &Emitter{
		dir:       dir,
		templates: engine,
		sanitizer: bluemonday.StrictPolicy(),
	}, nil
}

func (e *Emitter) baseName(r *Report) string {
	return "performance-report-" + metrics.FileTimestamp(r.GeneratedAt)
}

// WriteJSON persists the structured report and returns the file path.
func (e *Emitter) WriteJSON(r *Report) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("report: marshal report: %w", err)
	}
	path := filepath.Join(e.dir, e.baseName(r)+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("report: write json report: %w", err)
	}
	return path, nil
}

// WriteHTML renders the comparison document and returns the file path. Sample
// detail strings pass through an HTML sanitizer before embedding.
func (e *Emitter) WriteHTML(r *Report) (string, error) {
	rendered, err := e.templates.RenderTemplate(htmlTemplateName, e.htmlData(r))
	if err != nil {
		return "", fmt.Errorf("report: render html report: %w", err)
	}
	path := filepath.Join(e.dir, e.baseName(r)+".html")
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("report: write html report: %w", err)
	}
	return path, nil
}

func (e *Emitter) htmlData(r *Report) map[string]any {
	categories := make([]map[string]any, 0, len(r.Categories))
	for _, category := range r.Categories {
		max := 0.0
		for _, variant := range r.Variants {
			if avg := category.Averages[variant]; avg > max {
				max = avg
			}
		}
		rows := make([]map[string]any, 0, len(r.Variants))
		for _, variant := range r.Variants {
			avg := category.Averages[variant]
			width := 0
			if max > 0 {
				width = int(avg / max * 100)
			}
			rows = append(rows, map[string]any{
				"variant": variant,
				"average": fmt.Sprintf("%.2f", avg),
				"width":   width,
				"won":     category.Winner == variant,
			})
		}
		categories = append(categories, map[string]any{
			"name":   category.Name,
			"metric": category.Metric,
			"winner": category.Winner,
			"rows":   rows,
		})
	}

	bucketNames := make([]string, 0, len(r.Buckets))
	for name := range r.Buckets {
		bucketNames = append(bucketNames, name)
	}
	sort.Strings(bucketNames)

	buckets := make([]map[string]any, 0, len(bucketNames))
	for _, name := range bucketNames {
		rows := make([]map[string]any, 0, len(r.Buckets[name]))
		for _, sample := range r.Buckets[name] {
			rows = append(rows, map[string]any{
				"test_name":    sample.TestName,
				"variant":      sample.Variant,
				"total_fields": sample.TotalFields,
				"metrics":      formatMetrics(sample.Metrics),
				"details":      e.sanitizer.Sanitize(sample.Details),
			})
		}
		buckets = append(buckets, map[string]any{
			"name":    name,
			"samples": rows,
		})
	}

	return map[string]any{
		"run_id":          r.RunID,
		"generated_at":    r.GeneratedAt.Format("2006-01-02 15:04:05 MST"),
		"environment":     r.Environment,
		"variants":        r.Variants,
		"sample_count":    r.SampleCount,
		"categories":      categories,
		"overall_winner":  r.OverallWinner,
		"recommendations": r.Recommendations,
		"buckets":         buckets,
	}
}

func formatMetrics(values map[string]float64) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%.2f", key, values[key]))
	}
	return strings.Join(parts, " ")
}
