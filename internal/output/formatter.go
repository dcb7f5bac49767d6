// Package output formats finished reports for the console.
package output

import (
	"fmt"
	"io"

	"github.com/goliatone/go-formbench/internal/report"
)

// Formatter renders a report summary to a writer.
type Formatter interface {
	Format(w io.Writer, r *report.Report) error
}

// NewFormatter selects a formatter by name.
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "table":
		return &TableFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("output: unsupported format %q", format)
	}
}
