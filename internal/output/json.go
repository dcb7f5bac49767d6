package output

import (
	"encoding/json"
	"io"

	"github.com/goliatone/go-formbench/internal/report"
)

// JSONFormatter streams the full report document, indented.
type JSONFormatter struct{}

func (j *JSONFormatter) Format(w io.Writer, r *report.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}
