package output

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/goliatone/go-formbench/internal/report"
)

// TableFormatter prints the per-category comparison as an aligned table with
// a short trailing summary.
type TableFormatter struct{}

func (t *TableFormatter) Format(w io.Writer, r *report.Report) error {
	fmt.Fprintln(w, "\nFormbench Comparison")
	fmt.Fprintln(w, "====================")
	fmt.Fprintln(w)

	table := tablewriter.NewWriter(w)
	header := []string{"Category", "Metric"}
	for _, variant := range r.Variants {
		header = append(header, variant)
	}
	header = append(header, "Winner")
	table.SetHeader(header)

	table.SetBorder(false)
	table.SetCenterSeparator("|")
	table.SetColumnSeparator("|")
	table.SetRowSeparator("-")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, category := range r.Categories {
		row := []string{category.Name, category.Metric}
		for _, variant := range r.Variants {
			row = append(row, fmt.Sprintf("%.2f", category.Averages[variant]))
		}
		row = append(row, category.Winner)
		table.Append(row)
	}

	table.Render()

	fmt.Fprintln(w, "\nSummary")
	fmt.Fprintln(w, "-------")
	fmt.Fprintf(w, "Samples: %d\n", r.SampleCount)
	fmt.Fprintf(w, "Overall winner: %s\n", r.OverallWinner)
	for _, line := range r.Recommendations {
		fmt.Fprintf(w, "- %s\n", line)
	}

	return nil
}
