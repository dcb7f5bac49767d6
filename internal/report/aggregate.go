package report

import (
	"fmt"

	"github.com/goliatone/go-formbench/pkg/metrics"
)

// meanMetric averages a metric for one variant over only the samples that
// recorded it. Missing values are excluded, not counted as zero; an empty
// sample set averages to zero.
func meanMetric(samples []metrics.Sample, variant, metric string) float64 {
	var sum float64
	var count int
	for _, sample := range samples {
		if sample.Variant != variant {
			continue
		}
		if value, ok := sample.Metric(metric); ok {
			sum += value
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// categoryWinner compares two per-variant means. Lower wins. A zero average
// means no samples were recorded, so a one-sided zero is not a win for the
// empty side.
func categoryWinner(variantA string, avgA float64, variantB string, avgB float64) string {
	switch {
	case avgA == 0 && avgB == 0:
		return WinnerTie
	case avgA == 0 || avgB == 0:
		return WinnerInsufficient
	case avgA < avgB:
		return variantA
	case avgB < avgA:
		return variantB
	default:
		return WinnerTie
	}
}

// overallWinner tallies one point per category won. Insufficient-data and
// tied categories score nothing; an equal tally is a tie.
func overallWinner(variants [2]string, categories []CategorySummary) string {
	points := map[string]int{}
	for _, category := range categories {
		if category.Winner == variants[0] || category.Winner == variants[1] {
			points[category.Winner]++
		}
	}
	switch {
	case points[variants[0]] > points[variants[1]]:
		return variants[0]
	case points[variants[1]] > points[variants[0]]:
		return variants[1]
	default:
		return WinnerTie
	}
}

var categoryPhrases = map[string]string{
	CategoryRendering:   "renders forms faster",
	CategoryValidation:  "validates input faster",
	CategoryInteraction: "responds to input faster",
	CategoryMemory:      "uses less heap memory",
}

// recommendations turns the winner table into canned human-readable guidance.
func recommendations(variants [2]string, categories []CategorySummary, overall string) []string {
	lines := make([]string, 0, len(categories)+1)
	for _, category := range categories {
		switch category.Winner {
		case variants[0], variants[1]:
			lines = append(lines, fmt.Sprintf("The %s variant %s on average; prefer it for %s-sensitive workloads.",
				category.Winner, categoryPhrases[category.Name], category.Name))
		case WinnerInsufficient:
			lines = append(lines, fmt.Sprintf("Not enough %s samples were recorded for both variants; re-run the %s scenarios before drawing conclusions.",
				category.Name, category.Name))
		default:
			lines = append(lines, fmt.Sprintf("Both variants perform equivalently on %s.", category.Name))
		}
	}
	if overall == WinnerTie {
		lines = append(lines, "Overall the variants are evenly matched; choose based on team familiarity.")
	} else {
		lines = append(lines, fmt.Sprintf("Overall the %s variant wins the point tally and is the recommended default.", overall))
	}
	return lines
}

// bucketSamples partitions raw samples for the detailed report body. Any
// sample taken against more than 20 fields lands in the scalability bucket;
// the rest are grouped by the kind of measurement they carry.
func bucketSamples(samples []metrics.Sample) map[string][]metrics.Sample {
	buckets := map[string][]metrics.Sample{}
	for _, sample := range samples {
		name := sampleBucket(sample)
		buckets[name] = append(buckets[name], sample)
	}
	return buckets
}

func sampleBucket(sample metrics.Sample) string {
	if sample.TotalFields > 20 {
		return CategoryScalability
	}
	if _, ok := sample.Metric(metrics.MetricValidationTime); ok {
		return CategoryValidation
	}
	if _, ok := sample.Metric(metrics.MetricInteractionTime); ok {
		return CategoryInteraction
	}
	if _, ok := sample.Metric(metrics.MetricSubmissionTime); ok {
		return CategoryInteraction
	}
	return CategoryRendering
}
