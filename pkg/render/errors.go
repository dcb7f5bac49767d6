package render

import (
	"strings"

	"github.com/goliatone/go-formbench/pkg/validation"
)

// SplitResult translates a validation result into the field-level and
// form-level message sets renderers consume. Messages attached to the
// cross-field pseudo-path are promoted to the form banner so they are not
// lost against a nonexistent control.
func SplitResult(result *validation.Result) (fields map[string][]string, form []string) {
	if result == nil {
		return nil, nil
	}

	form = normalizeMessages(result.Form)

	for name, messages := range result.Fields {
		if name == validation.FormErrorPath {
			form = MergeFormErrors(form, messages...)
			continue
		}
		cleaned := normalizeMessages(messages)
		if len(cleaned) == 0 {
			continue
		}
		if fields == nil {
			fields = make(map[string][]string)
		}
		fields[name] = cleaned
	}

	return fields, form
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
