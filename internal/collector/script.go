package collector

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbench/pkg/model"
)

// Selectors making up the structural contract both variants emit. The same
// interaction script drives either variant through these.
func containerSelector(variant string) string {
	return fmt.Sprintf(`[data-formbench-form=%q]`, variant)
}

func fieldInputSelector(name string) string {
	return fmt.Sprintf(`[data-field=%q] input, [data-field=%q] select`, name, name)
}

func errorSelector(name string) string {
	return fmt.Sprintf(`[data-error-for=%q]`, name)
}

const (
	submitSelector  = `[data-formbench-submit]`
	successSelector = `[data-formbench-success]`
)

// formURL builds the variant page URL carrying the field configuration as
// query parameters.
func formURL(baseURL, variant string, config model.FieldTypeConfig) string {
	query := url.Values{}
	for _, fieldType := range model.FieldTypes() {
		query.Set(string(fieldType), strconv.Itoa(config.Count(fieldType)))
	}
	return strings.TrimRight(baseURL, "/") + "/forms/" + variant + "?" + query.Encode()
}

// pageStatsScript samples the paint timeline, heap usage, and DOM size in one
// in-page evaluation.
const pageStatsScript = `(() => {
	const nav = performance.getEntriesByType('navigation')[0];
	const paint = {};
	performance.getEntriesByType('paint').forEach((entry) => {
		paint[entry.name] = entry.startTime;
	});
	return {
		domContentLoaded: nav ? nav.domContentLoadedEventEnd : 0,
		firstPaint: paint['first-paint'] || 0,
		firstContentfulPaint: paint['first-contentful-paint'] || 0,
		heapUsed: (performance.memory && performance.memory.usedJSHeapSize) || 0,
		domNodes: document.querySelectorAll('*').length
	};
})()`

// pageStats mirrors pageStatsScript's return shape.
type pageStats struct {
	DOMContentLoaded     float64 `json:"domContentLoaded"`
	FirstPaint           float64 `json:"firstPaint"`
	FirstContentfulPaint float64 `json:"firstContentfulPaint"`
	HeapUsed             float64 `json:"heapUsed"`
	DOMNodes             float64 `json:"domNodes"`
}

// setValueScript assigns a control value and dispatches the input/change/blur
// events both variants listen for. String values are quoted so synthetic
// input never breaks out of the script.
func setValueScript(name string, value any) string {
	var assign string
	switch v := value.(type) {
	case bool:
		assign = fmt.Sprintf("el.checked = %t;", v)
	default:
		assign = fmt.Sprintf("el.value = %q;", fmt.Sprintf("%v", v))
	}
	return fmt.Sprintf(`(() => {
	const el = document.querySelector('[data-field=%q] input, [data-field=%q] select');
	if (!el) { return false; }
	%s
	el.dispatchEvent(new Event('input', { bubbles: true }));
	el.dispatchEvent(new Event('change', { bubbles: true }));
	el.dispatchEvent(new Event('blur', { bubbles: true }));
	return true;
})()`, name, name, assign)
}

// SyntheticText is typed into text fields during interaction and submission
// scenarios.
const SyntheticText = "benchmark input"

// syntheticValue produces a valid value for a field: fixed text, the first
// selectable option, checked checkboxes, and a far-future date.
func syntheticValue(field model.Field) any {
	switch field.Type {
	case model.FieldTypeText:
		return SyntheticText
	case model.FieldTypeSelect, model.FieldTypeAutocomplete:
		if len(field.Options) > 0 {
			return field.Options[0]
		}
		return SyntheticText
	case model.FieldTypeCheckbox:
		return true
	case model.FieldTypeDate:
		return "2030-01-01T09:00"
	default:
		return SyntheticText
	}
}

// firstFieldOfType finds the first generated field with the given type.
func firstFieldOfType(form model.FormModel, t model.FieldType) (model.Field, bool) {
	for _, field := range form.Fields {
		if field.Type == t {
			return field, true
		}
	}
	return model.Field{}, false
}
