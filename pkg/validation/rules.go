package validation

import (
	"strings"
	"time"

	"github.com/goliatone/go-formbench/pkg/model"
)

// Validation messages shared by both variant adapters. Keeping them in one
// place guarantees the variants stay message-compatible.
const (
	MessageRequired      = "This field is required"
	MessageMinLength     = "Must be at least 3 characters"
	MessageSelectOption  = "Please select an option"
	MessageFutureDate    = "Date must be in the future"
	MessageAtLeastOneSet = "At least one text, select, or autocomplete field must be filled"
)

// MinTextLength is the minimum accepted length for text field values.
const MinTextLength = 3

// FieldRule describes the constraint set for one generated field.
type FieldRule struct {
	Name      string          `json:"name"`
	Type      model.FieldType `json:"type"`
	Required  bool            `json:"required"`
	MinLength int             `json:"minLength,omitempty"`
}

// RuleSet is the shared rule description both variant adapters consume. It is
// derived from the generated field sequence and carries the cross-field
// requirement flag.
type RuleSet struct {
	Fields []FieldRule `json:"fields"`
	// RequireOneFilled is set when the field set contains at least one
	// text-like field; the form is then invalid unless one such field holds a
	// non-blank value.
	RequireOneFilled bool `json:"requireOneFilled"`

	byName map[string]FieldRule
}

// BuildRuleSet derives the rule set for a generated field sequence.
func BuildRuleSet(fields []model.Field) RuleSet {
	rs := RuleSet{
		Fields: make([]FieldRule, 0, len(fields)),
		byName: make(map[string]FieldRule, len(fields)),
	}

	for _, field := range fields {
		rule := FieldRule{Name: field.Name, Type: field.Type}
		switch field.Type {
		case model.FieldTypeText:
			rule.Required = true
			rule.MinLength = MinTextLength
		case model.FieldTypeSelect, model.FieldTypeAutocomplete:
			rule.Required = true
		}
		if isTextLike(field.Type) {
			rs.RequireOneFilled = true
		}
		rs.Fields = append(rs.Fields, rule)
		rs.byName[rule.Name] = rule
	}

	return rs
}

// Rule looks up the rule for a field name.
func (rs RuleSet) Rule(name string) (FieldRule, bool) {
	rule, ok := rs.byName[name]
	return rule, ok
}

// ValidateField evaluates a single field value against its rule at the given
// moment. Unknown names yield no messages.
func (rs RuleSet) ValidateField(name string, value any, now time.Time) []string {
	rule, ok := rs.Rule(name)
	if !ok {
		return nil
	}
	return evaluateRule(rule, value, now)
}

// ValidateForm evaluates every field plus the cross-field requirement.
func (rs RuleSet) ValidateForm(values model.FormValues, now time.Time) *Result {
	result := NewResult()

	for _, rule := range rs.Fields {
		if messages := evaluateRule(rule, values[rule.Name], now); len(messages) > 0 {
			result.AddField(rule.Name, messages...)
		}
	}

	if rs.RequireOneFilled && !anyTextLikeFilled(rs.Fields, values) {
		result.AddField(FormErrorPath, MessageAtLeastOneSet)
		result.AddForm(MessageAtLeastOneSet)
	}

	return result
}

func evaluateRule(rule FieldRule, value any, now time.Time) []string {
	switch rule.Type {
	case model.FieldTypeText:
		text := stringValue(value)
		if strings.TrimSpace(text) == "" {
			return []string{MessageRequired}
		}
		if len(text) < rule.MinLength {
			return []string{MessageMinLength}
		}
	case model.FieldTypeSelect, model.FieldTypeAutocomplete:
		if strings.TrimSpace(stringValue(value)) == "" {
			return []string{MessageSelectOption}
		}
	case model.FieldTypeDate:
		when, ok := dateValue(value)
		if !ok {
			return nil
		}
		if !when.After(now) {
			return []string{MessageFutureDate}
		}
	}
	return nil
}

func anyTextLikeFilled(rules []FieldRule, values model.FormValues) bool {
	for _, rule := range rules {
		if !isTextLike(rule.Type) {
			continue
		}
		if strings.TrimSpace(stringValue(values[rule.Name])) != "" {
			return true
		}
	}
	return false
}

func isTextLike(t model.FieldType) bool {
	switch t {
	case model.FieldTypeText, model.FieldTypeSelect, model.FieldTypeAutocomplete:
		return true
	default:
		return false
	}
}

func stringValue(value any) string {
	s, _ := value.(string)
	return s
}

// dateValue coerces the supported date representations. Absent values (nil,
// empty string, nil pointer) report ok=false, which the date rule treats as
// valid because dates are optional.
func dateValue(value any) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return time.Time{}, false
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
			if when, err := time.Parse(layout, trimmed); err == nil {
				return when, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
