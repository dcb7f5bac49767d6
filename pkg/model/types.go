package model

// FieldType enumerates the supported form control kinds.
type FieldType string

const (
	FieldTypeText         FieldType = "text"
	FieldTypeSelect       FieldType = "select"
	FieldTypeAutocomplete FieldType = "autocomplete"
	FieldTypeCheckbox     FieldType = "checkbox"
	FieldTypeDate         FieldType = "date"
)

// FieldTypes returns the supported types in generation order. Builders iterate
// this slice so fields are always grouped the same way regardless of how the
// configuration was produced.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText,
		FieldTypeSelect,
		FieldTypeAutocomplete,
		FieldTypeCheckbox,
		FieldTypeDate,
	}
}

const (
	// MinFieldCount and MaxFieldCount bound the per-type count a
	// configuration may request. Out-of-range values are clamped, never
	// rejected.
	MinFieldCount = 0
	MaxFieldCount = 20
)

// FieldTypeConfig holds the requested number of fields per supported type.
type FieldTypeConfig struct {
	Text         int `json:"text" yaml:"text"`
	Select       int `json:"select" yaml:"select"`
	Autocomplete int `json:"autocomplete" yaml:"autocomplete"`
	Checkbox     int `json:"checkbox" yaml:"checkbox"`
	Date         int `json:"date" yaml:"date"`
}

// Count returns the configured count for a single field type.
func (c FieldTypeConfig) Count(t FieldType) int {
	switch t {
	case FieldTypeText:
		return c.Text
	case FieldTypeSelect:
		return c.Select
	case FieldTypeAutocomplete:
		return c.Autocomplete
	case FieldTypeCheckbox:
		return c.Checkbox
	case FieldTypeDate:
		return c.Date
	default:
		return 0
	}
}

// Normalize returns a copy with every count clamped to
// [MinFieldCount, MaxFieldCount].
func (c FieldTypeConfig) Normalize() FieldTypeConfig {
	return FieldTypeConfig{
		Text:         clampCount(c.Text),
		Select:       clampCount(c.Select),
		Autocomplete: clampCount(c.Autocomplete),
		Checkbox:     clampCount(c.Checkbox),
		Date:         clampCount(c.Date),
	}
}

// TotalFields reports the number of fields the normalized configuration
// produces.
func (c FieldTypeConfig) TotalFields() int {
	n := c.Normalize()
	return n.Text + n.Select + n.Autocomplete + n.Checkbox + n.Date
}

func clampCount(v int) int {
	if v < MinFieldCount {
		return MinFieldCount
	}
	if v > MaxFieldCount {
		return MaxFieldCount
	}
	return v
}

// Field models an individual input inside a generated form. Struct fields are
// annotated so renderers and the client runtime can serialise them directly.
type Field struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Type    FieldType `json:"type"`
	Label   string    `json:"label"`
	Options []string  `json:"options,omitempty"`
}

// FormModel is the top-level representation renderers consume: the ordered
// field sequence plus the configuration it was generated from.
type FormModel struct {
	Config FieldTypeConfig `json:"config"`
	Fields []Field         `json:"fields"`
}

// FormValues maps field names to submitted values. Value types depend on the
// field type: string for text/select/autocomplete, bool for checkbox, and
// *time.Time (possibly nil) for date.
type FormValues map[string]any
