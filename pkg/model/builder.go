package model

import "fmt"

// Option lists every form variant renders for select controls. Autocomplete
// controls carry a larger set so filtering behaviour is observable.
var (
	selectOptions = []string{
		"Option 1",
		"Option 2",
		"Option 3",
		"Option 4",
		"Option 5",
	}

	autocompleteOptions = []string{
		"Apple",
		"Banana",
		"Cherry",
		"Date",
		"Elderberry",
		"Fig",
		"Grape",
		"Honeydew",
	}
)

// Build generates the ordered field sequence for a configuration. Fields are
// grouped contiguously by type in the order returned by FieldTypes, labels
// are numbered 1..count within each group, and the id/name counter is shared
// across groups so names stay unique and strictly increasing. Building twice
// from the same configuration yields identical output.
func Build(config FieldTypeConfig) FormModel {
	config = config.Normalize()

	fields := make([]Field, 0, config.TotalFields())
	counter := 0

	for _, fieldType := range FieldTypes() {
		for i := 1; i <= config.Count(fieldType); i++ {
			counter++
			field := Field{
				ID:    fmt.Sprintf("field-%d", counter),
				Name:  fmt.Sprintf("field_%d", counter),
				Type:  fieldType,
				Label: fmt.Sprintf("%s Field %d", labelPrefix(fieldType), i),
			}
			switch fieldType {
			case FieldTypeSelect:
				field.Options = selectOptions
			case FieldTypeAutocomplete:
				field.Options = autocompleteOptions
			}
			fields = append(fields, field)
		}
	}

	return FormModel{
		Config: config,
		Fields: fields,
	}
}

func labelPrefix(t FieldType) string {
	switch t {
	case FieldTypeText:
		return "Text"
	case FieldTypeSelect:
		return "Select"
	case FieldTypeAutocomplete:
		return "Autocomplete"
	case FieldTypeCheckbox:
		return "Checkbox"
	case FieldTypeDate:
		return "Date"
	default:
		return string(t)
	}
}
