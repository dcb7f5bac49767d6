package model

// InitialValues produces the default value map for a field sequence. The
// default is determined solely by field type: empty string for
// text/select/autocomplete, false for checkbox, nil for date. The result has
// exactly one entry per field.
func InitialValues(fields []Field) FormValues {
	values := make(FormValues, len(fields))
	for _, field := range fields {
		switch field.Type {
		case FieldTypeCheckbox:
			values[field.Name] = false
		case FieldTypeDate:
			values[field.Name] = nil
		default:
			values[field.Name] = ""
		}
	}
	return values
}
