package vanilla

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/goliatone/go-formbench/pkg/model"
	"github.com/goliatone/go-formbench/pkg/render"
)

// renderFields emits the markup for the full field sequence. Each field is
// wrapped in a container carrying the state-machine attribute the runtime
// script advances (pristine → touched → valid|invalid) plus an error slot the
// collector can wait on.
func renderFields(fields []model.Field, options render.Options) (string, error) {
	var builder strings.Builder
	builder.Grow(len(fields) * 320)

	for _, field := range fields {
		control, err := renderControl(field, fieldValue(options.Values, field))
		if err != nil {
			return "", err
		}

		messages := options.Errors[field.Name]
		state := "pristine"
		if len(messages) > 0 {
			state = "invalid"
		}

		builder.WriteString(`<div class="field" data-field="`)
		builder.WriteString(html.EscapeString(field.Name))
		builder.WriteString(`" data-field-type="`)
		builder.WriteString(html.EscapeString(string(field.Type)))
		builder.WriteString(`" data-state="`)
		builder.WriteString(state)
		builder.WriteString("\">\n")

		builder.WriteString(`    <label for="`)
		builder.WriteString(html.EscapeString(field.ID))
		builder.WriteString(`">`)
		builder.WriteString(html.EscapeString(field.Label))
		builder.WriteString("</label>\n")

		for _, line := range strings.Split(control, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			builder.WriteString("    ")
			builder.WriteString(line)
			builder.WriteByte('\n')
		}

		writeErrorSlot(&builder, field.Name, messages)
		builder.WriteString("</div>\n")
	}

	return builder.String(), nil
}

func renderControl(field model.Field, value any) (string, error) {
	switch field.Type {
	case model.FieldTypeText:
		return textControl(field, value), nil
	case model.FieldTypeSelect:
		return selectControl(field, value), nil
	case model.FieldTypeAutocomplete:
		return autocompleteControl(field, value), nil
	case model.FieldTypeCheckbox:
		return checkboxControl(field, value), nil
	case model.FieldTypeDate:
		return dateControl(field, value), nil
	default:
		return "", fmt.Errorf("unsupported field type %q for field %q", field.Type, field.Name)
	}
}

func textControl(field model.Field, value any) string {
	return fmt.Sprintf(`<input type="text" id="%s" name="%s" value="%s" autocomplete="off">`,
		html.EscapeString(field.ID), html.EscapeString(field.Name), html.EscapeString(stringValue(value)))
}

func selectControl(field model.Field, value any) string {
	selected := stringValue(value)

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(`<select id="%s" name="%s">`+"\n",
		html.EscapeString(field.ID), html.EscapeString(field.Name)))
	builder.WriteString(`<option value="">-- choose --</option>` + "\n")
	for _, option := range field.Options {
		builder.WriteString(`<option value="`)
		builder.WriteString(html.EscapeString(option))
		builder.WriteString(`"`)
		if option == selected {
			builder.WriteString(` selected`)
		}
		builder.WriteString(`>`)
		builder.WriteString(html.EscapeString(option))
		builder.WriteString("</option>\n")
	}
	builder.WriteString("</select>")
	return builder.String()
}

func autocompleteControl(field model.Field, value any) string {
	listID := field.ID + "-options"

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf(`<input type="text" id="%s" name="%s" value="%s" list="%s" autocomplete="off">`,
		html.EscapeString(field.ID), html.EscapeString(field.Name),
		html.EscapeString(stringValue(value)), html.EscapeString(listID)))
	builder.WriteString(fmt.Sprintf("\n<datalist id=\"%s\">\n", html.EscapeString(listID)))
	for _, option := range field.Options {
		builder.WriteString(`<option value="`)
		builder.WriteString(html.EscapeString(option))
		builder.WriteString("\">\n")
	}
	builder.WriteString("</datalist>")
	return builder.String()
}

func checkboxControl(field model.Field, value any) string {
	checked := ""
	if boolValue(value) {
		checked = " checked"
	}
	return fmt.Sprintf(`<input type="checkbox" id="%s" name="%s" value="true"%s>`,
		html.EscapeString(field.ID), html.EscapeString(field.Name), checked)
}

func dateControl(field model.Field, value any) string {
	return fmt.Sprintf(`<input type="datetime-local" id="%s" name="%s" value="%s">`,
		html.EscapeString(field.ID), html.EscapeString(field.Name), html.EscapeString(dateString(value)))
}

func writeErrorSlot(builder *strings.Builder, name string, messages []string) {
	builder.WriteString(`    <p class="field-error" data-error-for="`)
	builder.WriteString(html.EscapeString(name))
	builder.WriteString(`" role="alert"`)
	if len(messages) == 0 {
		builder.WriteString(` hidden`)
	}
	builder.WriteString(`>`)
	builder.WriteString(html.EscapeString(strings.Join(messages, " ")))
	builder.WriteString("</p>\n")
}

func fieldValue(values model.FormValues, field model.Field) any {
	if values == nil {
		return nil
	}
	return values[field.Name]
}

func stringValue(value any) string {
	s, _ := value.(string)
	return s
}

func boolValue(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "on"
	default:
		return false
	}
}

func dateString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format("2006-01-02T15:04")
	case *time.Time:
		if v == nil || v.IsZero() {
			return ""
		}
		return v.Format("2006-01-02T15:04")
	default:
		return ""
	}
}
