package server

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbench/pkg/model"
	"github.com/goliatone/go-formbench/pkg/validation"
)

// SchemaDocument exports the generated form model as an OpenAPI 3 document so
// external tooling can introspect the active configuration.
func SchemaDocument(form model.FormModel) *openapi3.T {
	values := openapi3.NewObjectSchema()
	values.Description = "Submitted values for the generated form"

	var required []string
	for _, field := range form.Fields {
		values = values.WithProperty(field.Name, fieldSchema(field))
		switch field.Type {
		case model.FieldTypeText, model.FieldTypeSelect, model.FieldTypeAutocomplete:
			required = append(required, field.Name)
		}
	}
	values.Required = required

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "formbench form schema",
			Description: fmt.Sprintf("Generated form with %d fields", len(form.Fields)),
			Version:     "1.0.0",
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				"FieldTypeConfig": openapi3.NewSchemaRef("", configSchema(form.Config)),
				"FormValues":      openapi3.NewSchemaRef("", values),
			},
		},
	}
}

func fieldSchema(field model.Field) *openapi3.Schema {
	switch field.Type {
	case model.FieldTypeText:
		schema := openapi3.NewStringSchema().
			WithMinLength(validation.MinTextLength)
		schema.Description = field.Label
		return schema
	case model.FieldTypeSelect:
		enum := make([]any, 0, len(field.Options))
		for _, option := range field.Options {
			enum = append(enum, option)
		}
		schema := openapi3.NewStringSchema().
			WithEnum(enum...)
		schema.Description = field.Label
		return schema
	case model.FieldTypeAutocomplete:
		// Suggestions, not an enum: free text is allowed.
		schema := openapi3.NewStringSchema()
		schema.Description = field.Label + " (suggested: " + strings.Join(field.Options, ", ") + ")"
		return schema
	case model.FieldTypeCheckbox:
		schema := openapi3.NewBoolSchema()
		schema.Description = field.Label
		return schema
	case model.FieldTypeDate:
		schema := openapi3.NewDateTimeSchema().WithNullable()
		schema.Description = field.Label + " (must be in the future when set)"
		return schema
	default:
		return openapi3.NewStringSchema()
	}
}

func configSchema(config model.FieldTypeConfig) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Description = "Per-type field counts, clamped to [0,20]"
	for _, fieldType := range model.FieldTypes() {
		count := openapi3.NewIntegerSchema().
			WithMin(model.MinFieldCount).
			WithMax(model.MaxFieldCount).
			WithDefault(config.Count(fieldType))
		schema = schema.WithProperty(string(fieldType), count)
	}
	return schema
}
