package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-formbench/pkg/model"
	"github.com/goliatone/go-formbench/pkg/render"
	rendertemplate "github.com/goliatone/go-formbench/pkg/render/template"
	gotemplate "github.com/goliatone/go-formbench/pkg/render/template/gotemplate"
)

// Name identifies this variant in the renderer registry and in recorded
// benchmark samples.
const Name = "vanilla"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	basePath         string
	assetPrefix      string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithBasePath sets the route prefix the rendered page posts back to.
// Defaults to "/forms/vanilla".
func WithBasePath(path string) Option {
	return func(cfg *config) {
		if path != "" {
			cfg.basePath = path
		}
	}
}

// WithAssetPrefix sets the URL prefix for stylesheet and runtime script tags.
// Defaults to "/assets".
func WithAssetPrefix(prefix string) Option {
	return func(cfg *config) {
		if prefix != "" {
			cfg.assetPrefix = prefix
		}
	}
}

// Renderer is the server-rendered form variant: controls are emitted as
// static HTML, per-field validation round-trips through the validate-field
// endpoint on blur, and submissions are full-page postbacks.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	basePath    string
	assetPrefix string
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		basePath:    "/forms/vanilla",
		assetPrefix: "/assets",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:   renderer,
		basePath:    cfg.basePath,
		assetPrefix: cfg.assetPrefix,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the full page for a form model: the configuration panel,
// the form container with every generated control, inline error slots, the
// form-level banner, and the success indicator when a submission has been
// accepted.
func (r *Renderer) Render(_ context.Context, form model.FormModel, options render.Options) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	fieldsHTML, err := renderFields(form.Fields, options)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render fields: %w", err)
	}

	data := map[string]any{
		"title":         "Formbench — Vanilla Variant",
		"variant":       Name,
		"form_path":     r.basePath,
		"submit_path":   r.basePath + "/submit",
		"validate_path": r.basePath + "/validate-field",
		"asset_prefix":  r.assetPrefix,
		"runtime":       "formbench-vanilla.js",
		"field_count":   len(form.Fields),
		"config_inputs": configInputs(form.Config),
		"config_hidden": configHidden(form.Config),
		"fields":        fieldsHTML,
		"form_errors":   options.FormErrors,
		"submitted_at":  submittedAt(options),
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func submittedAt(options render.Options) string {
	if options.SubmittedAt == nil {
		return ""
	}
	return options.SubmittedAt.Format("2006-01-02 15:04:05")
}

func configInputs(config model.FieldTypeConfig) []map[string]any {
	inputs := make([]map[string]any, 0, 5)
	for _, fieldType := range model.FieldTypes() {
		inputs = append(inputs, map[string]any{
			"key":   string(fieldType),
			"label": configLabel(fieldType),
			"value": config.Count(fieldType),
		})
	}
	return inputs
}

func configHidden(config model.FieldTypeConfig) []map[string]any {
	hidden := make([]map[string]any, 0, 5)
	for _, fieldType := range model.FieldTypes() {
		hidden = append(hidden, map[string]any{
			"key":   string(fieldType),
			"value": config.Count(fieldType),
		})
	}
	return hidden
}

func configLabel(t model.FieldType) string {
	switch t {
	case model.FieldTypeText:
		return "Text Fields"
	case model.FieldTypeSelect:
		return "Select Fields"
	case model.FieldTypeAutocomplete:
		return "Autocomplete Fields"
	case model.FieldTypeCheckbox:
		return "Checkbox Fields"
	case model.FieldTypeDate:
		return "Date Fields"
	default:
		return string(t)
	}
}
