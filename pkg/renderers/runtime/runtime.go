package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbench/pkg/model"
	"github.com/goliatone/go-formbench/pkg/render"
	rendertemplate "github.com/goliatone/go-formbench/pkg/render/template"
	gotemplate "github.com/goliatone/go-formbench/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formbench/pkg/validation"
)

// Name identifies this variant in the renderer registry and in recorded
// benchmark samples.
const Name = "runtime"

const templateName = "templates/page.tmpl"

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	basePath         string
	assetPrefix      string
	theme            *theme.RendererConfig
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
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

// WithBasePath sets the route prefix the client runtime submits to.
// Defaults to "/forms/runtime".
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

// WithTheme applies a resolved theme configuration: CSS variables are emitted
// as an inline :root block and theme assets override the default bundle
// paths.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// Renderer is the client-rendered form variant: the page ships the form
// model and the validation rule set as JSON, and the embedded runtime script
// builds the controls, validates per keystroke/blur, and submits via fetch.
type Renderer struct {
	templates   rendertemplate.TemplateRenderer
	basePath    string
	assetPrefix string
	theme       *theme.RendererConfig
}

// New constructs the runtime renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		basePath:    "/forms/runtime",
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
			return nil, fmt.Errorf("runtime renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:   renderer,
		basePath:    cfg.basePath,
		assetPrefix: cfg.assetPrefix,
		theme:       cfg.theme,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// bootPayload is everything the client runtime needs to hydrate the form.
type bootPayload struct {
	Form        model.FormModel     `json:"form"`
	Values      model.FormValues    `json:"values"`
	Errors      map[string][]string `json:"errors,omitempty"`
	FormErrors  []string            `json:"formErrors,omitempty"`
	SubmittedAt string              `json:"submittedAt,omitempty"`
	SubmitPath  string              `json:"submitPath"`
}

// Render produces the host page: configuration panel, an empty form
// container the runtime populates, and the boot payload script tags.
func (r *Renderer) Render(_ context.Context, form model.FormModel, options render.Options) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("runtime renderer: template renderer is nil")
	}

	values := options.Values
	if values == nil {
		values = model.InitialValues(form.Fields)
	}

	boot := bootPayload{
		Form:       form,
		Values:     values,
		Errors:     options.Errors,
		FormErrors: options.FormErrors,
		SubmitPath: r.basePath + "/submit",
	}
	if options.SubmittedAt != nil {
		boot.SubmittedAt = options.SubmittedAt.Format("2006-01-02 15:04:05")
	}

	bootJSON, err := json.Marshal(boot)
	if err != nil {
		return nil, fmt.Errorf("runtime renderer: marshal boot payload: %w", err)
	}

	rulesJSON, err := validation.NewRuntime(validation.BuildRuleSet(form.Fields)).RulesPayload()
	if err != nil {
		return nil, fmt.Errorf("runtime renderer: build rules payload: %w", err)
	}

	data := map[string]any{
		"title":         "Formbench — Runtime Variant",
		"variant":       Name,
		"form_path":     r.basePath,
		"asset_prefix":  r.assetPrefix,
		"runtime":       RuntimeScriptName,
		"field_count":   len(form.Fields),
		"config_inputs": configInputs(form.Config),
		"boot_json":     string(bootJSON),
		"rules_json":    string(rulesJSON),
		"theme_css":     themeCSS(r.theme),
		"stylesheet":    r.stylesheetURL(),
	}

	rendered, err := r.templates.RenderTemplate(templateName, data)
	if err != nil {
		return nil, fmt.Errorf("runtime renderer: render template: %w", err)
	}
	return []byte(rendered), nil
}

func (r *Renderer) stylesheetURL() string {
	if r.theme != nil && r.theme.AssetURL != nil {
		if url := strings.TrimSpace(r.theme.AssetURL(themeAssetStylesheet)); url != "" {
			return url
		}
	}
	return r.assetPrefix + "/" + StylesheetName
}

const themeAssetStylesheet = "runtime.stylesheet"

// themeCSS flattens the theme's CSS variables into an inline :root block.
func themeCSS(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}

	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func configInputs(config model.FieldTypeConfig) []map[string]any {
	inputs := make([]map[string]any, 0, 5)
	labels := map[model.FieldType]string{
		model.FieldTypeText:         "Text Fields",
		model.FieldTypeSelect:       "Select Fields",
		model.FieldTypeAutocomplete: "Autocomplete Fields",
		model.FieldTypeCheckbox:     "Checkbox Fields",
		model.FieldTypeDate:         "Date Fields",
	}
	for _, fieldType := range model.FieldTypes() {
		inputs = append(inputs, map[string]any{
			"key":   string(fieldType),
			"label": labels[fieldType],
			"value": config.Count(fieldType),
		})
	}
	return inputs
}
