package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formbench/pkg/model"
	"github.com/goliatone/go-formbench/pkg/render"
	"github.com/goliatone/go-formbench/pkg/validation"
)

// defaultConfig is rendered when a request carries no field counts.
var defaultConfig = model.FieldTypeConfig{Text: 3, Select: 1, Autocomplete: 1, Checkbox: 1, Date: 1}

const landingTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <title>Formbench</title>
    <link rel="stylesheet" href="/assets/formbench.css">
</head>
<body>
<main class="formbench">
    <h1>Formbench</h1>
    <p>Pick a form variant to exercise:</p>
    <ul class="landing-links">
        {% for variant in variants %}
        <li><a href="/forms/{{ variant }}">{{ variant|capfirst }} variant</a></li>
        {% endfor %}
    </ul>
</main>
</body>
</html>
`

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	page, err := s.templates.RenderString(landingTemplate, map[string]any{
		"variants": s.registry.Names(),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	variant := mux.Vars(r)["variant"]
	renderer, err := s.registry.Get(variant)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	config := configFromValues(r.URL.Query().Get, defaultConfig)
	form := model.Build(config)

	s.renderForm(w, r, renderer, form, render.Options{
		Values: model.InitialValues(form.Fields),
	})
}

func (s *Server) handleVanillaSubmit(w http.ResponseWriter, r *http.Request) {
	renderer, err := s.registry.Get("vanilla")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form payload", http.StatusBadRequest)
		return
	}

	config := configFromValues(func(key string) string {
		return r.PostFormValue("config_" + key)
	}, model.FieldTypeConfig{})
	form := model.Build(config)
	values := postedValues(form, r.PostFormValue)

	validator := validation.NewVanilla(validation.BuildRuleSet(form.Fields), validation.WithClock(s.clock))
	result := validator.ValidateForm(values)

	options := render.Options{Values: values}
	if result.Valid() {
		submitted := s.clock()
		options.SubmittedAt = &submitted
		s.log.WithFields(logrus.Fields{
			"variant": "vanilla",
			"fields":  len(form.Fields),
		}).Info("form submitted")
	} else {
		options.Errors, options.FormErrors = render.SplitResult(result)
	}

	s.renderForm(w, r, renderer, form, options)
}

type validateFieldRequest struct {
	Name   string                `json:"name"`
	Value  any                   `json:"value"`
	Config model.FieldTypeConfig `json:"config"`
}

func (s *Server) handleValidateField(w http.ResponseWriter, r *http.Request) {
	var req validateFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed validation payload", http.StatusBadRequest)
		return
	}

	form := model.Build(req.Config)
	validator := validation.NewVanilla(validation.BuildRuleSet(form.Fields), validation.WithClock(s.clock))
	messages := validator.FieldValidator(req.Name)(req.Value)
	if messages == nil {
		messages = []string{}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

type runtimeSubmitRequest struct {
	Values model.FormValues      `json:"values"`
	Config model.FieldTypeConfig `json:"config"`
}

func (s *Server) handleRuntimeSubmit(w http.ResponseWriter, r *http.Request) {
	var req runtimeSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed submit payload", http.StatusBadRequest)
		return
	}

	form := model.Build(req.Config)
	validator := validation.NewRuntime(validation.BuildRuleSet(form.Fields), validation.WithClock(s.clock))
	result := validator.ValidateForm(req.Values)

	if !result.Valid() {
		fieldErrors, formErrors := render.SplitResult(result)
		s.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"ok":         false,
			"errors":     fieldErrors,
			"formErrors": formErrors,
		})
		return
	}

	s.log.WithFields(logrus.Fields{
		"variant": "runtime",
		"fields":  len(form.Fields),
	}).Info("form submitted")

	s.writeJSON(w, http.StatusOK, map[string]any{
		"ok":          true,
		"submittedAt": s.clock().Format("2006-01-02 15:04:05"),
	})
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	config := configFromValues(r.URL.Query().Get, defaultConfig)
	doc := SchemaDocument(model.Build(config))

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, renderer render.Renderer, form model.FormModel, options render.Options) {
	page, err := renderer.Render(r.Context(), form, options)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.Write(page)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.WithError(err).Error("encode response")
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// configFromValues reads per-type counts through a lookup function, falling
// back to the given default when no count is present at all. Out-of-range
// counts are clamped by Build, never rejected.
func configFromValues(get func(string) string, fallback model.FieldTypeConfig) model.FieldTypeConfig {
	config := model.FieldTypeConfig{}
	seen := false
	for _, fieldType := range model.FieldTypes() {
		raw := get(string(fieldType))
		if raw == "" {
			continue
		}
		count, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		seen = true
		switch fieldType {
		case model.FieldTypeText:
			config.Text = count
		case model.FieldTypeSelect:
			config.Select = count
		case model.FieldTypeAutocomplete:
			config.Autocomplete = count
		case model.FieldTypeCheckbox:
			config.Checkbox = count
		case model.FieldTypeDate:
			config.Date = count
		}
	}
	if !seen {
		return fallback
	}
	return config
}

// postedValues maps the form-encoded postback into typed values. Date inputs
// stay strings; the rule set parses the datetime-local format itself.
func postedValues(form model.FormModel, get func(string) string) model.FormValues {
	values := make(model.FormValues, len(form.Fields))
	for _, field := range form.Fields {
		raw := get(field.Name)
		switch field.Type {
		case model.FieldTypeCheckbox:
			values[field.Name] = raw == "true"
		case model.FieldTypeDate:
			if raw == "" {
				values[field.Name] = nil
			} else {
				values[field.Name] = raw
			}
		default:
			values[field.Name] = raw
		}
	}
	return values
}
