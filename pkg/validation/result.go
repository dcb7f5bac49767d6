package validation

import "strings"

// FormErrorPath is the pseudo-path cross-field failures are attached to.
// Renderers surface messages under this path as a form-scoped banner rather
// than inline next to a control.
const FormErrorPath = "fields"

// Result captures the structured outcome of a validation pass: per-field
// messages keyed by field name plus optional whole-form messages. Validators
// always return a Result; they never panic or surface raw errors to callers.
type Result struct {
	Fields map[string][]string `json:"fields,omitempty"`
	Form   []string            `json:"form,omitempty"`
}

// NewResult returns an empty, valid result.
func NewResult() *Result {
	return &Result{}
}

// Valid reports whether no field or form messages were recorded.
func (r *Result) Valid() bool {
	if r == nil {
		return true
	}
	return len(r.Fields) == 0 && len(r.Form) == 0
}

// AddField appends messages to a field path, dropping blanks.
func (r *Result) AddField(name string, messages ...string) {
	cleaned := cleanMessages(messages)
	if len(cleaned) == 0 {
		return
	}
	if r.Fields == nil {
		r.Fields = make(map[string][]string)
	}
	r.Fields[name] = append(r.Fields[name], cleaned...)
}

// AddForm appends whole-form messages, dropping blanks.
func (r *Result) AddForm(messages ...string) {
	r.Form = append(r.Form, cleanMessages(messages)...)
}

// FieldErrors returns the messages recorded for a field, nil when clean.
func (r *Result) FieldErrors(name string) []string {
	if r == nil || len(r.Fields) == 0 {
		return nil
	}
	return r.Fields[name]
}

func cleanMessages(messages []string) []string {
	out := make([]string, 0, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
