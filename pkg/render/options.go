package render

import (
	"time"

	"github.com/goliatone/go-formbench/pkg/model"
)

// Options carry per-request data renderers use to customise output without
// mutating the form model pipeline.
type Options struct {
	// Values pre-populates rendered controls, typically echoing a rejected
	// submission back to the user.
	Values model.FormValues
	// Errors surfaces field-level validation feedback keyed by field name.
	// Renderers map these into inline error indicators next to each control.
	Errors map[string][]string
	// FormErrors holds form-scoped messages rendered as a banner, not
	// attached to any one input.
	FormErrors []string
	// SubmittedAt, when set, marks the last accepted submission; renderers
	// show it through the success indicator.
	SubmittedAt *time.Time
}
