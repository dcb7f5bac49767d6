package render

import (
	"context"

	"github.com/goliatone/go-formbench/pkg/model"
)

// Renderer converts a FormModel plus per-request options into a byte
// representation (an HTML page for both built-in variants). Implementations
// must emit the shared structural contract: a root element carrying
// data-formbench-form="<variant>", one control per generated field, five
// numeric configuration inputs, per-field error slots, a form-level banner
// slot, a submit control, and a success indicator once a submission has been
// accepted. The benchmark collector drives every variant through the same
// interaction script and relies on those markers.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options Options) ([]byte, error)
}
