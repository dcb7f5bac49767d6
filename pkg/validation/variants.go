package validation

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/goliatone/go-formbench/pkg/model"
)

// FieldFunc validates a single value, returning the messages for that field.
// Renderers call it on change/blur without running the whole schema.
type FieldFunc func(value any) []string

// FormValidator is the contract both variant adapters satisfy. Submit-time
// validation runs the whole schema; FieldValidator supports independent
// per-field checks with identical messages.
type FormValidator interface {
	Variant() string
	ValidateForm(values model.FormValues) *Result
	FieldValidator(name string) FieldFunc
}

// Option customises a variant adapter.
type Option func(*adapter)

// WithClock overrides the time source used by the future-date rule. Tests use
// this to pin "now".
func WithClock(clock func() time.Time) Option {
	return func(a *adapter) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// adapter carries the shared evaluation plumbing; the two variants are thin
// wrappers that differ only in how their renderer consumes the outcome.
type adapter struct {
	variant string
	rules   RuleSet
	clock   func() time.Time
}

func newAdapter(variant string, rules RuleSet, options []Option) adapter {
	a := adapter{
		variant: variant,
		rules:   rules,
		clock:   time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&a)
	}
	return a
}

func (a adapter) Variant() string {
	return a.variant
}

func (a adapter) ValidateForm(values model.FormValues) *Result {
	return a.rules.ValidateForm(values, a.clock())
}

func (a adapter) FieldValidator(name string) FieldFunc {
	return func(value any) []string {
		return a.rules.ValidateField(name, value, a.clock())
	}
}

// VanillaValidator backs the server-rendered variant. Results map straight
// into render options so errors appear inline on the next page render.
type VanillaValidator struct {
	adapter
}

// NewVanilla builds the vanilla-variant validator from the shared rule set.
func NewVanilla(rules RuleSet, options ...Option) *VanillaValidator {
	return &VanillaValidator{adapter: newAdapter("vanilla", rules, options)}
}

// RuntimeValidator backs the client-runtime variant. Besides server-side
// submit validation it exports the rule set so the embedded runtime can run
// the same checks per keystroke.
type RuntimeValidator struct {
	adapter
}

// NewRuntime builds the runtime-variant validator from the shared rule set.
func NewRuntime(rules RuleSet, options ...Option) *RuntimeValidator {
	return &RuntimeValidator{adapter: newAdapter("runtime", rules, options)}
}

// RulesPayload serialises the rule set for the client runtime. Messages ship
// alongside the rules so client- and server-side errors stay identical.
func (v *RuntimeValidator) RulesPayload() ([]byte, error) {
	payload := struct {
		Rules    RuleSet           `json:"rules"`
		Messages map[string]string `json:"messages"`
		FormPath string            `json:"formPath"`
	}{
		Rules: v.rules,
		Messages: map[string]string{
			"required":   MessageRequired,
			"minLength":  MessageMinLength,
			"select":     MessageSelectOption,
			"futureDate": MessageFutureDate,
			"atLeastOne": MessageAtLeastOneSet,
		},
		FormPath: FormErrorPath,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("validation: marshal rules payload: %w", err)
	}
	return data, nil
}
