package collector

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-formbench/pkg/model"
)

// ErrPromptCancelled reports that the user interrupted the interactive
// session.
var ErrPromptCancelled = errors.New("collector: prompt cancelled")

// PromptPlan builds a single-scenario plan from interactive terminal input:
// one count prompt per field type plus a variant selection.
func PromptPlan() (Plan, error) {
	variants, err := promptVariants()
	if err != nil {
		return Plan{}, err
	}

	var config model.FieldTypeConfig
	counts := map[model.FieldType]*int{
		model.FieldTypeText:         &config.Text,
		model.FieldTypeSelect:       &config.Select,
		model.FieldTypeAutocomplete: &config.Autocomplete,
		model.FieldTypeCheckbox:     &config.Checkbox,
		model.FieldTypeDate:         &config.Date,
	}
	for _, fieldType := range model.FieldTypes() {
		count, err := promptCount(fieldType)
		if err != nil {
			return Plan{}, err
		}
		*counts[fieldType] = count
	}

	return Plan{
		Variants: variants,
		Scenarios: []Scenario{
			{Name: "interactive", Config: config},
		},
	}, nil
}

func promptVariants() ([]string, error) {
	var picked []string
	prompt := &survey.MultiSelect{
		Message: "Which variants should the run measure?",
		Options: []string{"vanilla", "runtime"},
		Default: []string{"vanilla", "runtime"},
	}
	if err := survey.AskOne(prompt, &picked, survey.WithValidator(survey.MinItems(1))); err != nil {
		return nil, translatePromptErr(err)
	}
	return picked, nil
}

func promptCount(fieldType model.FieldType) (int, error) {
	var answer string
	prompt := &survey.Input{
		Message: fmt.Sprintf("How many %s fields?", fieldType),
		Default: "0",
		Help:    fmt.Sprintf("Counts are clamped to [%d,%d].", model.MinFieldCount, model.MaxFieldCount),
	}
	if err := survey.AskOne(prompt, &answer, survey.WithValidator(countValidator)); err != nil {
		return 0, translatePromptErr(err)
	}
	count, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("collector: parse %s count: %w", fieldType, err)
	}
	return count, nil
}

func countValidator(ans interface{}) error {
	raw, ok := ans.(string)
	if !ok {
		return fmt.Errorf("expected a number")
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%q is not a whole number", raw)
	}
	if count < model.MinFieldCount || count > model.MaxFieldCount {
		return fmt.Errorf("count must be between %d and %d", model.MinFieldCount, model.MaxFieldCount)
	}
	return nil
}

func translatePromptErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrPromptCancelled
	}
	return err
}
