package collector

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbench/pkg/model"
)

// Scenario is one named field configuration the suite measures.
type Scenario struct {
	Name   string                `yaml:"name" json:"name"`
	Config model.FieldTypeConfig `yaml:"config" json:"config"`
}

// Plan is the full sweep: which variants to drive and under which
// configurations. Scenarios run sequentially against one browser session.
type Plan struct {
	Variants  []string   `yaml:"variants" json:"variants"`
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// DefaultPlan covers both variants across small, mixed, and scalability
// configurations.
func DefaultPlan() Plan {
	return Plan{
		Variants: []string{"vanilla", "runtime"},
		Scenarios: []Scenario{
			{Name: "small", Config: model.FieldTypeConfig{Text: 3, Select: 1, Checkbox: 1}},
			{Name: "mixed", Config: model.FieldTypeConfig{Text: 5, Select: 2, Autocomplete: 2, Checkbox: 2, Date: 1}},
			{Name: "large", Config: model.FieldTypeConfig{Text: 10, Select: 5, Autocomplete: 5, Checkbox: 3, Date: 2}},
		},
	}
}

// LoadPlan reads a YAML sweep file. Missing variants default to both; an
// empty scenario list is an error since the run would measure nothing.
func LoadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("collector: read plan %s: %w", path, err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return Plan{}, fmt.Errorf("collector: parse plan %s: %w", path, err)
	}

	if len(plan.Variants) == 0 {
		plan.Variants = []string{"vanilla", "runtime"}
	}
	if len(plan.Scenarios) == 0 {
		return Plan{}, fmt.Errorf("collector: plan %s declares no scenarios", path)
	}
	for i, scenario := range plan.Scenarios {
		if scenario.Name == "" {
			return Plan{}, fmt.Errorf("collector: plan %s: scenario %d has no name", path, i)
		}
	}
	return plan, nil
}

// Measurements reports how many samples a full plan run records: one initial
// load per variant plus four scenario measurements per variant/config pair.
func (p Plan) Measurements() int {
	return len(p.Variants) + len(p.Variants)*len(p.Scenarios)*4
}
