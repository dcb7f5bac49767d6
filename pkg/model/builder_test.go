package model

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildFieldCountMatchesConfigTotal(t *testing.T) {
	cases := []struct {
		name   string
		config FieldTypeConfig
		want   int
	}{
		{"empty", FieldTypeConfig{}, 0},
		{"single type", FieldTypeConfig{Text: 5}, 5},
		{"mixed", FieldTypeConfig{Text: 5, Select: 2, Autocomplete: 2, Checkbox: 2, Date: 1}, 12},
		{"max everything", FieldTypeConfig{Text: 20, Select: 20, Autocomplete: 20, Checkbox: 20, Date: 20}, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := Build(tc.config)
			if got := len(form.Fields); got != tc.want {
				t.Fatalf("expected %d fields, got %d", tc.want, got)
			}
		})
	}
}

func TestBuildClampsOutOfRangeCounts(t *testing.T) {
	form := Build(FieldTypeConfig{Text: 50, Select: -3, Date: 2})
	if got := len(form.Fields); got != 22 {
		t.Fatalf("expected counts clamped to [0,20], got %d fields", got)
	}
	if form.Config.Text != 20 {
		t.Fatalf("expected text count clamped to 20, got %d", form.Config.Text)
	}
	if form.Config.Select != 0 {
		t.Fatalf("expected negative select count clamped to 0, got %d", form.Config.Select)
	}
}

func TestBuildNamesAreUniqueAndStrictlyIncreasing(t *testing.T) {
	form := Build(FieldTypeConfig{Text: 4, Select: 3, Autocomplete: 2, Checkbox: 2, Date: 1})

	seen := make(map[string]struct{}, len(form.Fields))
	previous := 0
	for _, field := range form.Fields {
		if _, dup := seen[field.Name]; dup {
			t.Fatalf("duplicate field name %q", field.Name)
		}
		seen[field.Name] = struct{}{}

		index, err := strconv.Atoi(strings.TrimPrefix(field.Name, "field_"))
		if err != nil {
			t.Fatalf("unexpected field name %q: %v", field.Name, err)
		}
		if index <= previous {
			t.Fatalf("field counter not strictly increasing: %d after %d", index, previous)
		}
		previous = index
	}
}

func TestBuildGroupsFieldsByTypeInFixedOrder(t *testing.T) {
	form := Build(FieldTypeConfig{Text: 2, Select: 1, Autocomplete: 1, Checkbox: 1, Date: 1})

	var gotOrder []FieldType
	for _, field := range form.Fields {
		if len(gotOrder) == 0 || gotOrder[len(gotOrder)-1] != field.Type {
			gotOrder = append(gotOrder, field.Type)
		}
	}

	wantOrder := FieldTypes()
	if diff := cmp.Diff(wantOrder, gotOrder); diff != "" {
		t.Fatalf("type group order mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildLabelsNumberedWithinGroup(t *testing.T) {
	form := Build(FieldTypeConfig{Text: 3, Checkbox: 2})

	want := []string{
		"Text Field 1",
		"Text Field 2",
		"Text Field 3",
		"Checkbox Field 1",
		"Checkbox Field 2",
	}
	got := make([]string, 0, len(form.Fields))
	for _, field := range form.Fields {
		got = append(got, field.Label)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("label mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildAttachesOptionLists(t *testing.T) {
	form := Build(FieldTypeConfig{Text: 1, Select: 1, Autocomplete: 1})

	for _, field := range form.Fields {
		switch field.Type {
		case FieldTypeSelect:
			if len(field.Options) != 5 {
				t.Fatalf("expected 5 select options, got %d", len(field.Options))
			}
		case FieldTypeAutocomplete:
			if len(field.Options) != 8 {
				t.Fatalf("expected 8 autocomplete options, got %d", len(field.Options))
			}
		default:
			if len(field.Options) != 0 {
				t.Fatalf("expected no options for %s field, got %v", field.Type, field.Options)
			}
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	config := FieldTypeConfig{Text: 5, Select: 2, Autocomplete: 2, Checkbox: 2, Date: 1}

	first := Build(config)
	second := Build(config)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("rebuilding from identical config diverged (-first +second):\n%s", diff)
	}
}

func TestBuildExhaustiveCountRange(t *testing.T) {
	// Sweep a sample of the configuration space to pin the length invariant.
	for text := 0; text <= 20; text += 5 {
		for date := 0; date <= 20; date += 10 {
			config := FieldTypeConfig{Text: text, Date: date}
			form := Build(config)
			if got, want := len(form.Fields), text+date; got != want {
				t.Fatalf("config %+v: expected %d fields, got %d", config, want, got)
			}
		}
	}
}

func ExampleBuild() {
	form := Build(FieldTypeConfig{Text: 1, Checkbox: 1})
	for _, field := range form.Fields {
		fmt.Printf("%s %s %s\n", field.Name, field.Type, field.Label)
	}
	// Output:
	// field_1 text Text Field 1
	// field_2 checkbox Checkbox Field 1
}
