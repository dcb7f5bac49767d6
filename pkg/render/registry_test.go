package render

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formbench/pkg/model"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/html; charset=utf-8" }
func (s stubRenderer) Render(context.Context, model.FormModel, Options) ([]byte, error) {
	return []byte("<form></form>"), nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(stubRenderer{name: "vanilla"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	renderer, err := registry.Get("vanilla")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if renderer.Name() != "vanilla" {
		t.Fatalf("unexpected renderer %q", renderer.Name())
	}
}

func TestRegistryRejectsDuplicatesAndNil(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected error for nil renderer")
	}
	if err := registry.Register(stubRenderer{name: "runtime"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := registry.Register(stubRenderer{name: "runtime"}); err == nil {
		t.Fatalf("expected error for duplicate name")
	}
	if _, err := registry.Get("missing"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"vanilla", "runtime"} {
		if err := registry.Register(stubRenderer{name: name}); err != nil {
			t.Fatalf("register %q failed: %v", name, err)
		}
	}
	names := registry.Names()
	if len(names) != 2 || names[0] != "runtime" || names[1] != "vanilla" {
		t.Fatalf("expected sorted names [runtime vanilla], got %v", names)
	}
}
