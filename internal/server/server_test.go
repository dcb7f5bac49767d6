package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	s, err := New(
		WithLogger(log),
		WithClock(func() time.Time {
			return time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
		}),
	)
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	return s
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func postJSON(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func postForm(t *testing.T, s *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestLandingLinksBothVariants(t *testing.T) {
	rec := get(t, testServer(t), "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`href="/forms/runtime"`, `href="/forms/vanilla"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("landing missing %q:\n%s", want, body)
		}
	}
}

func TestVanillaFormRendersConfiguredFieldCount(t *testing.T) {
	rec := get(t, testServer(t), "/forms/vanilla?text=5&select=2&autocomplete=2&checkbox=2&date=1")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if got := strings.Count(body, `data-field="`); got != 12 {
		t.Fatalf("expected 12 rendered fields, got %d", got)
	}
	if got := strings.Count(body, `type="number"`); got != 5 {
		t.Fatalf("expected 5 configuration inputs, got %d", got)
	}
	if !strings.Contains(body, `data-field-count="12"`) {
		t.Fatalf("missing field count marker")
	}
}

func TestRuntimeFormShipsBootPayload(t *testing.T) {
	rec := get(t, testServer(t), "/forms/runtime?text=2")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `id="formbench-boot"`) {
		t.Fatalf("missing boot payload")
	}
	if !strings.Contains(body, `id="formbench-rules"`) {
		t.Fatalf("missing rules payload")
	}
	if !strings.Contains(body, `data-formbench-form="runtime"`) {
		t.Fatalf("missing runtime container")
	}
}

func TestUnknownVariantIsNotFound(t *testing.T) {
	if rec := get(t, testServer(t), "/forms/svelte"); rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestVanillaSubmitInvalidShowsErrors(t *testing.T) {
	rec := postForm(t, testServer(t), "/forms/vanilla/submit", url.Values{
		"config_text": {"1"},
		"field_1":     {"ab"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Must be at least 3 characters") {
		t.Fatalf("missing min-length error:\n%s", body)
	}
	if strings.Contains(body, "data-formbench-success") {
		t.Fatalf("invalid submit must not show success indicator")
	}
	// Submitted value survives the re-render.
	if !strings.Contains(body, `value="ab"`) {
		t.Fatalf("submitted value was not echoed back")
	}
}

func TestVanillaSubmitValidShowsTimestamp(t *testing.T) {
	rec := postForm(t, testServer(t), "/forms/vanilla/submit", url.Values{
		"config_text": {"1"},
		"field_1":     {"hello world"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "data-formbench-success") {
		t.Fatalf("missing success indicator:\n%s", body)
	}
	if !strings.Contains(body, "2026-03-10 09:30:00") {
		t.Fatalf("missing submission timestamp")
	}
}

func TestValidateFieldEndpointReturnsMessages(t *testing.T) {
	s := testServer(t)

	rec := postJSON(t, s, "/forms/vanilla/validate-field",
		`{"name":"field_1","value":"","config":{"text":1}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Messages []string `json:"messages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Messages) == 0 {
		t.Fatalf("expected validation messages for empty required field")
	}

	rec = postJSON(t, s, "/forms/vanilla/validate-field",
		`{"name":"field_1","value":"abc","config":{"text":1}}`)
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Messages) != 0 {
		t.Fatalf("expected no messages for valid value, got %v", resp.Messages)
	}
}

func TestRuntimeSubmitValidatesPayload(t *testing.T) {
	s := testServer(t)

	rec := postJSON(t, s, "/forms/runtime/submit",
		`{"values":{"field_1":""},"config":{"text":1}}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	var invalid struct {
		OK         bool                `json:"ok"`
		Errors     map[string][]string `json:"errors"`
		FormErrors []string            `json:"formErrors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &invalid); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if invalid.OK || len(invalid.Errors["field_1"]) == 0 || len(invalid.FormErrors) == 0 {
		t.Fatalf("unexpected invalid-submit response: %+v", invalid)
	}

	rec = postJSON(t, s, "/forms/runtime/submit",
		`{"values":{"field_1":"hello world"},"config":{"text":1}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var valid struct {
		OK          bool   `json:"ok"`
		SubmittedAt string `json:"submittedAt"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &valid); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !valid.OK || valid.SubmittedAt != "2026-03-10 09:30:00" {
		t.Fatalf("unexpected valid-submit response: %+v", valid)
	}
}

func TestSchemaEndpointExportsFormModel(t *testing.T) {
	rec := get(t, testServer(t), "/api/schema?text=1&checkbox=1")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var doc struct {
		OpenAPI    string `json:"openapi"`
		Components struct {
			Schemas map[string]struct {
				Required   []string                   `json:"required"`
				Properties map[string]json.RawMessage `json:"properties"`
			} `json:"schemas"`
		} `json:"components"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode schema document: %v", err)
	}
	if doc.OpenAPI != "3.0.3" {
		t.Fatalf("openapi version = %q", doc.OpenAPI)
	}
	values, ok := doc.Components.Schemas["FormValues"]
	if !ok {
		t.Fatalf("missing FormValues schema")
	}
	if len(values.Properties) != 2 {
		t.Fatalf("expected 2 value properties, got %d", len(values.Properties))
	}
	if len(values.Required) != 1 || values.Required[0] != "field_1" {
		t.Fatalf("unexpected required list %v", values.Required)
	}
}

func TestAssetsServeBothBundles(t *testing.T) {
	s := testServer(t)

	for _, path := range []string{
		"/assets/formbench.css",
		"/assets/formbench-vanilla.js",
		"/assets/formbench-runtime.js",
	} {
		if rec := get(t, s, path); rec.Code != http.StatusOK {
			t.Fatalf("GET %s = %d, want 200", path, rec.Code)
		}
	}
}
