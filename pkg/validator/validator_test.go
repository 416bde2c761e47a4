package validator_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgvalidator "github.com/ghuser/glossary/pkg/validator"
)

type createReq struct {
	Name        string `json:"name"        validate:"required,notblank,max=255"`
	Description string `json:"description" validate:"required,notblank"`
}

type updateReq struct {
	Name        *string `json:"name,omitempty"        validate:"required_without=Description,omitempty,notblank,max=255"`
	Description *string `json:"description,omitempty" validate:"required_without=Name,omitempty,notblank"`
}

func TestValidate_valid(t *testing.T) {
	s := createReq{Name: "API", Description: "a description"}
	if err := pkgvalidator.Validate(&s); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidate_missingRequired(t *testing.T) {
	s := createReq{}
	if err := pkgvalidator.Validate(&s); err == nil {
		t.Fatal("expected validation error for empty struct")
	}
}

func TestFormatValidationErrors_required(t *testing.T) {
	s := createReq{}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["name"] != "This field is required" {
		t.Errorf("unexpected name message: %q", m["name"])
	}
	if m["description"] != "This field is required" {
		t.Errorf("unexpected description message: %q", m["description"])
	}
}

func TestFormatValidationErrors_notblank(t *testing.T) {
	s := createReq{Name: "   ", Description: "ok"}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["name"] != "Must not be blank" {
		t.Errorf("unexpected name message: %q", m["name"])
	}
}

func TestFormatValidationErrors_max(t *testing.T) {
	s := createReq{Name: strings.Repeat("x", 256), Description: "ok"}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["name"] != "Maximum length is 255" {
		t.Errorf("unexpected name message: %q", m["name"])
	}
}

func TestFormatValidationErrors_requiredWithout(t *testing.T) {
	s := updateReq{}
	err := pkgvalidator.Validate(&s)
	if err == nil {
		t.Fatal("expected validation error when both fields absent")
	}
	m := pkgvalidator.FormatValidationErrors(err)
	if len(m) == 0 {
		t.Fatal("expected field errors for empty patch")
	}
	for field, msg := range m {
		if !strings.Contains(msg, "is required") {
			t.Errorf("unexpected message for %q: %q", field, msg)
		}
	}
}

func TestValidate_patchWithOnlyName(t *testing.T) {
	name := "API"
	s := updateReq{Name: &name}
	if err := pkgvalidator.Validate(&s); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidate_patchWithBlankName(t *testing.T) {
	name := "   "
	s := updateReq{Name: &name}
	if err := pkgvalidator.Validate(&s); err == nil {
		t.Fatal("expected validation error for blank name")
	}
}

func TestFormatValidationErrors_nonValidationError(t *testing.T) {
	m := pkgvalidator.FormatValidationErrors(http.ErrNoCookie)
	if len(m) != 0 {
		t.Errorf("expected empty map for non-validation error, got %v", m)
	}
}

// --- ValidateRequest ---

func TestValidateRequest_valid(t *testing.T) {
	body := `{"name":"API","description":"Application Programming Interface"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	req, ok := pkgvalidator.ValidateRequest[createReq](w, r)
	if !ok {
		t.Fatalf("expected ok=true, got false. Response: %s", w.Body.String())
	}
	if req.Name != "API" {
		t.Errorf("unexpected Name: %q", req.Name)
	}
}

func TestValidateRequest_invalidJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{bad json"))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[createReq](w, r)
	if ok {
		t.Fatal("expected ok=false for malformed JSON")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid JSON") {
		t.Errorf("expected 'Invalid JSON' in body, got: %s", w.Body.String())
	}
}

func TestValidateRequest_missingField(t *testing.T) {
	body := `{"name":"API"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[createReq](w, r)
	if ok {
		t.Fatal("expected ok=false for missing description")
	}
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Validation failed") {
		t.Errorf("expected 'Validation failed' in body, got: %s", w.Body.String())
	}
}

func TestValidateRequest_unknownField(t *testing.T) {
	body := `{"name":"API","description":"desc","color":"red"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[createReq](w, r)
	if ok {
		t.Fatal("expected ok=false for unknown field")
	}
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "color") {
		t.Errorf("expected offending field named in body, got: %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Unknown field") {
		t.Errorf("expected 'Unknown field' in body, got: %s", w.Body.String())
	}
}

func TestValidateRequest_emptyPatch(t *testing.T) {
	body := `{}`
	r := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[updateReq](w, r)
	if ok {
		t.Fatal("expected ok=false for empty patch body")
	}
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
}
