package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartcondominium/portal/internal/core/domain"
	"github.com/smartcondominium/portal/internal/core/ports"
)

type stubRegistrationService struct {
	applyFn func(draftID string, action ports.WizardAction, fields domain.Registration) (*ports.WizardResult, error)
	drafts  []string
}

func (s *stubRegistrationService) State(_ context.Context, draftID string) (*ports.WizardResult, error) {
	s.drafts = append(s.drafts, draftID)
	return &ports.WizardResult{Step: 1, Steps: domain.RegistrationSteps}, nil
}

func (s *stubRegistrationService) Apply(_ context.Context, draftID string, action ports.WizardAction, fields domain.Registration, _ ports.RequestMeta) (*ports.WizardResult, error) {
	s.drafts = append(s.drafts, draftID)
	return s.applyFn(draftID, action, fields)
}

func TestRegisterHandler_State_MintsDraftCookie(t *testing.T) {
	e := newEcho()
	stub := &stubRegistrationService{}
	h := NewRegisterHandler(stub, testCookies)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/register", nil), rec)

	if err := h.State(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if ck := findCookie(rec, testCookies.DraftName); ck == nil || ck.Value == "" {
		t.Fatal("expected a draft cookie")
	}
	if len(stub.drafts) != 1 || stub.drafts[0] == "" {
		t.Fatalf("service not called with a draft id: %v", stub.drafts)
	}
}

func TestRegisterHandler_Step_ValidationErrorIs422(t *testing.T) {
	e := newEcho()
	stub := &stubRegistrationService{
		applyFn: func(_ string, action ports.WizardAction, fields domain.Registration) (*ports.WizardResult, error) {
			if action != ports.WizardNext || fields.Nombre != "Luis" {
				t.Fatalf("unexpected args: %s %+v", action, fields)
			}
			return &ports.WizardResult{Step: 1, Steps: 3, Data: fields, Error: "El campo apellido es obligatorio."}, nil
		},
	}
	h := NewRegisterHandler(stub, testCookies)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/register/step", `{"action":"next","data":{"nombre":"Luis"}}`), rec)

	if err := h.Step(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var res ports.WizardResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if res.Step != 1 || res.Error == "" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRegisterHandler_Step_CompletionClearsDraft(t *testing.T) {
	e := newEcho()
	stub := &stubRegistrationService{
		applyFn: func(_ string, action ports.WizardAction, _ domain.Registration) (*ports.WizardResult, error) {
			return &ports.WizardResult{Step: 3, Steps: 3, Completed: true, Redirect: "/login"}, nil
		},
	}
	h := NewRegisterHandler(stub, testCookies)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/register/step", `{"action":"submit"}`), rec)

	if err := h.Step(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var cleared bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == testCookies.DraftName && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected the draft cookie to be expired")
	}
}

func TestRegisterHandler_Step_UnknownAction(t *testing.T) {
	e := newEcho()
	h := NewRegisterHandler(&stubRegistrationService{}, testCookies)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/register/step", `{"action":"skip"}`), rec)

	if err := h.Step(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
