package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smartcondominium/portal/internal/api/middleware"
	"github.com/smartcondominium/portal/internal/core/domain"
	"github.com/smartcondominium/portal/internal/core/guard"
	"github.com/smartcondominium/portal/internal/core/ports"
	"github.com/smartcondominium/portal/internal/infrastructure/session"
)

var testCookies = middleware.CookieConfig{
	Name:      "condo_session",
	DraftName: "condo_session_draft",
	Secret:    "0123456789abcdef0123456789abcdef",
	TTL:       time.Hour,
	DraftTTL:  15 * time.Minute,
}

type stubAuthService struct {
	loginFn  func(ctx context.Context, gate ports.Gate, email, password string) (*ports.LoginResult, error)
	logoutFn func(ctx context.Context, gate ports.Gate) error
}

func (s *stubAuthService) Login(ctx context.Context, gate ports.Gate, email, password string, _ ports.RequestMeta) (*ports.LoginResult, error) {
	return s.loginFn(ctx, gate, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, gate ports.Gate, _ ports.RequestMeta) error {
	return s.logoutFn(ctx, gate)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// restoredGate returns a guard restored against store for sid.
func restoredGate(t *testing.T, store *session.MemoryStore, sid string) *guard.Guard {
	t.Helper()
	g := guard.New(store, sid)
	if err := g.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	return g
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	store := session.NewMemoryStore(time.Hour, 0)
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, gate ports.Gate, email, password string) (*ports.LoginResult, error) {
			if email != "ana@condo.bo" || password != "secreto123" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			id := domain.Identity{Nombre: "Ana", Rol: &domain.Role{Tipo: "admin"}}
			if err := store.Save(ctx, "sid-1", id, "tok"); err != nil {
				t.Fatalf("save: %v", err)
			}
			sess := domain.NewSession("sid-1", &id, "tok")
			if err := gate.Login("sid-1", sess); err != nil {
				t.Fatalf("gate login: %v", err)
			}
			return &ports.LoginResult{Session: sess, Redirect: guard.PathRoot}, nil
		},
	}
	h := NewAuthHandler(stub, testCookies)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/login", `{"email":"ana@condo.bo","password":"secreto123"}`), rec)
	g := restoredGate(t, store, "")
	c.Set(middleware.ContextGate, g)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if g.State() != guard.Authenticated {
		t.Fatalf("expected guard Authenticated, got %s", g.State())
	}
	if ck := findCookie(rec, testCookies.Name); ck == nil || ck.Value == "" || !ck.HttpOnly {
		t.Fatalf("expected signed HttpOnly session cookie, got %+v", ck)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["redirect"] != "/" || resp["role"] != "admin" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, gate ports.Gate, email, password string) (*ports.LoginResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, testCookies)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/login", `{"email":"no-es-correo"}`), rec)
	c.Set(middleware.ContextGate, restoredGate(t, session.NewMemoryStore(0, 0), ""))

	err := h.Login(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "email") || !strings.Contains(err.Error(), "password") {
		t.Fatalf("expected both fields in message, got %q", err.Error())
	}
}

func TestAuthHandler_Login_NotJSON(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{}, testCookies)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/login", "not-json"), rec)

	_ = h.Login(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_RejectedKeepsNoCookie(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, gate ports.Gate, email, password string) (*ports.LoginResult, error) {
			return nil, &domain.FlowError{Message: domain.MsgLoginFailed, Err: &domain.RemoteError{Status: 400}}
		},
	}
	h := NewAuthHandler(stub, testCookies)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/login", `{"email":"ana@condo.bo","password":"x"}`), rec)
	c.Set(middleware.ContextGate, restoredGate(t, session.NewMemoryStore(0, 0), ""))

	err := h.Login(c)
	var fe *domain.FlowError
	if !errors.As(err, &fe) || fe.Message != domain.MsgLoginFailed {
		t.Fatalf("expected login flow error, got %v", err)
	}
	if findCookie(rec, testCookies.Name) != nil {
		t.Fatal("no cookie may be issued on failure")
	}
}

func TestAuthHandler_Login_WithoutGuard(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{}, testCookies)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/login", `{"email":"ana@condo.bo","password":"x"}`), rec)

	if err := h.Login(c); !errors.Is(err, domain.ErrSessionRequired) {
		t.Fatalf("expected ErrSessionRequired, got %v", err)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	e := newEcho()
	store := session.NewMemoryStore(time.Hour, 0)
	_ = store.Save(context.Background(), "sid-1", domain.Identity{Nombre: "Ana"}, "tok")

	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, gate ports.Gate) error {
			return gate.Logout(ctx)
		},
	}
	h := NewAuthHandler(stub, testCookies)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/logout", nil), rec)
	g := restoredGate(t, store, "sid-1")
	c.Set(middleware.ContextGate, g)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if g.State() != guard.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %s", g.State())
	}
	if sess, _ := store.Load(context.Background(), "sid-1"); sess != nil {
		t.Fatal("session still stored after logout")
	}
	if ck := findCookie(rec, testCookies.Name); ck == nil || ck.MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got %+v", ck)
	}
	if !strings.Contains(rec.Body.String(), `"redirect":"/login"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestAuthHandler_Page(t *testing.T) {
	e := newEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/login", nil), rec)

	if err := NewAuthHandler(&stubAuthService{}, testCookies).Page(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"register_path":"/register"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}
