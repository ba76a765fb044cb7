package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestClassifyRole(t *testing.T) {
	cases := []struct {
		name string
		role *Role
		want RoleKind
	}{
		{"nil role", nil, RoleResident},
		{"admin", &Role{Tipo: "admin"}, RoleAdmin},
		{"admin mixed case", &Role{Tipo: " Admin "}, RoleAdmin},
		{"copropietario", &Role{Tipo: "copropietario"}, RoleResident},
		{"empty tipo", &Role{}, RoleResident},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyRole(tc.role); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestUserCode_AcceptsNumberAndString(t *testing.T) {
	var a, b struct {
		Codigo UserCode `json:"codigo"`
	}
	if err := json.Unmarshal([]byte(`{"codigo":42}`), &a); err != nil {
		t.Fatalf("number: %v", err)
	}
	if err := json.Unmarshal([]byte(`{"codigo":"42"}`), &b); err != nil {
		t.Fatalf("string: %v", err)
	}
	if a.Codigo != "42" || b.Codigo != "42" {
		t.Fatalf("expected 42 twice, got %q and %q", a.Codigo, b.Codigo)
	}
}

func TestIdentity_DisplayNameAndInitial(t *testing.T) {
	if got := (Identity{Nombre: "ana"}).AvatarInitial(); got != "A" {
		t.Fatalf("expected A, got %q", got)
	}
	anon := Identity{Nombre: "  "}
	if anon.DisplayName() != "Usuario" || anon.AvatarInitial() != "U" {
		t.Fatalf("unexpected fallback %q / %q", anon.DisplayName(), anon.AvatarInitial())
	}
	if got := (Identity{Nombre: "Ñandú"}).AvatarInitial(); got != "Ñ" {
		t.Fatalf("expected Ñ, got %q", got)
	}
}

func TestNewSession_RequiresBothHalves(t *testing.T) {
	id := &Identity{Nombre: "Ana", Rol: &Role{Tipo: "admin"}}
	if NewSession("s", nil, "tok") != nil {
		t.Fatal("session without identity")
	}
	if NewSession("s", id, " ") != nil {
		t.Fatal("session without token")
	}
	s := NewSession("s", id, "tok")
	if s == nil || s.Kind != RoleAdmin || !s.IsAdmin() {
		t.Fatalf("unexpected session %+v", s)
	}
	var none *Session
	if none.IsAdmin() {
		t.Fatal("nil session is not admin")
	}
}

func TestDecodeIdentity(t *testing.T) {
	id, err := DecodeIdentity([]byte(`{"codigo":7,"nombre":"Ana"}`))
	if err != nil || id.Nombre != "Ana" || id.Codigo != "7" {
		t.Fatalf("unexpected identity %+v, err %v", id, err)
	}
	for _, raw := range []string{"null", "{}", `{"desconocido":1}`} {
		if _, err := DecodeIdentity([]byte(raw)); !errors.Is(err, ErrEmptyIdentity) {
			t.Errorf("%s: expected ErrEmptyIdentity, got %v", raw, err)
		}
	}
	if _, err := DecodeIdentity([]byte("{not json")); err == nil {
		t.Error("expected a syntax error")
	}
}
