package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// RoleKind is the only role distinction the portal acts on.
type RoleKind string

const (
	RoleAdmin    RoleKind = "admin"
	RoleResident RoleKind = "resident"
)

// UserCode is the backend's user key. The API sends it either as a JSON
// number or a string; both decode to the same textual form.
type UserCode string

func (c *UserCode) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*c = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = UserCode(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = UserCode(n.String())
	return nil
}

// Role is the backend role record attached to a user.
type Role struct {
	ID          int    `json:"id,omitempty"`
	Tipo        string `json:"tipo,omitempty"`
	Descripcion string `json:"descripcion,omitempty"`
}

// Identity is the authenticated user's profile as returned by the
// condominium API on login.
type Identity struct {
	Codigo   UserCode `json:"codigo,omitempty"`
	Nombre   string   `json:"nombre"`
	Apellido string   `json:"apellido,omitempty"`
	Correo   string   `json:"correo,omitempty"`
	Sexo     string   `json:"sexo,omitempty"`
	Telefono string   `json:"telefono,omitempty"`
	Estado   string   `json:"estado,omitempty"`
	IDRol    int      `json:"idrol,omitempty"`
	Rol      *Role    `json:"rol,omitempty"`
	URLImg   string   `json:"url_img,omitempty"`
}

// ErrEmptyIdentity marks a stored identity that decodes to nothing.
var ErrEmptyIdentity = errors.New("empty identity")

// DecodeIdentity parses a persisted identity. JSON null and an object with
// no known field are rejected: a token next to such a value is not a
// session.
func DecodeIdentity(raw []byte) (*Identity, error) {
	var id Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		return nil, err
	}
	if id == (Identity{}) {
		return nil, ErrEmptyIdentity
	}
	return &id, nil
}

// Kind classifies the identity's role. Missing role data and any role other
// than admin classify as resident.
func (i Identity) Kind() RoleKind {
	return ClassifyRole(i.Rol)
}

// ClassifyRole maps a raw role record onto RoleKind.
func ClassifyRole(r *Role) RoleKind {
	if r == nil {
		return RoleResident
	}
	if strings.EqualFold(strings.TrimSpace(r.Tipo), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleResident
}

// DisplayName falls back to "Usuario" when the API sent no name.
func (i Identity) DisplayName() string {
	if n := strings.TrimSpace(i.Nombre); n != "" {
		return n
	}
	return "Usuario"
}

// AvatarInitial is the first rune of the display name.
func (i Identity) AvatarInitial() string {
	for _, r := range i.DisplayName() {
		return strings.ToUpper(string(r))
	}
	return ""
}
