package domain

import "strings"

// Session pairs an identity with the opaque bearer token issued by the
// condominium API. The role is classified once, here.
type Session struct {
	ID       string   `json:"-"`
	Identity Identity `json:"identity"`
	Token    string   `json:"-"`
	Kind     RoleKind `json:"kind"`
}

// NewSession materializes a session. It returns nil when either half is
// missing: a token without identity, or an identity without token, is not a
// session.
func NewSession(id string, identity *Identity, token string) *Session {
	if identity == nil || strings.TrimSpace(token) == "" {
		return nil
	}
	return &Session{
		ID:       id,
		Identity: *identity,
		Token:    token,
		Kind:     identity.Kind(),
	}
}

// IsAdmin is the single capability predicate of the portal.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Kind == RoleAdmin
}
