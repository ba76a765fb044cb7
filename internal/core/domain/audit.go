package domain

import "time"

// AuditKind names an authentication event recorded by the gateway.
type AuditKind string

const (
	AuditLogin          AuditKind = "login"
	AuditLoginFailed    AuditKind = "login_failed"
	AuditLogout         AuditKind = "logout"
	AuditRegister       AuditKind = "register"
	AuditRegisterFailed AuditKind = "register_failed"
	AuditForcedReauth   AuditKind = "forced_reauth"
)

// AuditEvent is an entry of the authentication audit trail.
type AuditEvent struct {
	Kind      AuditKind `json:"kind" bson:"kind"`
	Subject   string    `json:"subject" bson:"subject"`
	UserCode  string    `json:"user_code,omitempty" bson:"user_code,omitempty"`
	RoleKind  RoleKind  `json:"role_kind,omitempty" bson:"role_kind,omitempty"`
	SessionID string    `json:"session_id,omitempty" bson:"session_id,omitempty"`
	Reason    string    `json:"reason,omitempty" bson:"reason,omitempty"`
	IP        string    `json:"ip,omitempty" bson:"ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty" bson:"user_agent,omitempty"`
	At        time.Time `json:"at" bson:"at"`
}
