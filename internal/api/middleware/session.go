package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// ContextSessionID holds the session id read from the cookie, "" when
	// the cookie is missing or invalid.
	ContextSessionID = "session_id"

	issuer         = "smartcondominium-portal"
	subjectSession = "session"
	subjectDraft   = "draft"
)

// CookieConfig describes the signed cookies the gateway issues. Both carry
// an HS256 JWT whose only payload is an opaque id.
type CookieConfig struct {
	Name      string
	DraftName string
	Secret    string
	TTL       time.Duration
	DraftTTL  time.Duration
	Secure    bool
}

type idClaims struct {
	ID string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionCookie reads the session cookie and injects the session id.
// It never rejects a request; the guard decides what an absent session
// means for the route.
func SessionCookie(cfg CookieConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if ck, err := c.Cookie(cfg.Name); err == nil {
				sid, _ = parseID(ck.Value, cfg.Secret, subjectSession)
			}
			c.Set(ContextSessionID, sid)
			return next(c)
		}
	}
}

// SessionID returns the id injected by SessionCookie.
func SessionID(c echo.Context) string {
	sid, _ := c.Get(ContextSessionID).(string)
	return sid
}

// IssueSessionCookie sets the signed cookie for sid.
func IssueSessionCookie(c echo.Context, cfg CookieConfig, sid string) error {
	value, err := signID(sid, cfg.Secret, subjectSession, cfg.TTL)
	if err != nil {
		return err
	}
	c.SetCookie(cookie(cfg.Name, value, cfg.TTL, cfg.Secure))
	return nil
}

// ClearSessionCookie expires the session cookie in the browser.
func ClearSessionCookie(c echo.Context, cfg CookieConfig) {
	c.SetCookie(cookie(cfg.Name, "", -1, cfg.Secure))
}

// DraftID returns the registration draft id of the caller, minting and
// setting a new draft cookie when none is valid.
func DraftID(c echo.Context, cfg CookieConfig) (string, error) {
	if ck, err := c.Cookie(cfg.DraftName); err == nil {
		if id, err := parseID(ck.Value, cfg.Secret, subjectDraft); err == nil {
			return id, nil
		}
	}
	id := uuid.NewString()
	value, err := signID(id, cfg.Secret, subjectDraft, cfg.DraftTTL)
	if err != nil {
		return "", err
	}
	c.SetCookie(cookie(cfg.DraftName, value, cfg.DraftTTL, cfg.Secure))
	return id, nil
}

// ClearDraftCookie drops the draft cookie once registration completes.
func ClearDraftCookie(c echo.Context, cfg CookieConfig) {
	c.SetCookie(cookie(cfg.DraftName, "", -1, cfg.Secure))
}

func signID(id, secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := idClaims{
		ID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseID(value, secret, subject string) (string, error) {
	var claims idClaims
	tkn, err := jwt.ParseWithClaims(value, &claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithSubject(subject),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tkn.Valid {
		return "", errors.New("invalid cookie")
	}
	if claims.ID == "" {
		return "", errors.New("cookie without id")
	}
	return claims.ID, nil
}

// cookie builds an HttpOnly cookie; a negative ttl deletes it.
func cookie(name, value string, ttl time.Duration, secure bool) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		ck.MaxAge = -1
		ck.Expires = time.Unix(0, 0)
	} else {
		ck.MaxAge = int(ttl.Seconds())
		ck.Expires = time.Now().Add(ttl)
	}
	return ck
}
