// Package visitorpass verifies the access passes residents hand to their
// visitors. A pass travels as base64 encoded JSON in the `data` query
// parameter; verification needs no session and no network call.
package visitorpass

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var (
	ErrMissing = errors.New("No se proporcionaron datos del pase.")
	ErrInvalid = errors.New("Los datos del pase son inválidos.")
)

// Pass is the decoded payload.
type Pass struct {
	Nombre           string `json:"nombre"`
	Carnet           string `json:"carnet"`
	PropiedadDestino any    `json:"propiedad_destino"`
	ValidoDesde      string `json:"valido_desde"`
	ValidoHasta      string `json:"valido_hasta"`
}

// Decode parses raw. Standard and URL-safe alphabets are accepted, with or
// without padding.
func Decode(raw string) (*Pass, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrMissing
	}
	data, err := decodeBase64(raw)
	if err != nil {
		return nil, ErrInvalid
	}
	var p Pass
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, ErrInvalid
	}
	if _, _, err := p.window(time.UTC); err != nil {
		return nil, ErrInvalid
	}
	return &p, nil
}

func decodeBase64(raw string) ([]byte, error) {
	var lastErr error
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding, base64.RawStdEncoding,
		base64.URLEncoding, base64.RawURLEncoding,
	} {
		b, err := enc.DecodeString(raw)
		if err == nil {
			return b, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// window is [desde 00:00:00, hasta 23:59:59] in loc.
func (p Pass) window(loc *time.Location) (time.Time, time.Time, error) {
	from, err := time.ParseInLocation(dateLayout, strings.TrimSpace(p.ValidoDesde), loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := time.ParseInLocation(dateLayout, strings.TrimSpace(p.ValidoHasta), loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, loc)
	return from, end, nil
}

// ValidAt reports whether now falls inside the pass window, bounds
// included, with dates interpreted in loc.
func (p Pass) ValidAt(now time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	from, to, err := p.window(loc)
	if err != nil {
		return false
	}
	now = now.In(loc)
	return !now.Before(from) && !now.After(to)
}

// Verification is the rendered result of checking a pass.
type Verification struct {
	Valid    bool   `json:"valid"`
	Headline string `json:"headline"`
	Pass     *Pass  `json:"pass,omitempty"`
	Error    string `json:"error,omitempty"`
	Footer   string `json:"footer"`
}

const footer = "Verificado por SmartCondominium"

// Verify decodes raw and checks it against now. Decoding problems are
// reported in the Error field; Verify itself never fails.
func Verify(raw string, now time.Time, loc *time.Location) Verification {
	p, err := Decode(raw)
	if err != nil {
		return Verification{Error: err.Error(), Footer: footer}
	}
	v := Verification{Pass: p, Valid: p.ValidAt(now, loc), Footer: footer}
	if v.Valid {
		v.Headline = "Pase de Acceso Válido"
	} else {
		v.Headline = "Pase de Acceso Inválido"
	}
	return v
}
