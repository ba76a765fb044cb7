// Package backend talks to the condominium REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartcondominium/portal/internal/api/metrics"
	"github.com/smartcondominium/portal/internal/core/domain"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 64 << 10
)

// Config describes how to reach the API.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client implements ports.AuthAPI, ports.ResidentAPI and ports.PaymentAPI.
type Client struct {
	http    *http.Client
	baseURL string
	log     zerolog.Logger
}

// New returns a client. A zero timeout falls back to 15s.
func New(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		log:     log,
	}
}

// call describes one API request. Authenticated calls require token.
type call struct {
	method        string
	path          string
	query         url.Values
	token         string
	authenticated bool
	body          any
}

func (c *Client) do(ctx context.Context, in call, out any) error {
	if in.authenticated && strings.TrimSpace(in.token) == "" {
		return domain.ErrNotAuthorized
	}

	var body io.Reader
	if in.body != nil {
		b, err := json.Marshal(in.body)
		if err != nil {
			return fmt.Errorf("encode %s: %w", in.path, err)
		}
		body = bytes.NewReader(b)
	}

	target := c.baseURL + in.path
	if len(in.query) > 0 {
		target += "?" + in.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, in.method, target, body)
	if err != nil {
		return fmt.Errorf("build %s: %w", in.path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if in.authenticated {
		req.Header.Set("Authorization", "Token "+in.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.BackendRequestDuration.WithLabelValues(in.path, "network").Observe(time.Since(start).Seconds())
		c.log.Warn().Err(err).Str("method", in.method).Str("path", in.path).Msg("backend request failed")
		return fmt.Errorf("%w: %s %s: %v", domain.ErrBackendUnavailable, in.method, in.path, err)
	}
	defer resp.Body.Close()
	metrics.BackendRequestDuration.WithLabelValues(in.path, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.Debug().Int("status", resp.StatusCode).Str("path", in.path).Msg("backend rejected request")
		return &domain.RemoteError{Status: resp.StatusCode, Message: remoteMessage(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", domain.ErrBackendUnavailable, in.path, err)
	}
	return nil
}

// remoteMessage extracts the message of an error body: `detail`, then
// `error`, then every field error joined with a space. Field keys are
// visited in sorted order.
func remoteMessage(raw []byte) string {
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	for _, k := range []string{"detail", "error"} {
		if s, ok := body[k].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var parts []string
	for _, k := range keys {
		parts = appendMessages(parts, body[k])
	}
	return strings.Join(parts, " ")
}

func appendMessages(dst []string, v any) []string {
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			dst = append(dst, s)
		}
	case []any:
		for _, e := range t {
			dst = appendMessages(dst, e)
		}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			dst = appendMessages(dst, t[k])
		}
	}
	return dst
}

// page accepts both a bare JSON array and a paginated {"results": [...]}.
type page[T any] struct {
	Results []T
}

func (p *page[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		return json.Unmarshal(b, &p.Results)
	}
	var wrapped struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return err
	}
	p.Results = wrapped.Results
	return nil
}
