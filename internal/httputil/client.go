// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"net/http"
	"time"

	"github.com/pdiddy/ftir-engine/pkg/types"
)

// defaultTimeout bounds interpretation calls when no timeout is configured.
// A timed-out request is a terminal failure for that attempt, never a
// retry trigger.
const defaultTimeout = 60 * time.Second

// NewClient builds an HTTP client from shared config: request timeout and
// a transport that stamps the configured User-Agent on every request.
func NewClient(cfg types.HTTPConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &userAgentTransport{agent: cfg.UserAgent, next: http.DefaultTransport},
	}
}

// userAgentTransport sets the User-Agent header when the request has none.
type userAgentTransport struct {
	agent string
	next  http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.agent != "" && req.Header.Get("User-Agent") == "" {
		clone := req.Clone(req.Context())
		clone.Header.Set("User-Agent", t.agent)
		return t.next.RoundTrip(clone)
	}
	return t.next.RoundTrip(req)
}
