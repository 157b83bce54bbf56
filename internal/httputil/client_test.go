// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ftir-engine/pkg/types"
)

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(types.HTTPConfig{})
	assert.Equal(t, defaultTimeout, client.Timeout)

	client = NewClient(types.HTTPConfig{Timeout: 5 * time.Second})
	assert.Equal(t, 5*time.Second, client.Timeout)
}

func TestUserAgentStamped(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
	}))
	t.Cleanup(srv.Close)

	client := NewClient(types.HTTPConfig{UserAgent: "ftir-engine/1.0"})
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "ftir-engine/1.0", gotAgent)
}

func TestUserAgentNotOverridden(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
	}))
	t.Cleanup(srv.Close)

	client := NewClient(types.HTTPConfig{UserAgent: "ftir-engine/1.0"})
	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "caller-agent/2.0")

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "caller-agent/2.0", gotAgent, "an explicit User-Agent wins over the configured one")
}

func TestEmptyUserAgentLeavesRequestAlone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	t.Cleanup(srv.Close)

	client := NewClient(types.HTTPConfig{})
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
}
