// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/autoblog/pkg/types"
)

func TestNewClient_SetsUserAgent(t *testing.T) {
	tests := []struct {
		name string
		cfg  types.HTTPConfig
		want string
	}{
		{"default", types.HTTPConfig{}, DefaultUserAgent},
		{"configured", types.HTTPConfig{UserAgent: "blog-bot/2"}, "blog-bot/2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get("User-Agent")
			}))
			defer ts.Close()

			req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
			require.NoError(t, err)
			req.Header.Set("User-Agent", "overridden")

			resp, err := NewClient(tt.cfg).Do(req)
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, tt.want, got)
			assert.Equal(t, "overridden", req.Header.Get("User-Agent"), "caller's request is not mutated")
		})
	}
}

func TestNewClient_Timeout(t *testing.T) {
	assert.Zero(t, NewClient(types.HTTPConfig{}).Timeout)

	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	client := NewClient(types.HTTPConfig{Timeout: 20 * time.Millisecond})
	_, err := client.Get(ts.URL)
	assert.Error(t, err)
}
