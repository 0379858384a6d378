package huggingface

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		cfg := &Config{}
		assert.ErrorIs(t, cfg.Validate(), ErrConfigMissingAPIKey)
	})

	t.Run("fills defaults", func(t *testing.T) {
		cfg := &Config{APIKey: "hf-test"}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
		assert.Equal(t, DefaultModel, cfg.Model)
		assert.Equal(t, 30, cfg.TimeoutSeconds)
	})
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&Config{APIKey: "hf-test", BaseURL: server.URL})
	require.NoError(t, err)
	return client
}

func TestClient_Summarize(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/"+DefaultModel, r.URL.Path)
		assert.Equal(t, "Bearer hf-test", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"summary_text": "Mild seaside weather with light winds."}]`))
	})

	summary, err := client.Summarize(context.Background(), "long weather text")
	require.NoError(t, err)
	assert.Equal(t, "Mild seaside weather with light winds.", summary)
}

func TestClient_Summarize_UpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "model loading"}`, http.StatusServiceUnavailable)
	})

	_, err := client.Summarize(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestClient_Summarize_EmptyReply(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := client.Summarize(context.Background(), "text")
	assert.ErrorIs(t, err, ErrEmptyReply)
}
