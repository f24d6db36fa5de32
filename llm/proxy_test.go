package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llmrts/arena/llm"
)

func TestNewProxyClientMissingKey(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")
	_, err := llm.NewProxyClient(llm.ProviderDeepSeek)
	require.Error(t, err)
}

func TestNewProxyClientUnknownProvider(t *testing.T) {
	_, err := llm.NewProxyClient(llm.Provider("bogus"))
	require.Error(t, err)
}

func TestNewProxyClientResolvesEnvKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	client, err := llm.NewProxyClient(llm.ProviderOpenAI)
	require.NoError(t, err)
	assert.Equal(t, "sk-test", client.APIKey)
	assert.Equal(t, "https://api.openai.com", client.BaseURL)
}

func TestProxyClientGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		rf, ok := req["response_format"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "json_object", rf["type"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": `{"goal":"expand"}`}},
			},
		})
	}))
	defer srv.Close()

	client := &llm.ProxyClient{Provider: llm.ProviderOpenAI, BaseURL: srv.URL, APIKey: "test-key"}
	out, err := client.Generate(context.Background(), "plan", llm.Options{Model: "gpt-test", Format: "json"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"goal":"expand"}`, out)
}

func TestProxyClientUpstreamErrorPreservesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer srv.Close()

	client := &llm.ProxyClient{Provider: llm.ProviderDeepSeek, BaseURL: srv.URL, APIKey: "test-key"}
	_, err := client.Generate(context.Background(), "plan", llm.Options{Model: "deepseek-test"})
	require.Error(t, err)

	var upstream *llm.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
	assert.Equal(t, llm.ProviderDeepSeek, upstream.Provider)
}

func TestProxyClientEmptyChoicesIsEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []map[string]any{}})
	}))
	defer srv.Close()

	client := &llm.ProxyClient{Provider: llm.ProviderOpenRouter, BaseURL: srv.URL, APIKey: "test-key"}
	_, err := client.Generate(context.Background(), "plan", llm.Options{})
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
}
