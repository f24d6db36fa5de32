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

func TestLocalClientGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3", req["model"])
		assert.Equal(t, false, req["stream"])
		_ = json.NewEncoder(w).Encode(map[string]string{"response": `{"ok":true}`})
	}))
	defer srv.Close()

	client := llm.NewLocalClient(srv.URL)
	out, err := client.Generate(context.Background(), "hello", llm.Options{Model: "llama3", Format: "json"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, out)
}

func TestLocalClientNon2xxIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	client := llm.NewLocalClient(srv.URL)
	_, err := client.Generate(context.Background(), "hello", llm.Options{Model: "llama3"})
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrTransport)
}

func TestLocalClientEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"response": ""})
	}))
	defer srv.Close()

	client := llm.NewLocalClient(srv.URL)
	_, err := client.Generate(context.Background(), "hello", llm.Options{})
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
}
