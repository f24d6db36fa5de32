package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// LocalClient talks to an Ollama-style local model server: POST
// /api/generate with {model, prompt, stream:false, format}, response text
// in the "response" field. Grounded on the local backend contract.
type LocalClient struct {
	// Host is the base URL, e.g. "http://localhost:11434". Required.
	Host string
	// HTTPClient is the transport used for requests. Defaults to a fresh
	// http.Client per call if nil, built from Options' timeouts.
	HTTPClient *http.Client
}

// NewLocalClient builds a LocalClient for the given host. host defaults to
// "http://localhost:11434" (the MODEL_HOST default) when empty.
func NewLocalClient(host string) *LocalClient {
	if strings.TrimSpace(host) == "" {
		host = "http://localhost:11434"
	}
	return &LocalClient{Host: host}
}

type localRequest struct {
	Model string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool `json:"stream"`
	Format string `json:"format,omitempty"`
}

type localResponse struct {
	Response string `json:"response"`
}

// Generate implements Generator against the local backend.
func (c *LocalClient) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	opts = opts.withDefaults()

	body, err := json.Marshal(localRequest{
		Model: opts.Model,
		Prompt: prompt,
		Stream: false,
		Format: opts.Format,
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrTransport, err)
	}

	ctx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout+opts.ReadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.Host, "/")+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.ConnectTimeout + opts.ReadTimeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d: %s", ErrTransport, resp.StatusCode, truncate(data, 256))
	}

	var decoded localResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrTransport, err)
	}
	if strings.TrimSpace(decoded.Response) == "" {
		return "", ErrEmptyResponse
	}
	return decoded.Response, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
