package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Provider identifies a hosted, OpenAI-compatible backend. Credentials and
// base URLs are resolved from the environment 
type Provider string

const (
	ProviderDeepSeek Provider = "deepseek"
	ProviderOpenAI Provider = "openai"
	ProviderOpenRouter Provider = "openrouter"
)

var providerDefaults = map[Provider]struct {
	baseURL string
	envKey string
}{
	ProviderDeepSeek: {baseURL: "https://api.deepseek.com", envKey: "DEEPSEEK_API_KEY"},
	ProviderOpenAI: {baseURL: "https://api.openai.com", envKey: "OPENAI_API_KEY"},
	ProviderOpenRouter: {baseURL: "https://openrouter.ai/api", envKey: "OPENROUTER_API_KEY"},
}

// UpstreamError preserves the upstream HTTP status and body when a cloud
// provider rejects a request.
type UpstreamError struct {
	Provider Provider
	StatusCode int
	Body string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("llm: upstream %s returned status %d: %s", e.Provider, e.StatusCode, truncate([]byte(e.Body), 256))
}

// ProxyClient translates the shared Generator contract into an
// OpenAI-compatible POST /v1/chat/completions call against one hosted
// provider. It is implemented directly against net/http rather than an
// SDK: see DESIGN.md for why — in short, the same code path must address
// three different hosts with one fixed wire body, which a
// single-provider typed SDK client does not make simpler.
type ProxyClient struct {
	Provider Provider
	BaseURL string // overrides providerDefaults when set
	APIKey string // overrides the environment lookup when set
	HTTPClient *http.Client
}

// NewProxyClient builds a ProxyClient for the given provider, reading its
// API key from the environment variable names for that provider.
func NewProxyClient(provider Provider) (*ProxyClient, error) {
	defaults, ok := providerDefaults[provider]
	if !ok {
		return nil, fmt.Errorf("llm: unknown provider %q", provider)
	}
	key := os.Getenv(defaults.envKey)
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("llm: %s is required for provider %s", defaults.envKey, provider)
	}
	return &ProxyClient{Provider: provider, BaseURL: defaults.baseURL, APIKey: key}, nil
}

type chatMessage struct {
	Role string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model string `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream bool `json:"stream"`
	Temperature float64 `json:"temperature,omitempty"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// Generate implements Generator against the configured cloud provider.
func (c *ProxyClient) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	opts = opts.withDefaults()

	format := "text"
	if opts.Format == "json" {
		format = "json_object"
	}
	body, err := json.Marshal(chatRequest{
		Model: opts.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream: false,
		Temperature: opts.Temperature,
		ResponseFormat: responseFormat{Type: format},
	})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrTransport, err)
	}

	ctx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout+opts.ReadTimeout)
	defer cancel()

	url := strings.TrimRight(c.BaseURL, "/") + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

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
		return "", &UpstreamError{Provider: c.Provider, StatusCode: resp.StatusCode, Body: string(data)}
	}

	var decoded chatResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrTransport, err)
	}
	if len(decoded.Choices) == 0 || strings.TrimSpace(decoded.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return decoded.Choices[0].Message.Content, nil
}
