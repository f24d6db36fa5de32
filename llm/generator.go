// Package llm is the single textual I/O surface for every LLM consumer in
// this repository (mcts, priors, hybrid). It hides whether a consumer is
// talking to a local model server or a hosted provider behind the Generator
// interface, tracks consecutive failures for degraded-mode fallback
// (Channel), and schedules calls through a process-local rate limiter. A
// failed call is returned to the caller, never retried.
package llm

import (
	"context"
	"errors"
	"time"
)

// Options configures one Generate call. Zero values fall back to the
// defaults names.
type Options struct {
	// Model selects the model identifier understood by the backend.
	Model string
	// Format requests a structured response. Only "json" is meaningful;
	// empty means free text.
	Format string
	// Temperature controls sampling on ProxyClient. Zero uses the backend's
	// default. LocalClient does not send it.
	Temperature float64
	// ConnectTimeout defaults to 5s and ReadTimeout to 15s. Both backends
	// apply their sum as one deadline for the whole call; connection setup
	// is not bounded separately.
	ConnectTimeout time.Duration
	// ReadTimeout: see ConnectTimeout.
	ReadTimeout time.Duration
}

// DefaultOptions returns the option set names as defaults.
func DefaultOptions() Options {
	return Options{
		Format: "json",
		ConnectTimeout: 5 * time.Second,
		ReadTimeout: 15 * time.Second,
	}
}

func (o Options) withDefaults() Options {
	if o.ConnectTimeout == 0 {
		o.ConnectTimeout = 5 * time.Second
	}
	if o.ReadTimeout == 0 {
		o.ReadTimeout = 15 * time.Second
	}
	return o
}

// Generator is the provider-agnostic interface every backend implements.
// Callers receive raw text; Generator does not validate JSON syntax (that is
// ExtractJSON's job, applied by the caller).
type Generator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
}

// ErrTransport wraps a failure to reach or read from the backend: connection
// refused, a non-2xx status from LocalClient (ProxyClient reports those as
// *UpstreamError instead), or an empty/malformed response envelope. Transport
// errors bubble to the caller, which increments its own consecutive-failure
// counter.
var ErrTransport = errors.New("llm: transport error")

// ErrEmptyResponse indicates the backend returned a 2xx with no usable text.
var ErrEmptyResponse = errors.New("llm: empty response")
