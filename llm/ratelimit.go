package llm

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimited wraps a Generator with a process-local token-bucket limiter: a
// blocking, single-request-at-a-time façade per agent instance with no
// cluster coordination, suited to an orchestrator that caps concurrent
// matchups at 1 by default precisely so one LLM backend is shared safely.
type RateLimited struct {
	mu sync.Mutex // held for the whole call: one request in flight at a time
	next Generator
	limiter *rate.Limiter
}

// NewRateLimited wraps next with a limiter allowing burst requests
// immediately and refilling at ratePerSecond thereafter. A ratePerSecond of
// zero or less disables limiting (every call proceeds immediately).
func NewRateLimited(next Generator, ratePerSecond float64, burst int) *RateLimited {
	if ratePerSecond <= 0 {
		return &RateLimited{next: next, limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{next: next, limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst)}
}

// Generate blocks until no other call is in flight and the limiter admits
// the call, then delegates.
func (r *RateLimited) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return r.next.Generate(ctx, prompt, opts)
}
