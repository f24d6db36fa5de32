package llm_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llmrts/arena/llm"
)

type stubGenerator struct {
	calls int
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	s.calls++
	return "ok", nil
}

func TestRateLimitedDisabledPassesThrough(t *testing.T) {
	stub := &stubGenerator{}
	limited := llm.NewRateLimited(stub, 0, 0)

	for i := 0; i < 5; i++ {
		out, err := limited.Generate(context.Background(), "p", llm.Options{})
		require.NoError(t, err)
		assert.Equal(t, "ok", out)
	}
	assert.Equal(t, 5, stub.calls)
}

func TestRateLimitedBlocksUntilContextCancelled(t *testing.T) {
	stub := &stubGenerator{}
	limited := llm.NewRateLimited(stub, 1, 1)

	// Exhaust the single burst token.
	_, err := limited.Generate(context.Background(), "p", llm.Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = limited.Generate(ctx, "p", llm.Options{})
	require.Error(t, err)
	assert.Equal(t, 1, stub.calls)
}
