package priors_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llmrts/arena/llm"
	"github.com/llmrts/arena/priors"
	"github.com/llmrts/arena/simgame"
)

type stubGenerator struct {
	text string
	err error
	n int
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	s.n++
	return s.text, s.err
}

func TestRefreshAppliesKnownOverrides(t *testing.T) {
	gen := &stubGenerator{text: `{"worker-idle":{"move":2.5,"harvest":0.1},"bogus-situation":{"move":9}}`}
	cache := priors.NewCache(gen, nil, nil)

	cache.Refresh(context.Background(), "refresh priors", llm.Options{})
	require.Equal(t, 1, gen.n)

	table := cache.Snapshot()
	weights := table[priors.SituationWorkerIdle]
	assert.Equal(t, 2.5, weights[simgame.ActionMove])
	assert.Equal(t, 0.1, weights[simgame.ActionHarvest])
	_, hasBogus := table[priors.Situation("bogus-situation")]
	assert.False(t, hasBogus)
}

func TestRefreshLeavesTableUnchangedOnMalformedResponse(t *testing.T) {
	gen := &stubGenerator{text: "not json at all"}
	cache := priors.NewCache(gen, nil, nil)
	before := cache.Snapshot()

	cache.Refresh(context.Background(), "refresh priors", llm.Options{})

	after := cache.Snapshot()
	assert.Equal(t, before, after)
}

func TestRefreshRespectsWindowAndCallsAtMostOnce(t *testing.T) {
	gen := &stubGenerator{text: `{"worker-idle":{"move":1.0}}`}
	cache := priors.NewCache(gen, nil, nil)

	cache.Refresh(context.Background(), "p", llm.Options{})
	cache.Refresh(context.Background(), "p", llm.Options{})
	cache.Refresh(context.Background(), "p", llm.Options{})

	assert.Equal(t, 1, gen.n)
}

func TestRefreshNoopWithoutGenerator(t *testing.T) {
	cache := priors.NewCache(nil, nil, nil)
	before := cache.Snapshot()
	cache.Refresh(context.Background(), "p", llm.Options{})
	assert.Equal(t, before, cache.Snapshot())
}
