package priors

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/llmrts/arena/llm"
	"github.com/llmrts/arena/telemetry"
)

// defaultRefreshWindow is the minimum interval between LLM calls the cache
// will issue, regardless of how often Refresh is invoked.
const defaultRefreshWindow = 30 * time.Second

// refreshSchema shape-checks a decoded refresh payload before the
// per-field skip-unknown merge in mergeTable runs. A shaped document that
// still names unknown situations or action kinds is not a schema failure —
// mergeTable's job is to skip those — so validation failures here are
// logged, not fatal, matching the "skip the offending field, keep
// others" schema-error policy rather than rejecting the whole response.
var refreshSchema = mustCompileRefreshSchema()

func mustCompileRefreshSchema() *llm.SchemaValidator {
	v, err := llm.CompileSchema("priors-refresh", map[string]any{
		"type": "object",
		"additionalProperties": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type": "number",
			},
		},
	})
	if err != nil {
		panic("priors: invalid built-in refresh schema: " + err.Error())
	}
	return v
}

// Cache owns the live Table and enforces an "at most once per
// refresh-window, never from inside a tree expansion" call discipline.
// Callers outside a tree-search inner loop call Refresh; callers inside
// expansion call Evaluate against the table snapshot returned by Snapshot.
type Cache struct {
	mu sync.Mutex
	table Table
	refreshWindow time.Duration
	lastRefresh time.Time

	generator llm.Generator
	shared *SharedStore
	logger telemetry.Logger
}

// NewCache builds a Cache seeded with the built-in default table. generator
// may be nil, in which case Refresh is a no-op (the cache runs purely on
// defaults). shared may be nil to run purely in-process.
func NewCache(generator llm.Generator, shared *SharedStore, logger telemetry.Logger) *Cache {
	if logger == nil {
		logger = telemetry.NoopLogger{}
	}
	return &Cache{
		table: defaultTable(),
		refreshWindow: defaultRefreshWindow,
		generator: generator,
		shared: shared,
		logger: logger,
	}
}

// Snapshot returns the table currently in effect. The returned Table must be
// treated as read-only by the caller.
func (c *Cache) Snapshot() Table {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table
}

// refreshResponse is the lenient shape an LLM refresh reply is decoded into:
// a mapping from situation name to action-kind name to weight.
type refreshResponse map[string]map[string]float64

// Refresh first pulls in whatever table a sibling matchup most recently
// published to SharedStore, if one is configured, then issues at most one
// LLM call if refreshWindow has elapsed since the last attempt (successful
// or not), decodes a Situation→{action-kind:weight} mapping from the
// response, and swaps it into the live table on success. On a transport or
// parse error it logs and leaves the table unchanged; a shape-validation
// failure is only logged, and whatever still decodes is merged.
func (c *Cache) Refresh(ctx context.Context, prompt string, opts llm.Options) {
	if c.shared != nil {
		if table, ok, err := c.shared.Load(ctx); err != nil {
			c.logger.Warn(ctx, "priors: shared store load failed", "error", err)
		} else if ok {
			c.mu.Lock()
			c.table = table
			c.mu.Unlock()
		}
	}

	if c.generator == nil {
		return
	}

	c.mu.Lock()
	if time.Since(c.lastRefresh) < c.refreshWindow {
		c.mu.Unlock()
		return
	}
	c.lastRefresh = time.Now()
	c.mu.Unlock()

	text, err := c.generator.Generate(ctx, prompt, opts)
	if err != nil {
		c.logger.Warn(ctx, "priors: refresh call failed", "error", err)
		return
	}

	raw, err := llm.ExtractJSON(text)
	if err != nil {
		c.logger.Warn(ctx, "priors: refresh response had no JSON object", "error", err)
		return
	}

	var shapeCheck any
	if err := json.Unmarshal(raw, &shapeCheck); err == nil {
		if err := refreshSchema.Validate(shapeCheck); err != nil {
			c.logger.Warn(ctx, "priors: refresh response failed shape validation, applying what parses", "error", err)
		}
	}

	var decoded refreshResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		c.logger.Warn(ctx, "priors: refresh response malformed", "error", err)
		return
	}

	next := c.mergeTable(decoded)

	c.mu.Lock()
	c.table = next
	c.mu.Unlock()

	if c.shared != nil {
		if err := c.shared.Store(ctx, next); err != nil {
			c.logger.Warn(ctx, "priors: shared store publish failed", "error", err)
		}
	}
}

// mergeTable applies decoded overrides onto a clone of the current table,
// skipping any situation or action-kind name it does not recognize, per the
// schema-error "skip the offending field" policy.
func (c *Cache) mergeTable(decoded refreshResponse) Table {
	c.mu.Lock()
	next := c.table.Clone()
	c.mu.Unlock()

	for situationName, weights := range decoded {
		situation := Situation(situationName)
		if _, known := defaultTable()[situation]; !known {
			continue
		}
		kindWeights := make(ActionWeights, len(weights))
		for kindName, weight := range weights {
			kind, ok := actionKindByName(kindName)
			if !ok {
				continue
			}
			kindWeights[kind] = weight
		}
		if len(kindWeights) > 0 {
			next[situation] = kindWeights
		}
	}
	return next
}
