package llm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llmrts/arena/llm"
)

func TestExtractJSONPlain(t *testing.T) {
	out, err := llm.ExtractJSON(`{"a":1}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(out))
}

func TestExtractJSONCodeFence(t *testing.T) {
	out, err := llm.ExtractJSON("```json\n{\"a\":1,\"b\":[1,2]}\n```")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1,"b":[1,2]}`, string(out))
}

func TestExtractJSONWithSurroundingProse(t *testing.T) {
	out, err := llm.ExtractJSON(`Sure, here's the plan: {"goal":"attack-base"} hope that helps`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"goal":"attack-base"}`, string(out))
}

func TestExtractJSONNestedBraces(t *testing.T) {
	out, err := llm.ExtractJSON(`{"outer":{"inner":"{literal}"}}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"outer":{"inner":"{literal}"}}`, string(out))
}

func TestExtractJSONNoObject(t *testing.T) {
	_, err := llm.ExtractJSON("no json here")
	assert.ErrorIs(t, err, llm.ErrNoJSONObject)
}
