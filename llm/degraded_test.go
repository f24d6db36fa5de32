package llm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/llmrts/arena/llm"
)

func TestChannelDegradesAfterThreshold(t *testing.T) {
	ch := llm.NewChannel(3)
	assert.Equal(t, llm.ChannelHealthy, ch.State())

	ch.RecordFailure()
	ch.RecordFailure()
	assert.Equal(t, llm.ChannelHealthy, ch.State())

	state := ch.RecordFailure()
	assert.Equal(t, llm.ChannelDegraded, state)
	assert.Equal(t, 3, ch.ConsecutiveFailures())
}

func TestChannelRecoversOnSuccess(t *testing.T) {
	ch := llm.NewChannel(2)
	ch.RecordFailure()
	ch.RecordFailure()
	assert.Equal(t, llm.ChannelDegraded, ch.State())

	ch.RecordSuccess()
	assert.Equal(t, llm.ChannelHealthy, ch.State())
	assert.Equal(t, 0, ch.ConsecutiveFailures())
}
