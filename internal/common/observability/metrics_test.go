package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservability_RecordAndShutdown(t *testing.T) {
	obs, err := New("tour-workers-test")
	require.NoError(t, err)

	obs.RecordJob(context.Background(), "recommend-tour-packages", "completed", 15*time.Millisecond)
	assert.NoError(t, obs.Shutdown(context.Background()))
}

func TestObservability_NilIsNoop(t *testing.T) {
	var obs *Observability
	assert.NotPanics(t, func() {
		obs.RecordJob(context.Background(), "filter-tour-packages", "failed", time.Second)
	})
	assert.NoError(t, obs.Shutdown(context.Background()))
}
