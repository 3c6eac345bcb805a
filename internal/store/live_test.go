package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arohamusic/encore-server/internal/sse"
)

func TestGetLiveStatus_DefaultsToOffline(t *testing.T) {
	store, cleanup := setupTestStore(t, NewNoopEmitter())
	defer cleanup()

	status, err := store.GetLiveStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, status.IsLive)
	assert.True(t, status.UpdatedAt.IsZero())
}

func TestSetLiveStatus_PersistsAndEmits(t *testing.T) {
	emitter := &recordingEmitter{}
	store, cleanup := setupTestStore(t, emitter)
	defer cleanup()

	ctx := context.Background()

	status, err := store.SetLiveStatus(ctx, true)
	require.NoError(t, err)
	assert.True(t, status.IsLive)
	assert.WithinDuration(t, time.Now(), status.UpdatedAt, 5*time.Second)

	stored, err := store.GetLiveStatus(ctx)
	require.NoError(t, err)
	assert.True(t, stored.IsLive)

	_, err = store.SetLiveStatus(ctx, false)
	require.NoError(t, err)

	stored, err = store.GetLiveStatus(ctx)
	require.NoError(t, err)
	assert.False(t, stored.IsLive)

	assert.Equal(t, []sse.EventType{sse.EventLiveChanged, sse.EventLiveChanged}, emitter.types())
}
