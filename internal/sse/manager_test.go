package sse

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arohamusic/encore-server/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestManager_ConnectDisconnect(t *testing.T) {
	m := NewManager(testLogger())

	client, err := m.Connect()
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.NotEmpty(t, client.ID)
	assert.Equal(t, 1, m.ClientCount())

	m.Disconnect(client.ID)
	assert.Equal(t, 0, m.ClientCount())

	// Disconnecting an unknown client is a no-op.
	m.Disconnect("sse-does-not-exist")
	assert.Equal(t, 0, m.ClientCount())
}

func TestManager_BroadcastDeliversToAllClients(t *testing.T) {
	m := NewManager(testLogger())

	c1, err := m.Connect()
	require.NoError(t, err)
	c2, err := m.Connect()
	require.NoError(t, err)

	request := &domain.SongRequest{ID: "req-1", Song: "Wonderwall", Status: domain.StatusPending}
	m.broadcast(NewRequestCreatedEvent(request))

	for _, c := range []*Client{c1, c2} {
		select {
		case event := <-c.EventChan:
			assert.Equal(t, EventRequestCreated, event.Type)
		default:
			t.Fatalf("client %s received no event", c.ID)
		}
	}
}

func TestManager_EmitQueuesAndStartBroadcasts(t *testing.T) {
	m := NewManager(testLogger())

	client, err := m.Connect()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Start(ctx)

	m.Emit(NewLiveChangedEvent(domain.LiveStatus{IsLive: true, UpdatedAt: time.Now()}))

	select {
	case event := <-client.EventChan:
		assert.Equal(t, EventLiveChanged, event.Type)
		data, ok := event.Data.(LiveChangedEventData)
		require.True(t, ok)
		assert.True(t, data.IsLive)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestManager_EmitIgnoresNonEventValues(t *testing.T) {
	m := NewManager(testLogger())

	// Must not panic or queue anything.
	m.Emit("not an event")
	assert.Empty(t, m.events)
}

func TestManager_SlowClientDropsEvents(t *testing.T) {
	m := NewManager(testLogger())

	client, err := m.Connect()
	require.NoError(t, err)

	// Fill the client buffer, then broadcast once more. The extra event is
	// dropped rather than blocking the broadcast loop.
	for i := 0; i < cap(client.EventChan)+5; i++ {
		m.broadcast(NewHeartbeatEvent())
	}
	assert.Len(t, client.EventChan, cap(client.EventChan))
}

func TestManager_ShutdownClosesClientsAndDropsEmits(t *testing.T) {
	m := NewManager(testLogger())

	client, err := m.Connect()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go m.Start(ctx)
	cancel()

	select {
	case <-client.Done:
	case <-time.After(2 * time.Second):
		t.Fatal("client not closed on shutdown")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()
	require.NoError(t, m.Shutdown(shutdownCtx))

	// Emits after shutdown are silently dropped.
	m.Emit(NewHeartbeatEvent())
}
