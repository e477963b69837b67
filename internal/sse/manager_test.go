package sse

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birthdaywisher/wisher-server/internal/domain"
)

func newTestManager() *Manager {
	return NewManager(slog.New(slog.DiscardHandler))
}

func TestManager_Connect_Disconnect(t *testing.T) {
	m := newTestManager()

	client, err := m.Connect("ada lovelace")
	require.NoError(t, err)
	assert.Equal(t, "ada lovelace", client.Topic)
	assert.Equal(t, 1, m.ClientCount())

	m.Disconnect(client.ID)
	assert.Equal(t, 0, m.ClientCount())

	// Disconnecting an unknown client is a no-op.
	m.Disconnect(client.ID)
	assert.Equal(t, 0, m.ClientCount())
}

func TestManager_Broadcast_TopicScoped(t *testing.T) {
	m := newTestManager()

	watcher, err := m.Connect("ada lovelace")
	require.NoError(t, err)
	other, err := m.Connect("grace hopper")
	require.NoError(t, err)
	firehose, err := m.Connect("")
	require.NoError(t, err)

	entry := domain.GuestbookEntry{ID: "gb-1", Text: "hi", Timestamp: time.Now()}
	m.broadcast(NewGuestbookMessageEvent("Ada Lovelace", entry))

	select {
	case event := <-watcher.EventChan:
		assert.Equal(t, EventGuestbookMessage, event.Type)
	default:
		t.Fatal("topic watcher should have received the event")
	}

	select {
	case <-other.EventChan:
		t.Fatal("client on a different topic must not receive the event")
	default:
	}

	select {
	case <-firehose.EventChan:
		// Unscoped clients see all topics.
	default:
		t.Fatal("unscoped client should have received the event")
	}
}

func TestManager_Broadcast_UnscopedEventReachesEveryone(t *testing.T) {
	m := newTestManager()

	watcher, err := m.Connect("ada lovelace")
	require.NoError(t, err)

	m.broadcast(NewBirthdayCreatedEvent(&domain.Birthday{Name: "Grace Hopper"}))

	select {
	case event := <-watcher.EventChan:
		assert.Equal(t, EventBirthdayCreated, event.Type)
	default:
		t.Fatal("unscoped events reach every client regardless of topic")
	}
}

func TestManager_Broadcast_DropsForSlowClient(t *testing.T) {
	m := newTestManager()

	client, err := m.Connect("")
	require.NoError(t, err)

	// Fill the client's buffer without reading.
	for i := 0; i < cap(client.EventChan)+10; i++ {
		m.broadcast(NewHeartbeatEvent())
	}

	// The send never blocks; overflow is dropped.
	assert.Len(t, client.EventChan, cap(client.EventChan))
}

func TestManager_StartAndShutdown_DeliversQueuedEvents(t *testing.T) {
	m := newTestManager()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Start(ctx)

	client, err := m.Connect("")
	require.NoError(t, err)

	m.Emit(NewBirthdayCreatedEvent(&domain.Birthday{Name: "Ada"}))

	select {
	case event := <-client.EventChan:
		assert.Equal(t, EventBirthdayCreated, event.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("emitted event never reached the client")
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()
	require.NoError(t, m.Shutdown(shutdownCtx))

	// Emit after shutdown is silently dropped, never a panic.
	m.Emit(NewHeartbeatEvent())
}
