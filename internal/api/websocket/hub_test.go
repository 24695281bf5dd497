package websocket

import (
	"context"
	"testing"
	"time"

	"flowstudio/internal/api/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func receive(t *testing.T, c *Client) Message {
	select {
	case msg, ok := <-c.Send:
		require.True(t, ok, "send channel closed")
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return Message{}
	}
}

func TestHub_PublishReachesRoom(t *testing.T) {
	hub := startHub(t)
	watcher := NewClient("a", 1, "c1", hub, nil, zerolog.Nop())
	other := NewClient("b", 2, "c2", hub, nil, zerolog.Nop())
	hub.Register <- watcher
	hub.Register <- other

	event := service.Event{Type: service.EventNodeClassified, ContainerID: "c1", NodeID: "n1", IsStartNode: true, Timestamp: time.Now()}
	require.NoError(t, NewHubPublisher(hub).Publish(context.Background(), event))

	msg := receive(t, watcher)
	assert.Equal(t, MessageTypeNodeClassified, msg.Type)
	assert.Equal(t, "c1", msg.ContainerID)
	assert.Equal(t, event, msg.Data)

	select {
	case msg := <-other.Send:
		t.Fatalf("unexpected message for other container: %v", msg.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_JoinAndLeave(t *testing.T) {
	hub := startHub(t)
	first := NewClient("a", 1, "c1", hub, nil, zerolog.Nop())
	second := NewClient("b", 2, "c1", hub, nil, zerolog.Nop())
	hub.Register <- first
	hub.Register <- second

	joined := receive(t, first)
	assert.Equal(t, MessageTypeUserJoined, joined.Type)

	hub.Unregister <- second
	left := receive(t, first)
	assert.Equal(t, MessageTypeUserLeft, left.Type)

	_, ok := <-second.Send
	assert.False(t, ok, "unregistering closes the send channel")

	hub.Unregister <- first
	require.Eventually(t, func() bool { return len(hub.GetRoomStats()) == 0 }, time.Second, 10*time.Millisecond)
}

func TestHubPublisher_ContextCancelled(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	hub.Broadcast = make(chan Message)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewHubPublisher(hub).Publish(ctx, service.Event{ContainerID: "c1"})
	assert.ErrorIs(t, err, context.Canceled)
}

func stoppedHub(t *testing.T) *Hub {
	hub := NewHub(zerolog.Nop())
	hub.Broadcast = make(chan Message)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	cancel()

	select {
	case <-hub.Done():
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
	return hub
}

func TestHub_StoppedHubDoesNotBlock(t *testing.T) {
	hub := stoppedHub(t)
	client := NewClient("a", 1, "c1", hub, nil, zerolog.Nop())

	returned := make(chan struct{})
	go func() {
		defer close(returned)
		assert.False(t, hub.Join(client))
		hub.Leave(client)
		assert.ErrorIs(t, hub.Send(context.Background(), Message{ContainerID: "c1"}), ErrHubStopped)
		assert.ErrorIs(t, NewHubPublisher(hub).Publish(context.Background(), service.Event{ContainerID: "c1"}), ErrHubStopped)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("client blocked on a stopped hub")
	}
}
