package websocket

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var ErrHubStopped = errors.New("websocket hub stopped")

// Hub keeps one room per flow container and fans messages out to its clients
type Hub struct {
	Rooms map[string]*Room

	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan Message

	done   chan struct{}
	mu     sync.RWMutex
	Logger zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		Rooms:      make(map[string]*Room),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan Message, 256),
		done:       make(chan struct{}),
		Logger:     logger,
	}
}

// Run starts the hub's main event loop and returns when ctx is done
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	cleanupTicker := time.NewTicker(5 * time.Minute)
	defer cleanupTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case message := <-h.Broadcast:
			h.broadcastMessage(message)

		case <-cleanupTicker.C:
			h.cleanupEmptyRooms()
		}
	}
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Join hands client to the hub. It reports false once the hub has stopped.
func (h *Hub) Join(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Leave removes client from its room. It never blocks on a stopped hub.
func (h *Hub) Leave(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

// Send queues message for broadcast.
func (h *Hub) Send(ctx context.Context, message Message) error {
	select {
	case h.Broadcast <- message:
		return nil
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, exists := h.Rooms[client.ContainerID]
	if !exists {
		room = NewRoom(client.ContainerID, h.Logger)
		h.Rooms[client.ContainerID] = room
		h.Logger.Info().Str("containerId", client.ContainerID).Msg("Created new room")
	}
	room.AddClient(client)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, exists := h.Rooms[client.ContainerID]
	if !exists {
		return
	}
	if !room.RemoveClient(client) {
		return
	}
	close(client.Send)

	if room.IsEmpty() {
		delete(h.Rooms, client.ContainerID)
		h.Logger.Info().Str("containerId", client.ContainerID).Msg("Removed empty room")
	}
}

// broadcastMessage delivers a message to the container's room, if anyone listens
func (h *Hub) broadcastMessage(message Message) {
	h.mu.RLock()
	room, exists := h.Rooms[message.ContainerID]
	h.mu.RUnlock()

	if !exists {
		h.Logger.Debug().
			Str("containerId", message.ContainerID).
			Str("type", string(message.Type)).
			Msg("No room for broadcast")
		return
	}

	room.Broadcast(message)
}

func (h *Hub) cleanupEmptyRooms() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for containerID, room := range h.Rooms {
		if room.IsEmpty() {
			delete(h.Rooms, containerID)
			h.Logger.Info().Str("containerId", containerID).Msg("Cleaned up empty room")
		}
	}
}

// GetRoomStats returns the number of clients per container
func (h *Hub) GetRoomStats() map[string]int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stats := make(map[string]int, len(h.Rooms))
	for containerID, room := range h.Rooms {
		stats[containerID] = room.ClientCount()
	}
	return stats
}
