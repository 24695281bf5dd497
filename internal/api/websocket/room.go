package websocket

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Room holds the editors watching one flow container
type Room struct {
	ContainerID string
	Clients     map[string]*Client
	mu          sync.RWMutex
	Logger      zerolog.Logger
}

func NewRoom(containerID string, logger zerolog.Logger) *Room {
	return &Room{
		ContainerID: containerID,
		Clients:     make(map[string]*Client),
		Logger:      logger,
	}
}

func (r *Room) AddClient(client *Client) {
	r.mu.Lock()
	r.Clients[client.ID] = client
	count := len(r.Clients)
	r.mu.Unlock()

	r.Logger.Info().
		Str("containerId", r.ContainerID).
		Str("clientId", client.ID).
		Int("totalClients", count).
		Msg("Client joined room")

	r.BroadcastExcept(r.presence(MessageTypeUserJoined, client), client.ID)
}

// RemoveClient reports whether the client was in the room
func (r *Room) RemoveClient(client *Client) bool {
	r.mu.Lock()
	_, exists := r.Clients[client.ID]
	delete(r.Clients, client.ID)
	count := len(r.Clients)
	r.mu.Unlock()

	if !exists {
		return false
	}
	r.Logger.Info().
		Str("containerId", r.ContainerID).
		Str("clientId", client.ID).
		Int("remainingClients", count).
		Msg("Client left room")

	r.Broadcast(r.presence(MessageTypeUserLeft, client))
	return true
}

func (r *Room) Broadcast(message Message) {
	r.BroadcastExcept(message, "")
}

// BroadcastExcept sends a message to all clients in the room except senderID
func (r *Room) BroadcastExcept(message Message, senderID string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, client := range r.Clients {
		if client.ID == senderID {
			continue
		}
		select {
		case client.Send <- message:
		default:
			r.Logger.Warn().
				Str("clientId", client.ID).
				Msg("Client send buffer full, message dropped")
		}
	}
}

func (r *Room) IsEmpty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.Clients) == 0
}

func (r *Room) ClientCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.Clients)
}

func (r *Room) presence(t MessageType, client *Client) Message {
	return Message{
		Type:        t,
		ContainerID: r.ContainerID,
		Timestamp:   time.Now(),
		Data: map[string]any{
			"clientId": client.ID,
			"userId":   client.UserID,
		},
	}
}
