package websocket

import (
	"context"

	"flowstudio/internal/api/service"
)

// HubPublisher delivers service events to the editors connected to this process.
type HubPublisher struct {
	hub *Hub
}

func NewHubPublisher(hub *Hub) *HubPublisher {
	return &HubPublisher{hub: hub}
}

func (p *HubPublisher) Publish(ctx context.Context, event service.Event) error {
	return p.hub.Send(ctx, EventMessage(event))
}

// EventMessage wraps a service event in the websocket envelope.
func EventMessage(event service.Event) Message {
	return Message{
		Type:        MessageType(event.Type),
		ContainerID: event.ContainerID,
		Timestamp:   event.Timestamp,
		Data:        event,
	}
}
