package service

import (
	"context"
	"time"
)

type EventType string

const (
	// EventNodeClassified is emitted when a node gains or loses the start-node flag.
	// Editors rebuild the node when they receive it.
	EventNodeClassified EventType = "node.classified"
)

type Event struct {
	Type        EventType `json:"type"`
	ContainerID string    `json:"containerId"`
	NodeID      string    `json:"nodeId"`
	IsStartNode bool      `json:"isStartNode"`
	Timestamp   time.Time `json:"timestamp"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error {
	return nil
}
