package websocket

import (
	"time"
)

type MessageType string

const (
	MessageTypeNodeClassified MessageType = "node.classified"
	MessageTypeUserJoined     MessageType = "user.joined"
	MessageTypeUserLeft       MessageType = "user.left"
)

// Message is the envelope pushed to editors watching a container.
type Message struct {
	Type        MessageType `json:"type"`
	ContainerID string      `json:"containerId"`
	Timestamp   time.Time   `json:"timestamp"`
	Data        any         `json:"data"`
}
