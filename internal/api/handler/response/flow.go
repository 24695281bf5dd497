package response

import (
	"time"

	"flowstudio/internal/api/models"
)

type FlowNode struct {
	ID          string          `json:"id"`
	Kind        models.NodeKind `json:"kind"`
	Name        string          `json:"name"`
	Xpos        float32         `json:"xpos"`
	Ypos        float32         `json:"ypos"`
	ContainerID string          `json:"containerId,omitempty"`
	IsStartNode bool            `json:"isStartNode"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type FlowContainer struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	StartNodeID *string    `json:"startNodeId"`
	Nodes       []FlowNode `json:"nodes"`
}
