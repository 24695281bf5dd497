package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NodeKind string

const (
	NodeKindForEach NodeKind = "for_each"
	NodeKindAction  NodeKind = "action"
	NodeKindReturn  NodeKind = "return"
)

// FlowNode is the persisted backing node of an editor node.
type FlowNode struct {
	ID   string   `json:"id" gorm:"primaryKey;size:36"`
	Kind NodeKind `json:"kind" gorm:"size:32;not null"`
	Name string   `json:"name"`
	Xpos float32  `json:"xpos"`
	Ypos float32  `json:"ypos"`

	ContainerID string `json:"containerId" gorm:"size:36;index"`
	// Set while this node is the entry point of its container. Only presence
	// matters; the stored value is the container id.
	IsStartNodeOfContainer Marker `json:"isStartNodeOfContainer"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (slf *FlowNode) BeforeCreate(tx *gorm.DB) error {
	if slf.ID == "" {
		slf.ID = uuid.NewString()
	}
	return nil
}
