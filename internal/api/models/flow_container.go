package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FlowContainer groups the nodes of one flow and remembers its entry point.
type FlowContainer struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36"`
	Name        string     `json:"name" gorm:"not null"`
	StartNodeID *string    `json:"startNodeId" gorm:"size:36"`
	Nodes       []FlowNode `json:"nodes,omitempty" gorm:"foreignKey:ContainerID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (slf *FlowContainer) BeforeCreate(tx *gorm.DB) error {
	if slf.ID == "" {
		slf.ID = uuid.NewString()
	}
	return nil
}
