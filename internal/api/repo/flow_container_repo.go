package repo

import (
	"context"

	"flowstudio"
	"flowstudio/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FlowContainerRepository struct {
	Db *gorm.DB
}

func NewFlowContainerRepository() *FlowContainerRepository {
	return &FlowContainerRepository{Db: flowstudio.DB}
}

func (slf *FlowContainerRepository) WithTx(tx *gorm.DB) *FlowContainerRepository {
	return &FlowContainerRepository{Db: tx}
}

// FindByID retrieves a container without its nodes
func (slf *FlowContainerRepository) FindByID(ctx context.Context, id string) (models.FlowContainer, error) {
	var container models.FlowContainer
	err := slf.Db.WithContext(ctx).Where("id = ?", id).First(&container).Error
	return container, err
}

// FindByIDForUpdate reads a container and holds its row lock until the
// surrounding transaction ends. Start-node changes on the same container
// queue behind it.
func (slf *FlowContainerRepository) FindByIDForUpdate(ctx context.Context, id string) (models.FlowContainer, error) {
	var container models.FlowContainer
	err := slf.Db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&container).Error
	return container, err
}

func (slf *FlowContainerRepository) Create(ctx context.Context, container *models.FlowContainer) error {
	return slf.Db.WithContext(ctx).Omit("Nodes").Create(container).Error
}

// SetStartNodeID points the container at nodeID; nil clears it.
func (slf *FlowContainerRepository) SetStartNodeID(ctx context.Context, id string, nodeID *string) error {
	return slf.Db.WithContext(ctx).
		Model(&models.FlowContainer{}).
		Where("id = ?", id).
		Update("start_node_id", nodeID).Error
}

// ClearStartNodeIf drops the start node reference when it points at nodeID.
func (slf *FlowContainerRepository) ClearStartNodeIf(ctx context.Context, nodeID string) error {
	return slf.Db.WithContext(ctx).
		Model(&models.FlowContainer{}).
		Where("start_node_id = ?", nodeID).
		Update("start_node_id", nil).Error
}
