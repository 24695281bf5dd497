package repo

import (
	"context"

	"flowstudio"
	"flowstudio/internal/api/models"

	"gorm.io/gorm"
)

type FlowNodeRepository struct {
	Db *gorm.DB
}

func NewFlowNodeRepository() *FlowNodeRepository {
	return &FlowNodeRepository{Db: flowstudio.DB}
}

// WithTx returns a repository bound to tx.
func (slf *FlowNodeRepository) WithTx(tx *gorm.DB) *FlowNodeRepository {
	return &FlowNodeRepository{Db: tx}
}

// FindByID retrieves a flow node by ID
func (slf *FlowNodeRepository) FindByID(ctx context.Context, id string) (models.FlowNode, error) {
	var node models.FlowNode
	err := slf.Db.WithContext(ctx).Where("id = ?", id).First(&node).Error
	return node, err
}

// FindByContainer lists the nodes of a container in creation order
func (slf *FlowNodeRepository) FindByContainer(ctx context.Context, containerID string) ([]models.FlowNode, error) {
	var nodes []models.FlowNode
	err := slf.Db.WithContext(ctx).
		Where("container_id = ?", containerID).
		Order("created_at, id").
		Find(&nodes).Error
	return nodes, err
}

func (slf *FlowNodeRepository) Create(ctx context.Context, node *models.FlowNode) error {
	return slf.Db.WithContext(ctx).Create(node).Error
}

func (slf *FlowNodeRepository) Delete(ctx context.Context, id string) (int64, error) {
	res := slf.Db.WithContext(ctx).Where("id = ?", id).Delete(&models.FlowNode{})
	return res.RowsAffected, res.Error
}

// FindStartNodes returns the nodes of a container whose start marker is set.
func (slf *FlowNodeRepository) FindStartNodes(ctx context.Context, containerID string) ([]models.FlowNode, error) {
	var nodes []models.FlowNode
	err := slf.Db.WithContext(ctx).
		Where("container_id = ? AND is_start_node_of_container IS NOT NULL", containerID).
		Find(&nodes).Error
	return nodes, err
}

// SetStartMarker writes marker on one node; an absent marker stores NULL.
func (slf *FlowNodeRepository) SetStartMarker(ctx context.Context, id string, marker models.Marker) error {
	return slf.Db.WithContext(ctx).
		Model(&models.FlowNode{}).
		Where("id = ?", id).
		Update("is_start_node_of_container", marker).Error
}
