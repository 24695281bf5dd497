package service

import (
	"context"
	"errors"
	"fmt"

	"flowstudio"
	"flowstudio/internal/api/models"
	"flowstudio/internal/api/repo"
	"flowstudio/internal/editor/plugin"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type FlowNodeService struct {
	db            *gorm.DB
	nodeRepo      *repo.FlowNodeRepository
	containerRepo *repo.FlowContainerRepository
	descriptors   *plugin.Registry
	logger        zerolog.Logger
}

func NewFlowNodeService(descriptors *plugin.Registry) *FlowNodeService {
	return &FlowNodeService{
		db:            flowstudio.DB,
		nodeRepo:      repo.NewFlowNodeRepository(),
		containerRepo: repo.NewFlowContainerRepository(),
		descriptors:   descriptors,
		logger:        flowstudio.Logger,
	}
}

// Create stores a new node. The start marker is never taken from the caller;
// it is only set through ContainerService.SetStartNode.
func (slf *FlowNodeService) Create(ctx context.Context, n models.FlowNode) (*models.FlowNode, error) {
	if _, err := slf.descriptors.Lookup(n.Kind); err != nil {
		return nil, err
	}
	if n.ContainerID != "" {
		if _, err := slf.containerRepo.FindByID(ctx, n.ContainerID); err != nil {
			return nil, notFound(err, "flow container", n.ContainerID)
		}
	}

	n.IsStartNodeOfContainer = nil
	if err := slf.nodeRepo.Create(ctx, &n); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating flow node")
		return nil, err
	}
	return &n, nil
}

func (slf *FlowNodeService) FindByID(ctx context.Context, id string) (*models.FlowNode, error) {
	n, err := slf.nodeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("flow node %s: %w", id, ErrNotFound)
		}
		slf.logger.Error().Err(err).Str("nodeId", id).Msg("Error getting flow node")
		return nil, err
	}
	return &n, nil
}

// Delete removes a node and drops any container reference to it as start node.
func (slf *FlowNodeService) Delete(ctx context.Context, id string) error {
	return slf.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := slf.nodeRepo.WithTx(tx).Delete(ctx, id)
		if err != nil {
			slf.logger.Error().Err(err).Str("nodeId", id).Msg("Error deleting flow node")
			return err
		}
		if affected == 0 {
			return fmt.Errorf("flow node %s: %w", id, ErrNotFound)
		}
		return slf.containerRepo.WithTx(tx).ClearStartNodeIf(ctx, id)
	})
}
