package service

import (
	"context"
	"errors"
	"fmt"

	"flowstudio"
	"flowstudio/internal/api/metrics"
	"flowstudio/internal/api/models"
	"flowstudio/internal/api/repo"
	"flowstudio/internal/editor/node"
	"flowstudio/internal/editor/plugin"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// NodeEditorService builds editor containers for persisted nodes. Containers are
// built from the current database row on every call and never cached, so the
// start-node flag always matches the latest snapshot.
type NodeEditorService struct {
	nodeRepo    *repo.FlowNodeRepository
	descriptors *plugin.Registry
	logger      zerolog.Logger
}

func NewNodeEditorService(descriptors *plugin.Registry) *NodeEditorService {
	return &NodeEditorService{
		nodeRepo:    repo.NewFlowNodeRepository(),
		descriptors: descriptors,
		logger:      flowstudio.Logger,
	}
}

// Build returns the editor container for the flow node nodeID
func (slf *NodeEditorService) Build(ctx context.Context, nodeID string) (*node.Node, error) {
	dbNode, err := slf.nodeRepo.FindByID(ctx, nodeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("flow node %s: %w", nodeID, ErrNotFound)
		}
		slf.logger.Error().Err(err).Str("nodeId", nodeID).Msg("Error loading flow node")
		return nil, err
	}

	d, err := slf.descriptors.Lookup(dbNode.Kind)
	if err != nil {
		slf.logger.Error().Err(err).Str("nodeId", nodeID).Str("kind", string(dbNode.Kind)).Msg("Flow node has no descriptor")
		return nil, err
	}

	n := node.New(dbNode.ID, d.Title())
	built, err := d.Build(n, &dbNode)
	metrics.NodeBuilds.WithLabelValues(string(dbNode.Kind), metrics.Result(err)).Inc()
	if err != nil {
		slf.logger.Error().Err(err).Str("nodeId", nodeID).Msg("Error building editor node")
		return nil, err
	}
	return built, nil
}

// Preview builds a container for kind without a backing node.
func (slf *NodeEditorService) Preview(kind models.NodeKind) (*node.Node, error) {
	d, err := slf.descriptors.Lookup(kind)
	if err != nil {
		return nil, err
	}
	return d.Build(node.New("preview-"+string(kind), d.Title()), nil)
}
