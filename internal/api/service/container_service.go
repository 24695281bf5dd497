package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flowstudio"
	"flowstudio/internal/api/metrics"
	"flowstudio/internal/api/models"
	"flowstudio/internal/api/repo"
	"flowstudio/pkg"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type ContainerService struct {
	db            *gorm.DB
	containerRepo *repo.FlowContainerRepository
	nodeRepo      *repo.FlowNodeRepository
	publisher     EventPublisher
	logger        zerolog.Logger
}

func NewContainerService(publisher EventPublisher) *ContainerService {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &ContainerService{
		db:            flowstudio.DB,
		containerRepo: repo.NewFlowContainerRepository(),
		nodeRepo:      repo.NewFlowNodeRepository(),
		publisher:     publisher,
		logger:        flowstudio.Logger,
	}
}

func (slf *ContainerService) Create(ctx context.Context, name string) (*models.FlowContainer, error) {
	container := models.FlowContainer{Name: name}
	if err := slf.containerRepo.Create(ctx, &container); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating flow container")
		return nil, err
	}
	return &container, nil
}

// FindByID retrieves a container with its nodes
func (slf *ContainerService) FindByID(ctx context.Context, id string) (*models.FlowContainer, error) {
	container, err := slf.containerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("flow container %s: %w", id, ErrNotFound)
		}
		slf.logger.Error().Err(err).Str("containerId", id).Msg("Error getting flow container")
		return nil, err
	}

	container.Nodes, err = slf.nodeRepo.FindByContainer(ctx, id)
	if err != nil {
		slf.logger.Error().Err(err).Str("containerId", id).Msg("Error getting container nodes")
		return nil, err
	}
	return &container, nil
}

// SetStartNode makes nodeID the only start node of containerID. Every node whose
// flag changed is announced once the transaction has committed.
func (slf *ContainerService) SetStartNode(ctx context.Context, containerID, nodeID string) (*models.FlowContainer, error) {
	var changed []Event

	err := slf.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		containers := slf.containerRepo.WithTx(tx)
		nodes := slf.nodeRepo.WithTx(tx)

		if _, err := containers.FindByIDForUpdate(ctx, containerID); err != nil {
			return notFound(err, "flow container", containerID)
		}
		target, err := nodes.FindByID(ctx, nodeID)
		if err != nil {
			return notFound(err, "flow node", nodeID)
		}
		if target.ContainerID != containerID {
			return fmt.Errorf("node %s, container %s: %w", nodeID, containerID, ErrNodeNotInContainer)
		}

		cleared, err := slf.clearStartNodes(ctx, nodes, containerID, nodeID)
		if err != nil {
			return err
		}
		changed = append(changed, cleared...)

		marker, err := models.MarkerOf(containerID)
		if err != nil {
			return err
		}
		if err = nodes.SetStartMarker(ctx, nodeID, marker); err != nil {
			return err
		}
		if !target.IsStartNodeOfContainer.Present() {
			changed = append(changed, slf.event(containerID, nodeID, true))
		}
		return containers.SetStartNodeID(ctx, containerID, pkg.ToPtr(nodeID))
	})
	if err != nil {
		slf.logger.Error().Err(err).Str("containerId", containerID).Str("nodeId", nodeID).Msg("Error setting start node")
		return nil, err
	}

	slf.publish(ctx, changed)
	return slf.FindByID(ctx, containerID)
}

// ClearStartNode leaves containerID without a start node.
func (slf *ContainerService) ClearStartNode(ctx context.Context, containerID string) (*models.FlowContainer, error) {
	var changed []Event

	err := slf.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		containers := slf.containerRepo.WithTx(tx)

		if _, err := containers.FindByIDForUpdate(ctx, containerID); err != nil {
			return notFound(err, "flow container", containerID)
		}
		cleared, err := slf.clearStartNodes(ctx, slf.nodeRepo.WithTx(tx), containerID, "")
		if err != nil {
			return err
		}
		changed = cleared
		return containers.SetStartNodeID(ctx, containerID, nil)
	})
	if err != nil {
		slf.logger.Error().Err(err).Str("containerId", containerID).Msg("Error clearing start node")
		return nil, err
	}

	slf.publish(ctx, changed)
	return slf.FindByID(ctx, containerID)
}

// clearStartNodes removes the marker from every start node except keep.
func (slf *ContainerService) clearStartNodes(ctx context.Context, nodes *repo.FlowNodeRepository, containerID, keep string) ([]Event, error) {
	starts, err := nodes.FindStartNodes(ctx, containerID)
	if err != nil {
		return nil, err
	}

	var changed []Event
	for _, s := range starts {
		if s.ID == keep {
			continue
		}
		if err = nodes.SetStartMarker(ctx, s.ID, nil); err != nil {
			return nil, err
		}
		changed = append(changed, slf.event(containerID, s.ID, false))
	}
	return changed, nil
}

func (slf *ContainerService) event(containerID, nodeID string, isStart bool) Event {
	return Event{
		Type:        EventNodeClassified,
		ContainerID: containerID,
		NodeID:      nodeID,
		IsStartNode: isStart,
		Timestamp:   time.Now(),
	}
}

// publish never fails the request: the change is committed and editors can
// still pick it up on their next rebuild.
func (slf *ContainerService) publish(ctx context.Context, events []Event) {
	for _, ev := range events {
		if err := slf.publisher.Publish(ctx, ev); err != nil {
			metrics.ClassificationEvents.WithLabelValues("failed").Inc()
			slf.logger.Warn().Err(err).
				Str("containerId", ev.ContainerID).
				Str("nodeId", ev.NodeID).
				Msg("Failed to publish classification event")
			continue
		}
		metrics.ClassificationEvents.WithLabelValues("published").Inc()
	}
}

func notFound(err error, what, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return err
}
