package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"flowstudio/internal/api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainer_SetStartNode(t *testing.T) {
	registry := setupServiceTest(t)
	ctx := context.Background()
	publisher := &recordingPublisher{}
	containers := NewContainerService(publisher)
	nodes := NewFlowNodeService(registry)

	c, created := createContainerWithNodes(t, containers, nodes, models.NodeKindForEach, models.NodeKindAction)

	updated, err := containers.SetStartNode(ctx, c.ID, created[0].ID)
	require.NoError(t, err)
	require.NotNil(t, updated.StartNodeID)
	assert.Equal(t, created[0].ID, *updated.StartNodeID)

	first, err := nodes.FindByID(ctx, created[0].ID)
	require.NoError(t, err)
	var containerID string
	require.NoError(t, first.IsStartNodeOfContainer.Decode(&containerID))
	assert.Equal(t, c.ID, containerID)

	events := publisher.snapshot()
	require.Len(t, events, 1)
	assert.Equal(t, EventNodeClassified, events[0].Type)
	assert.Equal(t, created[0].ID, events[0].NodeID)
	assert.True(t, events[0].IsStartNode)
}

func TestContainer_SetStartNodeMovesFlag(t *testing.T) {
	registry := setupServiceTest(t)
	ctx := context.Background()
	publisher := &recordingPublisher{}
	containers := NewContainerService(publisher)
	nodes := NewFlowNodeService(registry)

	c, created := createContainerWithNodes(t, containers, nodes, models.NodeKindForEach, models.NodeKindAction)

	_, err := containers.SetStartNode(ctx, c.ID, created[0].ID)
	require.NoError(t, err)
	_, err = containers.SetStartNode(ctx, c.ID, created[1].ID)
	require.NoError(t, err)

	first, err := nodes.FindByID(ctx, created[0].ID)
	require.NoError(t, err)
	second, err := nodes.FindByID(ctx, created[1].ID)
	require.NoError(t, err)
	assert.False(t, first.IsStartNodeOfContainer.Present())
	assert.True(t, second.IsStartNodeOfContainer.Present())

	events := publisher.snapshot()
	require.Len(t, events, 3)
	assert.Equal(t, created[0].ID, events[1].NodeID)
	assert.False(t, events[1].IsStartNode)
	assert.Equal(t, created[1].ID, events[2].NodeID)
	assert.True(t, events[2].IsStartNode)
}

func TestContainer_SetStartNodeIdempotent(t *testing.T) {
	registry := setupServiceTest(t)
	ctx := context.Background()
	publisher := &recordingPublisher{}
	containers := NewContainerService(publisher)
	nodes := NewFlowNodeService(registry)

	c, created := createContainerWithNodes(t, containers, nodes, models.NodeKindForEach)

	_, err := containers.SetStartNode(ctx, c.ID, created[0].ID)
	require.NoError(t, err)
	_, err = containers.SetStartNode(ctx, c.ID, created[0].ID)
	require.NoError(t, err)

	assert.Len(t, publisher.snapshot(), 1, "an unchanged flag is not announced again")
}

func TestContainer_SetStartNodeForeignNode(t *testing.T) {
	registry := setupServiceTest(t)
	ctx := context.Background()
	containers := NewContainerService(nil)
	nodes := NewFlowNodeService(registry)

	c1, _ := createContainerWithNodes(t, containers, nodes)
	_, created := createContainerWithNodes(t, containers, nodes, models.NodeKindForEach)

	_, err := containers.SetStartNode(ctx, c1.ID, created[0].ID)
	assert.ErrorIs(t, err, ErrNodeNotInContainer)

	n, err := nodes.FindByID(ctx, created[0].ID)
	require.NoError(t, err)
	assert.False(t, n.IsStartNodeOfContainer.Present())
}

func TestContainer_SetStartNodeNotFound(t *testing.T) {
	registry := setupServiceTest(t)
	ctx := context.Background()
	containers := NewContainerService(nil)
	nodes := NewFlowNodeService(registry)

	c, _ := createContainerWithNodes(t, containers, nodes)

	_, err := containers.SetStartNode(ctx, "missing", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = containers.SetStartNode(ctx, c.ID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContainer_ClearStartNode(t *testing.T) {
	registry := setupServiceTest(t)
	ctx := context.Background()
	publisher := &recordingPublisher{}
	containers := NewContainerService(publisher)
	nodes := NewFlowNodeService(registry)

	c, created := createContainerWithNodes(t, containers, nodes, models.NodeKindForEach)
	_, err := containers.SetStartNode(ctx, c.ID, created[0].ID)
	require.NoError(t, err)

	updated, err := containers.ClearStartNode(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.StartNodeID)

	n, err := nodes.FindByID(ctx, created[0].ID)
	require.NoError(t, err)
	assert.False(t, n.IsStartNodeOfContainer.Present())

	events := publisher.snapshot()
	require.Len(t, events, 2)
	assert.False(t, events[1].IsStartNode)
}

func TestContainer_PublishFailureDoesNotFail(t *testing.T) {
	registry := setupServiceTest(t)
	ctx := context.Background()
	publisher := &recordingPublisher{err: errors.New("nats down")}
	containers := NewContainerService(publisher)
	nodes := NewFlowNodeService(registry)

	c, created := createContainerWithNodes(t, containers, nodes, models.NodeKindForEach)

	_, err := containers.SetStartNode(ctx, c.ID, created[0].ID)
	require.NoError(t, err)
	assert.Len(t, publisher.snapshot(), 1)
}

func TestContainer_FindByIDNotFound(t *testing.T) {
	setupServiceTest(t)

	_, err := NewContainerService(nil).FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContainer_ConcurrentSetStartNodeKeepsOneStart(t *testing.T) {
	registry := setupServiceTest(t)
	ctx := context.Background()
	containers := NewContainerService(&recordingPublisher{})
	nodes := NewFlowNodeService(registry)

	c, created := createContainerWithNodes(t, containers, nodes,
		models.NodeKindForEach, models.NodeKindAction, models.NodeKindAction, models.NodeKindReturn)

	var wg sync.WaitGroup
	for _, n := range created {
		wg.Add(1)
		go func(nodeID string) {
			defer wg.Done()
			_, err := containers.SetStartNode(ctx, c.ID, nodeID)
			assert.NoError(t, err)
		}(n.ID)
	}
	wg.Wait()

	var starts []string
	for _, n := range created {
		found, err := nodes.FindByID(ctx, n.ID)
		require.NoError(t, err)
		if found.IsStartNodeOfContainer.Present() {
			starts = append(starts, found.ID)
		}
	}
	require.Len(t, starts, 1)

	container, err := containers.FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, container.StartNodeID)
	assert.Equal(t, starts[0], *container.StartNodeID)
}
