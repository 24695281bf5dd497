package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"flowstudio"
	"flowstudio/internal/api/models"
	"flowstudio/internal/editor/plugin"
	"flowstudio/internal/editor/socket"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupServiceTest(t *testing.T) *plugin.Registry {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), flowstudio.GormConfig())
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.FlowContainer{}, &models.FlowNode{}))
	conn, err := db.DB()
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	flowstudio.DB = db
	flowstudio.Logger = zerolog.Nop()
	flowstudio.Redis = nil

	return plugin.NewDefaultRegistry(socket.NewFlowSockets(), plugin.MustTemplateEngine())
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (slf *recordingPublisher) Publish(_ context.Context, event Event) error {
	slf.mu.Lock()
	defer slf.mu.Unlock()
	slf.events = append(slf.events, event)
	return slf.err
}

func (slf *recordingPublisher) snapshot() []Event {
	slf.mu.Lock()
	defer slf.mu.Unlock()
	return append([]Event(nil), slf.events...)
}

func createContainerWithNodes(t *testing.T, containers *ContainerService, nodes *FlowNodeService, kinds ...models.NodeKind) (*models.FlowContainer, []*models.FlowNode) {
	ctx := context.Background()
	c, err := containers.Create(ctx, "flow")
	require.NoError(t, err)

	created := make([]*models.FlowNode, 0, len(kinds))
	for i, kind := range kinds {
		n, err := nodes.Create(ctx, models.FlowNode{Kind: kind, Name: fmt.Sprintf("node-%d", i), ContainerID: c.ID})
		require.NoError(t, err)
		created = append(created, n)
	}
	return c, created
}
