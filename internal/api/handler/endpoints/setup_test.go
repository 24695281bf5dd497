package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"flowstudio"
	"flowstudio/internal/api/models"
	"flowstudio/internal/api/service"
	"flowstudio/internal/editor/plugin"
	"flowstudio/internal/editor/socket"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testPublisher struct {
	events []service.Event
}

func (slf *testPublisher) Publish(_ context.Context, event service.Event) error {
	slf.events = append(slf.events, event)
	return nil
}

// setupRouter wires every route against a private in-memory database in dev mode.
func setupRouter(t *testing.T) (*gin.Engine, *testPublisher) {
	gin.SetMode(gin.TestMode)

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
	flowstudio.SetConfig(flowstudio.AppConfig{Mode: "dev"})

	publisher := &testPublisher{}
	return newRouter(plugin.NewDefaultRegistry(socket.NewFlowSockets(), plugin.MustTemplateEngine()), publisher), publisher
}

func newRouter(descriptors *plugin.Registry, publisher service.EventPublisher) *gin.Engine {
	router := gin.New()
	NodeKindHandler(router, descriptors)
	FlowNodeHandler(router, descriptors)
	FlowContainerHandler(router, publisher)
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
