package endpoints

import (
	"flowstudio"
	"flowstudio/internal/api/handler/middleware"
	"flowstudio/internal/api/models"
	"flowstudio/internal/api/service"
	"flowstudio/internal/editor/plugin"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type nodeKindHandler struct {
	kindService   *service.NodeKindService
	editorService *service.NodeEditorService
	config        flowstudio.AppConfig
	logger        zerolog.Logger
}

func newNodeKindHandler(descriptors *plugin.Registry) *nodeKindHandler {
	cfg := flowstudio.GetConfig()
	return &nodeKindHandler{
		kindService:   service.NewNodeKindService(descriptors, cfg.CatalogTTL),
		editorService: service.NewNodeEditorService(descriptors),
		config:        cfg,
		logger:        flowstudio.Logger,
	}
}

// NodeKindHandler serves the node kinds the editor can place.
func NodeKindHandler(router gin.IRouter, descriptors *plugin.Registry) {
	h := newNodeKindHandler(descriptors)

	routes := router.Group("/api/v1/node-kinds")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.GET("", h.getAll)
		routes.GET("/:kind", h.getByKind)
		routes.GET("/:kind/preview", h.preview)
	}
}

// getAll returns every kind with its topology and template
func (slf *nodeKindHandler) getAll(c *gin.Context) {
	entries, err := slf.kindService.Catalog(c.Request.Context())
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to build node kind catalog")
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (slf *nodeKindHandler) getByKind(c *gin.Context) {
	entry, err := slf.kindService.Describe(c.Request.Context(), models.NodeKind(c.Param("kind")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// preview builds a container for the kind with no backing node
func (slf *nodeKindHandler) preview(c *gin.Context) {
	n, err := slf.editorService.Preview(models.NodeKind(c.Param("kind")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}
