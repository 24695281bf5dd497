package endpoints

import (
	"errors"
	"flowstudio"
	"flowstudio/internal/api/handler/mapper"
	"flowstudio/internal/api/handler/middleware"
	"flowstudio/internal/api/handler/request"
	"flowstudio/internal/api/handler/response"
	"flowstudio/internal/api/service"
	"flowstudio/internal/editor/plugin"
	"flowstudio/pkg"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type flowNodeHandler struct {
	nodeService   *service.FlowNodeService
	editorService *service.NodeEditorService
	flowMapper    mapper.FlowMapper
	config        flowstudio.AppConfig
	logger        zerolog.Logger
}

func newFlowNodeHandler(descriptors *plugin.Registry) *flowNodeHandler {
	return &flowNodeHandler{
		nodeService:   service.NewFlowNodeService(descriptors),
		editorService: service.NewNodeEditorService(descriptors),
		flowMapper:    mapper.NewFlowMapper(),
		config:        flowstudio.GetConfig(),
		logger:        flowstudio.Logger,
	}
}

func FlowNodeHandler(router gin.IRouter, descriptors *plugin.Registry) {
	h := newFlowNodeHandler(descriptors)

	routes := router.Group("/api/v1/flow-nodes")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.POST("", middleware.RequireRole(h.config, editorRoles...), h.create)
		routes.GET("/:id", h.getByID)
		routes.GET("/:id/editor", h.editor)
		routes.DELETE("/:id", middleware.RequireRole(h.config, editorRoles...), h.delete)
	}
}

func (slf *flowNodeHandler) create(c *gin.Context) {
	var req request.CreateFlowNode
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to parse create flow node request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	created, err := slf.nodeService.Create(c.Request.Context(), slf.flowMapper.CreateFlowNode(req))
	if errors.Is(err, plugin.ErrUnknownKind) {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, slf.flowMapper.ToFlowNodeResponse(*created))
}

func (slf *flowNodeHandler) getByID(c *gin.Context) {
	n, err := slf.nodeService.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, slf.flowMapper.ToFlowNodeResponse(*n))
}

// editor returns the built editor container for the node
func (slf *flowNodeHandler) editor(c *gin.Context) {
	n, err := slf.editorService.Build(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (slf *flowNodeHandler) delete(c *gin.Context) {
	if err := slf.nodeService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
