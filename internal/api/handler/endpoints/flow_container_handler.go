package endpoints

import (
	"flowstudio"
	"flowstudio/internal/api/handler/mapper"
	"flowstudio/internal/api/handler/middleware"
	"flowstudio/internal/api/handler/request"
	"flowstudio/internal/api/handler/response"
	"flowstudio/internal/api/service"
	"flowstudio/pkg"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// editorRoles may create, delete and reclassify flow nodes and containers.
var editorRoles = []string{"editor", "admin"}

type flowContainerHandler struct {
	containerService *service.ContainerService
	flowMapper       mapper.FlowMapper
	config           flowstudio.AppConfig
	logger           zerolog.Logger
}

func newFlowContainerHandler(publisher service.EventPublisher) *flowContainerHandler {
	return &flowContainerHandler{
		containerService: service.NewContainerService(publisher),
		flowMapper:       mapper.NewFlowMapper(),
		config:           flowstudio.GetConfig(),
		logger:           flowstudio.Logger,
	}
}

func FlowContainerHandler(router gin.IRouter, publisher service.EventPublisher) {
	h := newFlowContainerHandler(publisher)

	routes := router.Group("/api/v1/flow-containers")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.POST("", middleware.RequireRole(h.config, editorRoles...), h.create)
		routes.GET("/:id", h.getByID)
		routes.PUT("/:id/start-node", middleware.RequireRole(h.config, editorRoles...), h.setStartNode)
		routes.DELETE("/:id/start-node", middleware.RequireRole(h.config, editorRoles...), h.clearStartNode)
	}
}

func (slf *flowContainerHandler) create(c *gin.Context) {
	var req request.CreateFlowContainer
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to parse create flow container request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	created, err := slf.containerService.Create(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, slf.flowMapper.ToFlowContainerResponse(*created))
}

func (slf *flowContainerHandler) getByID(c *gin.Context) {
	container, err := slf.containerService.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, slf.flowMapper.ToFlowContainerResponse(*container))
}

// setStartNode makes the given node the container's entry point
func (slf *flowContainerHandler) setStartNode(c *gin.Context) {
	var req request.SetStartNode
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	container, err := slf.containerService.SetStartNode(c.Request.Context(), c.Param("id"), req.NodeID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, slf.flowMapper.ToFlowContainerResponse(*container))
}

func (slf *flowContainerHandler) clearStartNode(c *gin.Context) {
	container, err := slf.containerService.ClearStartNode(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, slf.flowMapper.ToFlowContainerResponse(*container))
}
