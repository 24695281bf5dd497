package endpoints

import (
	"flowstudio"
	"flowstudio/internal/api/handler/middleware"
	"flowstudio/internal/api/handler/response"
	"flowstudio/internal/api/service"
	"flowstudio/internal/api/websocket"
	"flowstudio/pkg"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gorillaws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type websocketHandler struct {
	hub              *websocket.Hub
	containerService *service.ContainerService
	logger           zerolog.Logger
	config           flowstudio.AppConfig
}

func newWebSocketHandler(hub *websocket.Hub) *websocketHandler {
	return &websocketHandler{
		hub:              hub,
		containerService: service.NewContainerService(service.NopPublisher{}),
		logger:           flowstudio.Logger,
		config:           flowstudio.GetConfig(),
	}
}

// WebSocketHandler sets up WebSocket routes
func WebSocketHandler(router gin.IRouter, hub *websocket.Hub) {
	h := newWebSocketHandler(hub)

	wsRoutes := router.Group("/api/v1/ws")
	{
		wsRoutes.GET("/containers/:id", h.authenticate, h.handleWebSocket)
		wsRoutes.GET("/stats", middleware.AuthMiddleware(h.config), h.getRoomStats)
	}
}

// authenticate accepts the token as a query parameter since browsers cannot
// set headers on a websocket handshake.
func (slf *websocketHandler) authenticate(c *gin.Context) {
	if slf.config.Mode == "dev" {
		c.Next()
		return
	}

	token := c.Query("token")
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.APIError{Message: "missing token"})
		return
	}
	claims, err := pkg.ValidateToken(token, slf.config.JWTConfig.Secret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, response.APIError{Message: "invalid token"})
		return
	}
	c.Set("userID", claims.UserID)
	c.Next()
}

// handleWebSocket subscribes the caller to a container's classification events
func (slf *websocketHandler) handleWebSocket(c *gin.Context) {
	containerID := c.Param("id")
	if _, err := slf.containerService.FindByID(c.Request.Context(), containerID); err != nil {
		writeError(c, err)
		return
	}

	var userID uint
	if raw, ok := c.Get("userID"); ok {
		userID, _ = raw.(uint)
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to upgrade to WebSocket")
		return
	}

	clientID := uuid.New().String()
	client := websocket.NewClient(clientID, userID, containerID, slf.hub, conn, slf.logger)
	if !slf.hub.Join(client) {
		slf.logger.Warn().Str("clientId", clientID).Msg("WebSocket hub stopped, dropping connection")
		conn.Close()
		return
	}

	slf.logger.Info().
		Str("clientId", clientID).
		Uint("userId", userID).
		Str("containerId", containerID).
		Msg("WebSocket connection established")

	go client.WritePump()
	go client.ReadPump()
}

// getRoomStats returns statistics about all active rooms
func (slf *websocketHandler) getRoomStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"rooms": slf.hub.GetRoomStats(),
	})
}
