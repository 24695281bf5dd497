package endpoints

import (
	"errors"
	"net/http"

	"flowstudio/internal/api/handler/response"
	"flowstudio/internal/api/service"
	"flowstudio/internal/editor/plugin"

	"github.com/gin-gonic/gin"
)

// writeError maps service errors onto status codes.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, plugin.ErrUnknownKind):
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
	case errors.Is(err, service.ErrNodeNotInContainer):
		c.JSON(http.StatusConflict, response.APIError{Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Internal server error"})
	}
}
