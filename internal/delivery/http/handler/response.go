package handler

import (
	"net/http"

	"github.com/gdugdh24/videochat-backend/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}

func sessionID(c *gin.Context) string {
	return c.GetString(middleware.SessionContextKey)
}

// Preflight answers CORS preflight requests with 204. The CORS headers are
// set by the server before the request reaches the router.
func Preflight(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// MethodNotAllowed rejects a method the matched path does not serve.
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, ErrorResponse{
		Error: "Method not allowed",
	})
}
