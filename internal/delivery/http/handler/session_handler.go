package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gdugdh24/videochat-backend/internal/domain"
	"github.com/gdugdh24/videochat-backend/internal/usecase/session"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionUseCase *session.SessionUseCase
}

func NewSessionHandler(sessionUseCase *session.SessionUseCase) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
	}
}

// Start handles POST /sessions
// @Summary Start a matchmaking session
// @Description Registers the current user context and loads their coins and boost
// @Tags session
// @Accept json
// @Produce json
// @Param request body session.StartRequest false "Current user"
// @Success 201 {object} session.StartResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) Start(c *gin.Context) {
	var req session.StartRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	resp, err := h.sessionUseCase.Start(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to start session",
		})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// End handles DELETE /sessions/me
// @Summary End the session
// @Tags session
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/me [delete]
func (h *SessionHandler) End(c *gin.Context) {
	if err := h.sessionUseCase.End(c.Request.Context(), sessionID(c)); err != nil {
		writeSessionError(c, err, "failed to end session")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "session ended",
	})
}

// GetSettings handles GET /settings
func (h *SessionHandler) GetSettings(c *gin.Context) {
	settings, err := h.sessionUseCase.GetSettings(c.Request.Context(), sessionID(c))
	if err != nil {
		writeSessionError(c, err, "failed to get settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /settings
// @Summary Save filter settings
// @Tags session
// @Accept json
// @Produce json
// @Param request body domain.Settings true "Settings"
// @Success 200 {object} domain.Settings
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /settings [put]
func (h *SessionHandler) UpdateSettings(c *gin.Context) {
	var req domain.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	settings, err := h.sessionUseCase.UpdateSettings(c.Request.Context(), sessionID(c), req)
	if err != nil {
		writeSessionError(c, err, "failed to save settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// writeSessionError maps an unknown session to 404 and anything else to 500
// with fallback as the message.
func writeSessionError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "session not found",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: fallback,
	})
}
