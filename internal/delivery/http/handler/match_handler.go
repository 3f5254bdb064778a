package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gdugdh24/videochat-backend/internal/domain"
	"github.com/gdugdh24/videochat-backend/internal/usecase/session"
	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	sessionUseCase *session.SessionUseCase
}

func NewMatchHandler(sessionUseCase *session.SessionUseCase) *MatchHandler {
	return &MatchHandler{
		sessionUseCase: sessionUseCase,
	}
}

// FindMatch handles POST /match
// @Summary Find a match
// @Description Blocks for the matchmaking delay, then returns a match or a failure message
// @Tags match
// @Accept json
// @Produce json
// @Param request body session.FindMatchRequest false "Match preferences"
// @Success 200 {object} domain.MatchResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 408 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /match [post]
func (h *MatchHandler) FindMatch(c *gin.Context) {
	var req session.FindMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	result, err := h.sessionUseCase.FindMatch(c.Request.Context(), sessionID(c), &req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			c.JSON(http.StatusRequestTimeout, ErrorResponse{
				Error: "match request cancelled",
			})
			return
		}
		writeSessionError(c, err, "Error finding match. Please try again.")
		return
	}

	c.JSON(http.StatusOK, result)
}

// CurrentMatch handles GET /match/current
func (h *MatchHandler) CurrentMatch(c *gin.Context) {
	match, err := h.sessionUseCase.CurrentMatch(c.Request.Context(), sessionID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNoCurrentMatch) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "no current match",
			})
			return
		}
		writeSessionError(c, err, "failed to get current match")
		return
	}

	c.JSON(http.StatusOK, match)
}

// EndCall handles DELETE /match/current
func (h *MatchHandler) EndCall(c *gin.Context) {
	if err := h.sessionUseCase.EndCall(c.Request.Context(), sessionID(c)); err != nil {
		writeSessionError(c, err, "failed to end call")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "call ended",
	})
}
