package handler

import (
	"errors"
	"net/http"

	"github.com/gdugdh24/videochat-backend/internal/domain"
	"github.com/gdugdh24/videochat-backend/internal/usecase/token"
	"github.com/gin-gonic/gin"
)

type TokenHandler struct {
	tokenUseCase *token.TokenUseCase
}

func NewTokenHandler(tokenUseCase *token.TokenUseCase) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: tokenUseCase,
	}
}

// AgoraToken handles GET /api/agora-token
// @Summary Mint an RTC token
// @Tags token
// @Produce json
// @Param channel query string true "Channel name"
// @Param uid query string false "User id, 0 when omitted"
// @Param role query string false "publisher (default) or subscriber"
// @Param expireSeconds query int false "Lifetime in seconds, at least 60"
// @Success 200 {object} token.MintResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/agora-token [get]
func (h *TokenHandler) AgoraToken(c *gin.Context) {
	var req token.MintRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid query",
		})
		return
	}

	resp, err := h.tokenUseCase.Mint(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMisconfigured):
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "Server misconfigured: missing AGORA_APP_ID or AGORA_APP_CERTIFICATE",
			})
		case errors.Is(err, domain.ErrMissingChannel):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "Missing channel",
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "Failed to generate token",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// LegacyTokenRequest is the body of POST /token.
type LegacyTokenRequest struct {
	ChannelName string `json:"channelName"`
}

// LegacyToken handles POST /token
// @Summary Mint an RTC token (legacy)
// @Tags token
// @Accept json
// @Produce json
// @Param request body LegacyTokenRequest true "Channel"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /token [post]
func (h *TokenHandler) LegacyToken(c *gin.Context) {
	var req LegacyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Channel name is required",
		})
		return
	}

	tok, err := h.tokenUseCase.MintLegacy(c.Request.Context(), req.ChannelName)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingChannel):
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "Channel name is required",
			})
		case errors.Is(err, domain.ErrMisconfigured):
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "Server configuration error",
			})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "Failed to generate token",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tok,
	})
}
