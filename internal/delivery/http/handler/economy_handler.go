package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gdugdh24/videochat-backend/internal/domain"
	"github.com/gdugdh24/videochat-backend/internal/usecase/session"
	"github.com/gin-gonic/gin"
)

type EconomyHandler struct {
	sessionUseCase *session.SessionUseCase
}

func NewEconomyHandler(sessionUseCase *session.SessionUseCase) *EconomyHandler {
	return &EconomyHandler{
		sessionUseCase: sessionUseCase,
	}
}

// AddCoinsRequest represents a coin top-up
type AddCoinsRequest struct {
	Amount *int `json:"amount" binding:"required,min=0"`
}

// BoostResponse reports a boost purchase. Not having enough coins is a
// normal outcome, not an error.
type BoostResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message,omitempty"`
	Status  domain.EconomyStatus `json:"status"`
}

// PackageResponse is one catalogue entry with its purchase index
type PackageResponse struct {
	Index int `json:"index"`
	domain.CoinPackage
}

// GetStatus handles GET /economy
// @Summary Get coins and boost status
// @Tags economy
// @Produce json
// @Success 200 {object} domain.EconomyStatus
// @Failure 404 {object} ErrorResponse
// @Router /economy [get]
func (h *EconomyHandler) GetStatus(c *gin.Context) {
	status, err := h.sessionUseCase.Status(c.Request.Context(), sessionID(c))
	if err != nil {
		writeSessionError(c, err, "failed to get status")
		return
	}

	c.JSON(http.StatusOK, status)
}

// AddCoins handles POST /economy/coins
// @Summary Add coins
// @Tags economy
// @Accept json
// @Produce json
// @Param request body AddCoinsRequest true "Amount"
// @Success 200 {object} domain.EconomyStatus
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /economy/coins [post]
func (h *EconomyHandler) AddCoins(c *gin.Context) {
	var req AddCoinsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	status, err := h.sessionUseCase.AddCoins(c.Request.Context(), sessionID(c), *req.Amount)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: err.Error(),
			})
			return
		}
		writeSessionError(c, err, "failed to add coins")
		return
	}

	c.JSON(http.StatusOK, status)
}

// PurchaseBoost handles POST /economy/boost
// @Summary Purchase a boost
// @Tags economy
// @Produce json
// @Success 200 {object} BoostResponse
// @Failure 404 {object} ErrorResponse
// @Router /economy/boost [post]
func (h *EconomyHandler) PurchaseBoost(c *gin.Context) {
	status, err := h.sessionUseCase.PurchaseBoost(c.Request.Context(), sessionID(c))
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			c.JSON(http.StatusOK, BoostResponse{
				Success: false,
				Message: err.Error(),
				Status:  status,
			})
			return
		}
		writeSessionError(c, err, "failed to purchase boost")
		return
	}

	c.JSON(http.StatusOK, BoostResponse{
		Success: true,
		Status:  status,
	})
}

// ListPackages handles GET /economy/packages
func (h *EconomyHandler) ListPackages(c *gin.Context) {
	packages := make([]PackageResponse, 0, len(domain.CoinPackages))
	for i, pkg := range domain.CoinPackages {
		packages = append(packages, PackageResponse{Index: i, CoinPackage: pkg})
	}

	c.JSON(http.StatusOK, packages)
}

// BuyPackage handles POST /economy/packages/:index
// @Summary Buy a coin package
// @Tags economy
// @Produce json
// @Param index path int true "Package index"
// @Success 200 {object} domain.EconomyStatus
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /economy/packages/{index} [post]
func (h *EconomyHandler) BuyPackage(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid package index",
		})
		return
	}

	status, err := h.sessionUseCase.BuyPackage(c.Request.Context(), sessionID(c), index)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPackage) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "package not found",
			})
			return
		}
		writeSessionError(c, err, "failed to buy package")
		return
	}

	c.JSON(http.StatusOK, status)
}
