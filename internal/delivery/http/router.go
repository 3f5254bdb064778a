package http

import (
	"net/http"
	"time"

	"github.com/gdugdh24/videochat-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/videochat-backend/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	sessionHandler *handler.SessionHandler
	economyHandler *handler.EconomyHandler
	matchHandler   *handler.MatchHandler
	tokenHandler   *handler.TokenHandler
}

func NewRouter(
	sessionHandler *handler.SessionHandler,
	economyHandler *handler.EconomyHandler,
	matchHandler *handler.MatchHandler,
	tokenHandler *handler.TokenHandler,
) *Router {
	return &Router{
		sessionHandler: sessionHandler,
		economyHandler: economyHandler,
		matchHandler:   matchHandler,
		tokenHandler:   tokenHandler,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()
	router.HandleMethodNotAllowed = true
	router.NoMethod(handler.MethodNotAllowed)

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	router.GET("/api/ping", func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.JSON(http.StatusOK, gin.H{
			"ok":  true,
			"now": time.Now().UnixMilli(),
		})
	})

	// Agora token routes
	agora := router.Group("/api/agora-token")
	agora.Use(middleware.NoCache(), middleware.AllowAnyOrigin())
	{
		agora.GET("", r.tokenHandler.AgoraToken)
		// Registered on the group so these answers keep its headers.
		agora.OPTIONS("", handler.Preflight)
		for _, method := range []string{
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodHead,
		} {
			agora.Handle(method, "", handler.MethodNotAllowed)
		}
	}
	router.POST("/token", r.tokenHandler.LegacyToken)

	// API v1
	v1 := router.Group("/api/v1")
	{
		v1.POST("/sessions", r.sessionHandler.Start)

		// Session-scoped routes
		scoped := v1.Group("")
		scoped.Use(middleware.RequireSession())
		{
			scoped.DELETE("/sessions/me", r.sessionHandler.End)

			economy := scoped.Group("/economy")
			{
				economy.GET("", r.economyHandler.GetStatus)
				economy.POST("/coins", r.economyHandler.AddCoins)
				economy.POST("/boost", r.economyHandler.PurchaseBoost)
				economy.GET("/packages", r.economyHandler.ListPackages)
				economy.POST("/packages/:index", r.economyHandler.BuyPackage)
			}

			match := scoped.Group("/match")
			{
				match.POST("", r.matchHandler.FindMatch)
				match.GET("/current", r.matchHandler.CurrentMatch)
				match.DELETE("/current", r.matchHandler.EndCall)
			}

			settings := scoped.Group("/settings")
			{
				settings.GET("", r.sessionHandler.GetSettings)
				settings.PUT("", r.sessionHandler.UpdateSettings)
			}
		}
	}

	registerPreflight(router)

	return router
}

// registerPreflight adds an OPTIONS route to every path that lacks one.
// Unknown paths still answer 404.
func registerPreflight(router *gin.Engine) {
	hasOptions := make(map[string]bool)
	var paths []string
	for _, route := range router.Routes() {
		if route.Method == http.MethodOptions {
			hasOptions[route.Path] = true
			continue
		}
		if _, seen := hasOptions[route.Path]; !seen {
			hasOptions[route.Path] = false
			paths = append(paths, route.Path)
		}
	}

	for _, path := range paths {
		if !hasOptions[path] {
			router.OPTIONS(path, handler.Preflight)
		}
	}
}
