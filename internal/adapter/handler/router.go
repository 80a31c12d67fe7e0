package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/coursepulse/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	analyzeController *AnalyzeController
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, analyzeController *AnalyzeController) *Router {
	return &Router{
		cfg:               cfg,
		analyzeController: analyzeController,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// Unversioned route kept for existing clients
	e.POST("/analyze", rt.analyzeController.Analyze)

	// API v1 group
	v1 := e.Group("/v1")
	v1.POST("/analyze", rt.analyzeController.Analyze)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().Format(time.RFC3339),
		"environment": rt.cfg.Server.Environment,
	})
}
