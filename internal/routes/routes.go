package routes

import (
	"net/http"
	"time"

	"shortboard/internal/container"
	"shortboard/internal/middleware"
	"shortboard/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const requestTimeout = 30 * time.Second

// Register wires every route of the service onto the router. Everything
// under /api requires a valid token; login and health are public.
func Register(router *gin.Engine, c *container.Container, log *zap.Logger) {
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.TimeoutMiddleware(requestTimeout))

	c.LoginHandler.RegisterRoutes(router)

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := router.Group("/api")
	protected.Use(security.JWTMiddleware())

	c.TrackingHandler.RegisterRoutes(protected)
	c.UserHandler.RegisterRoutes(protected)
	if c.SheetsHandler != nil {
		c.SheetsHandler.RegisterRoutes(protected)
	}
}
