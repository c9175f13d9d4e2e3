package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"fleet-tracking-service/internal/http/middleware"
)

// NewRouter assembles the gin engine: request ids, CORS, a public health
// probe, and the protected API surface.
func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, environment string, allowOrigins []string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	corsConfig := cors.DefaultConfig()
	if len(allowOrigins) > 0 {
		corsConfig.AllowOrigins = allowOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Fleet Tracking API is running"})
	})

	handler.Register(r, authMiddleware)

	return r
}
