// api/router/router.go

package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sagelms/sage/api/controller"
	"github.com/sagelms/sage/api/middleware"
	"github.com/sagelms/sage/api/service"
)

func SetupRouter(
	controllers *controller.Controllers,
	authService service.IAuthService,
	limiter middleware.Limiter,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(limiter, rateLimitRequests, rateLimitDuration))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success", "timestamp": time.Now()})
	})

	api := router.Group("/api/v1")

	// Public routes
	controllers.Auth.RegisterRoutes(api)

	// Everything else requires a valid, unrevoked session token
	protected := api.Group("")
	protected.Use(middleware.Authenticate(authService))

	protected.POST("/auth/logout", controllers.Auth.Logout)
	protected.GET("/auth/me", controllers.Auth.Me)

	controllers.AI.RegisterRoutes(protected)
	controllers.Course.RegisterRoutes(protected)
	controllers.Audit.RegisterRoutes(protected)

	return router
}
