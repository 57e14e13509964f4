package router

import (
	"github.com/flavr-travel/flavr-backend/config"
	"github.com/flavr-travel/flavr-backend/internal/app/controller"
	"github.com/flavr-travel/flavr-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController           *controller.AuthController
	dashboardController      *controller.DashboardController
	destinationController    *controller.DestinationController
	recommendationController *controller.RecommendationController
	personController         *controller.PersonController
	blogController           *controller.BlogController
	subscriberController     *controller.SubscriberController
	uploadController         *controller.UploadController
	authMiddleware           *middleware.AuthMiddleware
	config                   *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	dashboardController *controller.DashboardController,
	destinationController *controller.DestinationController,
	recommendationController *controller.RecommendationController,
	personController *controller.PersonController,
	blogController *controller.BlogController,
	subscriberController *controller.SubscriberController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:           authController,
		dashboardController:      dashboardController,
		destinationController:    destinationController,
		recommendationController: recommendationController,
		personController:         personController,
		blogController:           blogController,
		subscriberController:     subscriberController,
		uploadController:         uploadController,
		authMiddleware:           authMiddleware,
		config:                   cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Flavr admin API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authController.Logout)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
		}

		// Every content route is admin-only. Non-admin tokens never get
		// past the guard even though they are valid sessions.
		admin := v1.Group("")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireAdmin())
		{
			dashboard := admin.Group("/dashboard")
			{
				dashboard.GET("/snapshot", r.dashboardController.Snapshot)
				dashboard.POST("/refresh", r.dashboardController.Refresh)
			}

			destinations := admin.Group("/destinations")
			{
				destinations.GET("", r.destinationController.List)
				destinations.GET("/:id", r.destinationController.Get)
				destinations.POST("", r.destinationController.Create)
				destinations.PATCH("/:id", r.destinationController.Update)
				destinations.DELETE("/:id", r.destinationController.Delete)
			}

			recommendations := admin.Group("/recommendations")
			{
				recommendations.GET("", r.recommendationController.List)
				recommendations.GET("/:id", r.recommendationController.Get)
				recommendations.POST("", r.recommendationController.Create)
				recommendations.PATCH("/:id", r.recommendationController.Update)
				recommendations.DELETE("/:id", r.recommendationController.Delete)
			}

			people := admin.Group("/people")
			{
				people.GET("", r.personController.List)
				people.GET("/:id", r.personController.Get)
				people.POST("", r.personController.Create)
				people.PATCH("/:id", r.personController.Update)
				people.DELETE("/:id", r.personController.Delete)
			}

			blogPosts := admin.Group("/blog-posts")
			{
				blogPosts.GET("", r.blogController.List)
				blogPosts.GET("/:id", r.blogController.Get)
				blogPosts.POST("", r.blogController.Create)
				blogPosts.PATCH("/:id", r.blogController.Update)
				blogPosts.DELETE("/:id", r.blogController.Delete)
			}

			subscribers := admin.Group("/subscribers")
			{
				subscribers.GET("", r.subscriberController.List)
				subscribers.GET("/export", r.subscriberController.Export)
			}

			upload := admin.Group("/upload")
			{
				upload.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
			}
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
