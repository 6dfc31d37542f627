package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/skillshare/internal/container"
	"github.com/joshua-takyi/skillshare/internal/handlers"
	"github.com/joshua-takyi/skillshare/internal/helpers"
	"github.com/joshua-takyi/skillshare/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.CORS(container.Config.CORSOrigins))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	r.Static(helpers.UploadsURLPrefix, container.Config.UploadDir)

	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "skillshare-api",
			})
		})

		api.POST("/register", handlers.RegisterUser(container.UserService))
		api.POST("/login", handlers.LoginUser(container.UserService))
	}

	profileRoutes := api.Group("/profile")
	{
		profileRoutes.GET("/:username", handlers.GetProfile(container.UserService))
		profileRoutes.PUT("/:username", handlers.UpdateProfile(container.UserService))
	}

	postRoutes := api.Group("/posts")
	{
		postRoutes.POST("", handlers.CreatePost(container.PostService))
		postRoutes.GET("", handlers.ListPosts(container.PostService))
		postRoutes.POST("/connect/:postId", handlers.ConnectPost(container.PostService))
	}

	aadhaarRoutes := api.Group("/verify-aadhaar")
	{
		aadhaarRoutes.POST("/request-otp", handlers.RequestAadhaarOtp(container.AadhaarService))
		aadhaarRoutes.POST("/submit-otp", handlers.SubmitAadhaarOtp(container.AadhaarService))
	}

	return r
}
