package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authControllers "github.com/aurelia-jewels/jewelry-api/controllers/auth"
	"github.com/aurelia-jewels/jewelry-api/middleware"
)

// SetupAuthRoutes registers the "/api/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", authControllers.Register(db))
		authGroup.POST("/login", authControllers.Login(db))
		authGroup.POST("/logout", authControllers.Logout())

		authGroup.GET("/profile", middleware.ValidateToken, authControllers.GetProfile(db))
		authGroup.PUT("/profile", middleware.ValidateToken, authControllers.UpdateProfile(db))
	}
}
