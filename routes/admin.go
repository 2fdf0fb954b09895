package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminController "github.com/aurelia-jewels/jewelry-api/controllers/admin"
	"github.com/aurelia-jewels/jewelry-api/middleware"
)

// SetupAdminRoutes registers the "/api/admin/*" endpoints. Requires the admin
// role on top of a valid token.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.AdminOnly)
	{
		adminGroup.POST("/products", adminController.CreateProduct(db))
		adminGroup.PUT("/products/:id", adminController.UpdateProduct(db))
		adminGroup.DELETE("/products/:id", adminController.DeleteProduct(db))
		adminGroup.GET("/products/export", adminController.ExportProductsToExcel(db))

		adminGroup.GET("/orders", adminController.GetAllOrders(db))
	}
}
