package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	chatControllers "github.com/aurelia-jewels/jewelry-api/controllers/chat"
	productcontroller "github.com/aurelia-jewels/jewelry-api/controllers/product"
)

// SetupCatalogRoutes registers the public product browse/search endpoints and
// the shopping assistant.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	productGroup := r.Group("/api/products")
	{
		productGroup.GET("", productcontroller.GetProducts(db))
		productGroup.GET("/:id", productcontroller.GetProductByID(db))
	}

	r.POST("/api/chat", chatControllers.Query(db))
}
