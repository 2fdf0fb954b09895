package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/aurelia-jewels/jewelry-api/controllers/cart"
	orderControllers "github.com/aurelia-jewels/jewelry-api/controllers/order"
	"github.com/aurelia-jewels/jewelry-api/middleware"
)

// SetupUserRoutes registers the JWT-protected cart and order endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	cartGroup := r.Group("/api/cart")
	cartGroup.Use(middleware.ValidateToken)
	{
		cartGroup.GET("", cartControllers.GetUserCart(db))
		cartGroup.POST("/items", cartControllers.AddCartItem(db))
		cartGroup.PUT("/items/:id", cartControllers.UpdateCartItem(db))
		cartGroup.DELETE("/items/:id", cartControllers.DeleteCartItem(db))
	}

	orderGroup := r.Group("/api/orders")
	orderGroup.Use(middleware.ValidateToken)
	{
		orderGroup.POST("/checkout", orderControllers.CheckoutHandler(db))
		orderGroup.GET("", orderControllers.ListOrdersHandler(db))
		orderGroup.GET("/:id", orderControllers.GetOrderHandler(db))
		orderGroup.DELETE("/:id", orderControllers.CancelOrderHandler(db))
	}
}
