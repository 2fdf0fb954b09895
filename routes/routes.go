package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Public catalog + shopping assistant
	SetupCatalogRoutes(r, db)

	// Cart + orders (JWT-protected)
	SetupUserRoutes(r, db)

	// Admin routes (JWT + role gate)
	SetupAdminRoutes(r, db)
}
