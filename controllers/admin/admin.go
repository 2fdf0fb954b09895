package adminController

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aurelia-jewels/jewelry-api/models"
)

type CreateProductInput struct {
	Name        string  `json:"name" binding:"required"`
	SKU         string  `json:"sku"`
	Category    string  `json:"category"`
	Metal       string  `json:"metal"`
	Price       float64 `json:"price" binding:"required"`
	Stock       int     `json:"stock"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
}

// UpdateProductInput allow-lists the mutable catalog fields; absent fields are
// left untouched.
type UpdateProductInput struct {
	Name        *string  `json:"name"`
	SKU         *string  `json:"sku"`
	Category    *string  `json:"category"`
	Metal       *string  `json:"metal"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Weight      *float64 `json:"weight"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
}

// POST /api/admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and price are required"})
			return
		}

		product := models.Product{
			Name:        input.Name,
			SKU:         input.SKU,
			Category:    input.Category,
			Metal:       input.Metal,
			Price:       input.Price,
			Stock:       input.Stock,
			Weight:      input.Weight,
			Description: input.Description,
			ImageURL:    input.ImageURL,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Created", "id": product.ID})
	}
}

// PUT /api/admin/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.SKU != nil {
			updates["sku"] = *input.SKU
		}
		if input.Category != nil {
			updates["category"] = *input.Category
		}
		if input.Metal != nil {
			updates["metal"] = *input.Metal
		}
		if input.Price != nil {
			updates["price"] = *input.Price
		}
		if input.Stock != nil {
			updates["stock"] = *input.Stock
		}
		if input.Weight != nil {
			updates["weight"] = *input.Weight
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.ImageURL != nil {
			updates["image_url"] = *input.ImageURL
		}
		if len(updates) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No fields"})
			return
		}

		result := db.Model(&models.Product{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Updated"})
	}
}

// DELETE /api/admin/products/:id
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		result := db.Delete(&models.Product{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
	}
}

// GET /api/admin/orders
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}
