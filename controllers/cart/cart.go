package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aurelia-jewels/jewelry-api/models"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrProductNotFound = errors.New("product not found")
	ErrOutOfStock      = errors.New("requested quantity exceeds available stock")
	ErrItemNotFound    = errors.New("cart item not found")
)

// GetOrCreateCart returns the user's cart, creating it lazily on first access.
// The unique index on user_id keeps concurrent first access safe: the loser of
// the insert race re-reads the winner's row.
func GetOrCreateCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{UserID: userID}
	if createErr := db.Create(&cart).Error; createErr != nil {
		if readErr := db.Where("user_id = ?", userID).First(&cart).Error; readErr != nil {
			return nil, createErr
		}
	}
	return &cart, nil
}

// AddItem puts quantity units of a product into the user's cart. A second add
// of the same product merges into the existing line; the price snapshot taken
// at the first add is kept as-is.
func AddItem(db *gorm.DB, userID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	// Advisory only; checkout re-validates against live stock.
	if quantity > product.Stock {
		return nil, ErrOutOfStock
	}

	cart, err := GetOrCreateCart(db, userID)
	if err != nil {
		return nil, err
	}

	// Merge with a single atomic increment so concurrent adds of the same
	// line cannot lose an update.
	merge := func() (int64, error) {
		result := db.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		return result.RowsAffected, result.Error
	}

	rows, err := merge()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		item := models.CartItem{
			CartID:     cart.ID,
			ProductID:  productID,
			Quantity:   quantity,
			PriceAtAdd: product.Price,
			AddedAt:    time.Now(),
		}
		if createErr := db.Create(&item).Error; createErr != nil {
			// Lost the first-add race on the (cart, product) unique index:
			// merge into the winner's line instead.
			rows, err = merge()
			if err != nil {
				return nil, err
			}
			if rows == 0 {
				return nil, createErr
			}
		}
	}

	var item models.CartItem
	if err := db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItemQuantity replaces a line's quantity. A missing line shows up as
// zero rows affected.
func UpdateItemQuantity(db *gorm.DB, itemID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	result := db.Model(&models.CartItem{}).Where("id = ?", itemID).Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// RemoveItem deletes a line from the cart.
func RemoveItem(db *gorm.DB, itemID uint) error {
	result := db.Where("id = ?", itemID).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// -------- Handlers --------

type AddItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

type UpdateItemInput struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GET /api/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		cart, err := GetOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user cart"})
			return
		}

		var items []models.CartItem
		if err := db.Preload("Product").Where("cart_id = ?", cart.ID).
			Order("id asc").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart items"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart_id": cart.ID, "items": items})
	}
}

// POST /api/cart/items
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product or quantity"})
			return
		}

		item, err := AddItem(db, userID, input.ProductID, input.Quantity)
		switch {
		case errors.Is(err, ErrInvalidQuantity), errors.Is(err, ErrProductNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrOutOfStock):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Out of stock"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		default:
			c.JSON(http.StatusOK, gin.H{"message": "Added to cart", "item": item})
		}
	}
}

// PUT /api/cart/items/:id
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
			return
		}

		var input UpdateItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
			return
		}

		err = UpdateItemQuantity(db, uint(itemID), input.Quantity)
		switch {
		case errors.Is(err, ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database update failed"})
		default:
			c.JSON(http.StatusOK, gin.H{"message": "Quantity updated", "id": itemID, "quantity": input.Quantity})
		}
	}
}

// DELETE /api/cart/items/:id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
			return
		}

		err = RemoveItem(db, uint(itemID))
		switch {
		case errors.Is(err, ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database delete failed"})
		default:
			c.JSON(http.StatusOK, gin.H{"message": "Item removed successfully", "id": itemID})
		}
	}
}
