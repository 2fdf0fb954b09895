package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aurelia-jewels/jewelry-api/models"
)

var (
	ErrNoCart        = errors.New("no cart for user")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
)

// OutOfStockError identifies which product blocked a checkout.
type OutOfStockError struct {
	ProductID uint
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("product %d is out of stock", e.ProductID)
}

type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address"`
	PaymentMode     string `json:"payment_mode"`
}

// Generate unique order reference
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// Checkout turns the user's priced cart into a committed order: validates
// every line against live stock, totals the locked line prices, then inside a
// single transaction creates the order with its items, decrements stock, and
// clears the cart. Validation failures leave the cart exactly as it was.
func Checkout(db *gorm.DB, userID uint, req CheckoutRequest) (*models.Order, error) {
	var cart models.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoCart
		}
		return nil, err
	}

	var items []models.CartItem
	if err := db.Preload("Product").Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	// Pre-commit stock pass. Read-only, so failing here has no side effects.
	for _, it := range items {
		if it.Quantity > it.Product.Stock {
			return nil, &OutOfStockError{ProductID: it.ProductID}
		}
	}

	// Total from the locked price snapshots, never the live catalog price.
	var total float64
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		total += float64(it.Quantity) * it.PriceAtAdd
		orderItems = append(orderItems, models.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.PriceAtAdd,
		})
	}

	mode := req.PaymentMode
	if mode == "" {
		mode = "COD"
	}
	address := req.ShippingAddress
	if address == "" {
		address = "Not provided"
	}

	order := models.Order{
		OrderRef:        generateOrderRef(),
		UserID:          userID,
		Items:           orderItems,
		OrderTotal:      total,
		Status:          models.OrderStatusProcessing,
		PaymentMode:     mode,
		PaymentStatus:   models.PaymentStatusSuccess, // payment processing is stubbed
		ShippingAddress: address,
		CreatedAt:       time.Now(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, it := range items {
			// Conditional decrement is the authoritative guard under
			// concurrent checkouts: zero rows affected means another order
			// took the stock between our validation pass and here.
			result := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", it.ProductID, it.Quantity).
				Update("stock", gorm.Expr("stock - ?", it.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return &OutOfStockError{ProductID: it.ProductID}
			}
		}

		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns the user's orders, most recent first.
func ListOrders(db *gorm.DB, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// GetOrder returns an order with its items and product details. Orders not
// owned by the caller are indistinguishable from missing ones.
func GetOrder(db *gorm.DB, userID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Items").Preload("Items.Product").
		Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder deletes the order's items then the order itself. Stock consumed
// by the order is NOT returned to the catalog; cancellation is not a refund
// of inventory.
func CancelOrder(db *gorm.DB, userID, orderID uint) error {
	var order models.Order
	err := db.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

// -------- Handlers --------

// POST /api/orders/checkout
func CheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var req CheckoutRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid checkout payload"})
				return
			}
		}

		order, err := Checkout(db, userID, req)
		var oos *OutOfStockError
		switch {
		case errors.Is(err, ErrNoCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No cart"})
		case errors.Is(err, ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart empty"})
		case errors.As(err, &oos):
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Item %d out of stock", oos.ProductID)})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
		default:
			c.JSON(http.StatusOK, gin.H{
				"message":   "Order placed",
				"order_id":  order.ID,
				"order_ref": order.OrderRef,
				"total":     order.OrderTotal,
			})
		}
	}
}

// GET /api/orders
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")

		orders, err := ListOrders(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/:id
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
			return
		}

		order, err := GetOrder(db, userID, uint(orderID))
		if errors.Is(err, ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order, "items": order.Items})
	}
}

// DELETE /api/orders/:id
func CancelOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
			return
		}

		err = CancelOrder(db, userID, uint(orderID))
		switch {
		case errors.Is(err, ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove order"})
		default:
			c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": orderID})
		}
	}
}
