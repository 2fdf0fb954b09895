package orderControllers

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	cartControllers "github.com/aurelia-jewels/jewelry-api/controllers/cart"
	"github.com/aurelia-jewels/jewelry-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Product{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()
	p := models.Product{Name: name, SKU: name, Price: price, Stock: stock}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func addToCart(t *testing.T, db *gorm.DB, userID, productID uint, qty int) {
	t.Helper()
	if _, err := cartControllers.AddItem(db, userID, productID, qty); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
}

func productStock(t *testing.T, db *gorm.DB, productID uint) int {
	t.Helper()
	var p models.Product
	if err := db.First(&p, productID).Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	return p.Stock
}

func TestCheckout_Success(t *testing.T) {
	db := newTestDB(t)
	a := seedProduct(t, db, "Gold Ring", 100, 5)
	b := seedProduct(t, db, "Silver Pendant", 50, 1)

	addToCart(t, db, 7, a.ID, 2)
	addToCart(t, db, 7, b.ID, 1)

	// A later catalog price change must not affect the charged total.
	if err := db.Model(&models.Product{}).Where("id = ?", a.ID).Update("price", 999).Error; err != nil {
		t.Fatalf("reprice: %v", err)
	}

	order, err := Checkout(db, 7, CheckoutRequest{ShippingAddress: "12 Marina Road"})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if order.OrderTotal != 250 {
		t.Errorf("expected total 250, got %v", order.OrderTotal)
	}
	if order.PaymentStatus != models.PaymentStatusSuccess {
		t.Errorf("expected payment status Success, got %s", order.PaymentStatus)
	}
	if order.PaymentMode != "COD" {
		t.Errorf("expected default payment mode COD, got %s", order.PaymentMode)
	}
	if order.OrderRef == "" {
		t.Error("expected non-empty order ref")
	}

	if got := productStock(t, db, a.ID); got != 3 {
		t.Errorf("expected stock 3 for product A, got %d", got)
	}
	if got := productStock(t, db, b.ID); got != 0 {
		t.Errorf("expected stock 0 for product B, got %d", got)
	}

	var lineCount int64
	db.Model(&models.CartItem{}).Count(&lineCount)
	if lineCount != 0 {
		t.Errorf("expected empty cart after checkout, got %d lines", lineCount)
	}

	var orderItems []models.OrderItem
	if err := db.Where("order_id = ?", order.ID).Find(&orderItems).Error; err != nil {
		t.Fatalf("load order items: %v", err)
	}
	if len(orderItems) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(orderItems))
	}
	for _, it := range orderItems {
		if it.ProductID == a.ID && it.Price != 100 {
			t.Errorf("expected locked price 100 for product A, got %v", it.Price)
		}
	}
}

func TestCheckout_OutOfStockAbortsWithoutEffects(t *testing.T) {
	db := newTestDB(t)
	c := seedProduct(t, db, "Platinum Band", 10, 5)
	addToCart(t, db, 3, c.ID, 3)

	// Stock drops between add-to-cart and checkout.
	if err := db.Model(&models.Product{}).Where("id = ?", c.ID).Update("stock", 1).Error; err != nil {
		t.Fatalf("restock: %v", err)
	}

	_, err := Checkout(db, 3, CheckoutRequest{})
	var oos *OutOfStockError
	if !errors.As(err, &oos) {
		t.Fatalf("expected OutOfStockError, got %v", err)
	}
	if oos.ProductID != c.ID {
		t.Errorf("expected failing product %d, got %d", c.ID, oos.ProductID)
	}

	if got := productStock(t, db, c.ID); got != 1 {
		t.Errorf("expected stock untouched at 1, got %d", got)
	}
	var item models.CartItem
	if err := db.Where("product_id = ?", c.ID).First(&item).Error; err != nil {
		t.Fatalf("cart line should survive a failed checkout: %v", err)
	}
	if item.Quantity != 3 {
		t.Errorf("expected cart line quantity 3, got %d", item.Quantity)
	}

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	if orderCount != 0 {
		t.Errorf("expected no order rows, got %d", orderCount)
	}
}

func TestCheckout_NoCart(t *testing.T) {
	db := newTestDB(t)

	if _, err := Checkout(db, 42, CheckoutRequest{}); !errors.Is(err, ErrNoCart) {
		t.Errorf("expected ErrNoCart, got %v", err)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	db := newTestDB(t)
	if _, err := cartControllers.GetOrCreateCart(db, 42); err != nil {
		t.Fatalf("create cart: %v", err)
	}

	if _, err := Checkout(db, 42, CheckoutRequest{}); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCheckout_LastUnitGoesToExactlyOneBuyer(t *testing.T) {
	db := newTestDB(t)
	d := seedProduct(t, db, "Rose Gold Anklet", 80, 1)

	addToCart(t, db, 1, d.ID, 1)
	addToCart(t, db, 2, d.ID, 1)

	if _, err := Checkout(db, 1, CheckoutRequest{}); err != nil {
		t.Fatalf("first checkout: %v", err)
	}

	_, err := Checkout(db, 2, CheckoutRequest{})
	var oos *OutOfStockError
	if !errors.As(err, &oos) {
		t.Fatalf("expected OutOfStockError for the loser, got %v", err)
	}

	if got := productStock(t, db, d.ID); got != 0 {
		t.Errorf("expected final stock 0 (never negative), got %d", got)
	}
	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	if orderCount != 1 {
		t.Errorf("expected exactly one committed order, got %d", orderCount)
	}
}

func TestCheckout_StockTakenDuringCommitRollsBack(t *testing.T) {
	db := newTestDB(t)
	d := seedProduct(t, db, "Rose Gold Anklet", 80, 1)
	addToCart(t, db, 1, d.ID, 1)

	// A competing checkout can take the stock between the validation pass and
	// the decrement. Recreate that window: just before the order row is
	// inserted, zero the stock on the checkout's own transaction, so the
	// conditional decrement is what has to catch it.
	drained := false
	err := db.Callback().Create().Before("gorm:create").Register("drain_stock_once", func(tx *gorm.DB) {
		if drained {
			return
		}
		if _, ok := tx.Statement.Dest.(*models.Order); !ok {
			return
		}
		drained = true
		if err := tx.Session(&gorm.Session{NewDB: true}).
			Exec("UPDATE products SET stock = 0 WHERE id = ?", d.ID).Error; err != nil {
			t.Errorf("drain stock: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	_, err = Checkout(db, 1, CheckoutRequest{})
	var oos *OutOfStockError
	if !errors.As(err, &oos) {
		t.Fatalf("expected OutOfStockError from the decrement guard, got %v", err)
	}
	if oos.ProductID != d.ID {
		t.Errorf("expected failing product %d, got %d", d.ID, oos.ProductID)
	}
	if !drained {
		t.Fatal("stock was never drained; the guard was not the failing step")
	}

	// Everything the transaction did must be rolled back, the drain included.
	if got := productStock(t, db, d.ID); got != 1 {
		t.Errorf("expected stock restored to 1, got %d", got)
	}
	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	if orderCount != 0 {
		t.Errorf("expected no order rows, got %d", orderCount)
	}
	var item models.CartItem
	if err := db.Where("product_id = ?", d.ID).First(&item).Error; err != nil {
		t.Fatalf("cart line should survive the failed checkout: %v", err)
	}
	if item.Quantity != 1 {
		t.Errorf("expected cart line quantity 1, got %d", item.Quantity)
	}
}

func TestListOrders_NewestFirst(t *testing.T) {
	db := newTestDB(t)

	older := models.Order{OrderRef: "ref-older", UserID: 5, OrderTotal: 10,
		CreatedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)}
	newer := models.Order{OrderRef: "ref-newer", UserID: 5, OrderTotal: 20,
		CreatedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)}
	if err := db.Create(&older).Error; err != nil {
		t.Fatalf("create older: %v", err)
	}
	if err := db.Create(&newer).Error; err != nil {
		t.Fatalf("create newer: %v", err)
	}

	orders, err := ListOrders(db, 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].OrderRef != "ref-newer" {
		t.Errorf("expected newest first, got %s", orders[0].OrderRef)
	}
}

func TestGetOrder_OwnershipFilter(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, "Gold Ring", 100, 5)
	addToCart(t, db, 1, p.ID, 1)

	order, err := Checkout(db, 1, CheckoutRequest{})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if _, err := GetOrder(db, 1, order.ID); err != nil {
		t.Errorf("owner lookup failed: %v", err)
	}
	if _, err := GetOrder(db, 2, order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound for non-owner, got %v", err)
	}
	if _, err := GetOrder(db, 1, 9999); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound for unknown id, got %v", err)
	}
}

func TestCancelOrder_DoesNotRestock(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, "Gold Ring", 100, 5)
	addToCart(t, db, 1, p.ID, 2)

	order, err := Checkout(db, 1, CheckoutRequest{})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if got := productStock(t, db, p.ID); got != 3 {
		t.Fatalf("expected stock 3 after checkout, got %d", got)
	}

	if err := CancelOrder(db, 1, order.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if _, err := GetOrder(db, 1, order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("expected order gone, got %v", err)
	}
	var itemCount int64
	db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount)
	if itemCount != 0 {
		t.Errorf("expected order items gone, got %d", itemCount)
	}

	// Cancellation is not an inventory refund.
	if got := productStock(t, db, p.ID); got != 3 {
		t.Errorf("expected stock to stay at 3 after cancel, got %d", got)
	}
}

func TestCancelOrder_NotFoundForNonOwner(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, "Gold Ring", 100, 5)
	addToCart(t, db, 1, p.ID, 1)

	order, err := Checkout(db, 1, CheckoutRequest{})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if err := CancelOrder(db, 2, order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
	if _, err := GetOrder(db, 1, order.ID); err != nil {
		t.Errorf("order should survive a non-owner cancel: %v", err)
	}
}
