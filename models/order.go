package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing" // Order placed, awaiting fulfilment
	OrderStatusShipped    OrderStatus = "Shipped"    // Out for delivery
	OrderStatusDelivered  OrderStatus = "Delivered"  // Customer received the item
	OrderStatusCancelled  OrderStatus = "Cancelled"  // Cancelled before shipping

	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusSuccess PaymentStatus = "Success"
	PaymentStatusFailed  PaymentStatus = "Failed"
)

type Order struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	OrderRef        string        `gorm:"uniqueIndex" json:"order_ref"`
	UserID          uint          `gorm:"index;not null" json:"user_id"`
	Items           []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	OrderTotal      float64       `gorm:"not null" json:"order_total"`
	Status          OrderStatus   `gorm:"type:VARCHAR(20);default:'Processing'" json:"status"`
	PaymentMode     string        `json:"payment_mode"` // e.g. "COD", "card"
	PaymentStatus   PaymentStatus `gorm:"type:VARCHAR(20);default:'Pending'" json:"payment_status"`
	ShippingAddress string        `json:"shipping_address"`
	CreatedAt       time.Time     `json:"created_at"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index" json:"order_id"`
	ProductID uint    `json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"` // locked price copied from the cart line
	Product   Product `json:"product"`
}
