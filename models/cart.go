package models

import "time"

type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"uniqueIndex" json:"user_id"` // Enforces ONE cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
}

type CartItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CartID    uint `gorm:"index:idx_cart_product,unique" json:"cart_id"`
	ProductID uint `gorm:"index:idx_cart_product,unique" json:"product_id"`
	Quantity  int  `gorm:"not null" json:"quantity"`
	// PriceAtAdd is the price lock: captured when the line is first created,
	// never refreshed by later catalog price changes.
	PriceAtAdd float64   `gorm:"not null" json:"price_at_add"`
	AddedAt    time.Time `json:"added_at"`
	Product    Product   `json:"product"`
}
