package models

import "time"

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	SKU         string    `gorm:"uniqueIndex" json:"sku"`
	Category    string    `gorm:"index" json:"category"` // Ring, Necklace, Bracelet, ...
	Metal       string    `json:"metal"`                 // Gold, Silver, Platinum, Rose Gold
	Price       float64   `gorm:"not null" json:"price"`
	Stock       int       `gorm:"default:0" json:"stock"` // mutated only by checkout
	Weight      float64   `json:"weight"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
