package models

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"gorm.io/gorm"
)

// SeedProducts fills an empty catalog with demo jewelry so a fresh install
// has something to browse.
func SeedProducts(db *gorm.DB) {
	var count int64
	if err := db.Model(&Product{}).Count(&count).Error; err != nil {
		log.Printf("❌ Error checking product count: %v", err)
		return
	}
	if count > 0 {
		return
	}

	log.Println("🪴 Seeding sample products...")

	categories := []string{"Ring", "Necklace", "Bracelet", "Earrings"}
	metals := []string{"Gold", "Silver", "Platinum", "Rose Gold"}

	products := make([]Product, 0, 20)
	for i := 1; i <= 20; i++ {
		category := categories[i%len(categories)]
		metal := metals[i%len(metals)]
		products = append(products, Product{
			Name:     fmt.Sprintf("%s %s %d", metal, category, i),
			SKU:      fmt.Sprintf("%s-%s-%03d", strings.ToUpper(metal[:2]), strings.ToUpper(category[:2]), i),
			Category: category,
			Metal:    metal,
			Price:    float64(int(rand.Float64()*9000 + 2000)),
			Stock:    rand.Intn(10) + 1,
			Weight:   rand.Float64()*10 + 1,
			Description: fmt.Sprintf("Elegant %s %s perfect for any occasion.",
				strings.ToLower(metal), strings.ToLower(category)),
			ImageURL: "https://images.unsplash.com/photo-1522335789203-aabd1fc54bc9?q=80&w=800&auto=format&fit=crop",
		})
	}

	if err := db.Create(&products).Error; err != nil {
		log.Printf("❌ Failed to seed products: %v", err)
		return
	}
	log.Println("✅ Sample products seeded")
}
