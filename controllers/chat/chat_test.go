package chatControllers

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/aurelia-jewels/jewelry-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestParseIntent(t *testing.T) {
	tests := []struct {
		message  string
		category string
		metal    string
		maxPrice float64
	}{
		{"gold ring under 20000", "ring", "gold", 20000},
		{"silver earrings", "earrings", "silver", 0},
		{"gold earring under 8000", "earrings", "gold", 8000},
		{"pendant below 10000", "pendant", "", 10000},
		{"show me rose gold bangles", "bangle", "rose gold", 0},
		{"something nice", "", "", 0},
		{"platinum necklace less than 50000", "necklace", "platinum", 50000},
	}

	for _, tt := range tests {
		got := ParseIntent(tt.message)
		if got.Category != tt.category {
			t.Errorf("%q: expected category %q, got %q", tt.message, tt.category, got.Category)
		}
		if got.Metal != tt.metal {
			t.Errorf("%q: expected metal %q, got %q", tt.message, tt.metal, got.Metal)
		}
		if got.MaxPrice != tt.maxPrice {
			t.Errorf("%q: expected max price %v, got %v", tt.message, tt.maxPrice, got.MaxPrice)
		}
	}
}

func TestSuggestProducts_Filters(t *testing.T) {
	db := newTestDB(t)

	seed := []models.Product{
		{Name: "Gold Ring 1", SKU: "GR-1", Category: "Ring", Metal: "Gold", Price: 15000, Stock: 3},
		{Name: "Gold Ring 2", SKU: "GR-2", Category: "Ring", Metal: "Gold", Price: 25000, Stock: 3},
		{Name: "Silver Ring", SKU: "SR-1", Category: "Ring", Metal: "Silver", Price: 4000, Stock: 3},
		{Name: "Gold Necklace", SKU: "GN-1", Category: "Necklace", Metal: "Gold", Price: 18000, Stock: 3},
	}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	products, err := SuggestProducts(db, Intent{Category: "ring", Metal: "gold", MaxPrice: 20000})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 match, got %d", len(products))
	}
	if products[0].SKU != "GR-1" {
		t.Errorf("expected GR-1, got %s", products[0].SKU)
	}
}

func TestSuggestProducts_CapsResults(t *testing.T) {
	db := newTestDB(t)

	var seed []models.Product
	for i := 0; i < 10; i++ {
		seed = append(seed, models.Product{
			Name: fmt.Sprintf("Gold Ring %d", i), SKU: fmt.Sprintf("GR-%d", i),
			Category: "Ring", Metal: "Gold", Price: float64(1000 + i), Stock: 1,
		})
	}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	products, err := SuggestProducts(db, Intent{Category: "ring"})
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(products) != maxSuggestions {
		t.Errorf("expected %d suggestions, got %d", maxSuggestions, len(products))
	}
}
