package chatControllers

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aurelia-jewels/jewelry-api/models"
)

const maxSuggestions = 6

// Intent is what the rule-based assistant extracts from a free-text message.
type Intent struct {
	Category string
	Metal    string
	MaxPrice float64
}

// categoryKeywords maps message keywords to catalog categories, most specific
// first: "earring" must be checked before "ring" so "silver earrings" doesn't
// parse as a ring query.
var categoryKeywords = []struct {
	match, canonical string
}{
	{"earring", "earrings"},
	{"necklace", "necklace"},
	{"pendant", "pendant"},
	{"bracelet", "bracelet"},
	{"bangle", "bangle"},
	{"anklet", "anklet"},
	{"ring", "ring"},
}

var (
	// "rose gold" must be matched before plain "gold"
	metals = []string{"rose gold", "gold", "silver", "platinum"}

	pricePattern = regexp.MustCompile(`(?:under|below|less than|<)\s*(\d{3,6})`)
)

// ParseIntent picks a category keyword, a metal keyword, and a price ceiling
// out of the message. Missing parts stay zero-valued.
func ParseIntent(message string) Intent {
	t := strings.ToLower(message)

	var intent Intent
	for _, kw := range categoryKeywords {
		if strings.Contains(t, kw.match) {
			intent.Category = kw.canonical
			break
		}
	}
	for _, m := range metals {
		if strings.Contains(t, m) {
			intent.Metal = m
			break
		}
	}
	if m := pricePattern.FindStringSubmatch(t); m != nil {
		if p, err := strconv.ParseFloat(m[1], 64); err == nil {
			intent.MaxPrice = p
		}
	}
	return intent
}

// SuggestProducts runs the parsed intent against the catalog and returns the
// top matches.
func SuggestProducts(db *gorm.DB, intent Intent) ([]models.Product, error) {
	query := db.Model(&models.Product{})
	if intent.Category != "" {
		query = query.Where("LOWER(category) LIKE ?", "%"+intent.Category+"%")
	}
	if intent.Metal != "" {
		query = query.Where("LOWER(metal) LIKE ?", "%"+intent.Metal+"%")
	}
	if intent.MaxPrice > 0 {
		query = query.Where("price <= ?", intent.MaxPrice)
	}

	var products []models.Product
	err := query.Order("price asc").Limit(maxSuggestions).Find(&products).Error
	return products, err
}

type ChatInput struct {
	Message string `json:"message" binding:"required"`
}

// POST /api/chat
func Query(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ChatInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}

		intent := ParseIntent(input.Message)
		products, err := SuggestProducts(db, intent)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		reply := "No matching items found. Try a different query."
		if len(products) > 0 {
			reply = fmt.Sprintf("Found %d matching item(s) for you.", len(products))
		}
		c.JSON(http.StatusOK, gin.H{"reply": reply, "products": products})
	}
}
