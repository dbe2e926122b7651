package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryMen    Category = "men"
	CategoryWomen  Category = "women"
	CategoryKids   Category = "kids"
	CategoryHome   Category = "home"
	CategoryBeauty Category = "beauty"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryMen, CategoryWomen, CategoryKids, CategoryHome, CategoryBeauty:
		return true
	}
	return false
}

const MaxRating = 5.0

type (
	Product struct {
		ID              string
		Name            string
		Brand           string
		Description     string
		Price           int64
		OriginalPrice   int64
		DiscountPercent int
		Images          []string
		Sizes           []string
		Colors          []string
		Category        Category
		Subcategory     string
		Stock           int
		Rating          float64
		ReviewsCount    int
		CreatedAt       time.Time
	}

	// ProductFilter fields are matched exactly and conjunctively.
	// Zero values are ignored.
	ProductFilter struct {
		Category    Category
		Subcategory string
	}
)

// Validate checks the product before any write.
//
// A price above the original price is rejected instead of producing
// a negative discount.
func (p Product) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return Invalid("name is required")
	case strings.TrimSpace(p.Brand) == "":
		return Invalid("brand is required")
	case p.Price <= 0:
		return Invalid("price must be positive")
	case p.OriginalPrice <= 0:
		return Invalid("original price must be positive")
	case p.Price > p.OriginalPrice:
		return Invalid("price %d exceeds original price %d", p.Price, p.OriginalPrice)
	case len(p.Images) == 0:
		return Invalid("at least one image is required")
	case !p.Category.Valid():
		return Invalid("unknown category %q", p.Category)
	case p.Stock < 0:
		return Invalid("stock must not be negative")
	case p.Rating < 0 || p.Rating > MaxRating:
		return Invalid("rating must be between 0 and %.0f", MaxRating)
	case p.ReviewsCount < 0:
		return Invalid("reviews count must not be negative")
	}
	return nil
}

// Thumbnail returns the primary image.
func (p Product) Thumbnail() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// DiscountPercent returns round((1 - price/original) * 100).
func DiscountPercent(price, original int64) int {
	if original <= 0 {
		return 0
	}
	ratio := decimal.NewFromInt(price).Div(decimal.NewFromInt(original))
	pct := decimal.NewFromInt(1).Sub(ratio).Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}
