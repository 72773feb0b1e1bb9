package generator

import (
	"errors"
	"math"
	"math/rand/v2"

	"github.com/shoplytics/shoplytics/internal/models"
)

// catalogCategory is one category of the fixed catalog layout: every
// archetype in every category becomes exactly one product.
type catalogCategory struct {
	name  string
	items []string
}

// defaultCatalog is the fixed (category, archetype) grid. Order matters:
// product ordinals are assigned in this order, so a fixed seed always yields
// the same IDs.
var defaultCatalog = []catalogCategory{
	{"Electronics", []string{"Laptop", "Smartphone", "Headphones", "Tablet", "Smartwatch"}},
	{"Clothing", []string{"T-Shirt", "Jeans", "Jacket", "Sneakers", "Dress"}},
	{"Home & Garden", []string{"Coffee Maker", "Desk Lamp", "Throw Pillow", "Garden Hose", "Cookware Set"}},
	{"Books", []string{"Novel", "Cookbook", "Biography", "Textbook", "Comic Book"}},
	{"Sports", []string{"Yoga Mat", "Running Shoes", "Dumbbells", "Tennis Racket", "Water Bottle"}},
}

// generateCatalog produces one product per (category, archetype) pair with a
// uniform random price in [priceMin, priceMax], rounded to cents.
func generateCatalog(r *rand.Rand, categories []catalogCategory, priceMin, priceMax float64) ([]models.Product, error) {
	if len(categories) == 0 {
		return nil, errors.New("generator: catalog categories must not be empty")
	}

	var products []models.Product
	ordinal := 0
	for _, cat := range categories {
		for _, item := range cat.items {
			ordinal++
			price := priceMin + r.Float64()*(priceMax-priceMin)
			products = append(products, models.Product{
				ProductID: models.ProductID(ordinal),
				Name:      item,
				Category:  cat.name,
				Price:     math.Round(price*100) / 100,
			})
		}
	}
	return products, nil
}
