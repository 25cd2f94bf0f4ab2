package food

import (
	"time"

	"fstore-be/internal/category"

	"github.com/shopspring/decimal"
)

type Food struct {
	ID          uint
	Name        string
	Description string
	IsDeleted   bool
	CategoryID  *uint
	Category    *category.Category
	Sizes       []*FoodSize
	Images      []*Image
	Tags        []*Tag
	CreatedAt   time.Time
}

// FoodSize is a priced variant of a food ("small", "large", ...).
type FoodSize struct {
	ID     uint
	FoodID uint
	Size   string
	Price  decimal.Decimal
}

type Image struct {
	ID  uint
	URL string
}

type Tag struct {
	ID   uint
	Name string
}

type ListFilter struct {
	CategoryID     *uint
	Search         string
	IncludeDeleted bool
}

type SizeInput struct {
	Size  string          `json:"size"`
	Price decimal.Decimal `json:"price"`
}

type CreateFoodParams struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	CategoryID  *uint       `json:"category_id"`
	Sizes       []SizeInput `json:"sizes"`
	ImageURLs   []string    `json:"images"`
	Tags        []string    `json:"tags"`
}
