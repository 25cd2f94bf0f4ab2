package food

import (
	"fstore-be/internal/category"

	"github.com/shopspring/decimal"
)

type FoodDTO struct {
	ID          uint                  `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Deleted     bool                  `json:"deleted"`
	Category    *category.CategoryDTO `json:"category,omitempty"`
	Sizes       []*FoodSizeDTO        `json:"sizes"`
	Images      []string              `json:"images"`
	Tags        []string              `json:"tags"`
}

type FoodSizeDTO struct {
	ID    uint            `json:"id"`
	Size  string          `json:"size"`
	Price decimal.Decimal `json:"price"`
}
