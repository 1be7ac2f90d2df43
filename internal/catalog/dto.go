package catalog

import (
	"github.com/google/uuid"
)

// CategoryDTO is a category node with its direct children and the number of
// active products filed under it.
type CategoryDTO struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Slug         string        `json:"slug"`
	Description  string        `json:"description,omitempty"`
	Image        string        `json:"image,omitempty"`
	ProductCount int64         `json:"product_count"`
	Children     []CategoryDTO `json:"children,omitempty"`
}

// BrandDTO is a brand with the number of active products carrying it.
type BrandDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Logo         string    `json:"logo,omitempty"`
	ProductCount int64     `json:"product_count"`
}
