package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ziiziikids/ziizii-backend/pkg/db/models"
	"github.com/ziiziikids/ziizii-backend/pkg/pagination"
)

// SortBy names the supported list orderings.
type SortBy string

const (
	SortByPrice   SortBy = "price"
	SortByName    SortBy = "name"
	SortByCreated SortBy = "created"
)

// SortOrder is the list direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ProductListFilters narrows the catalog listing. All fields are optional.
type ProductListFilters struct {
	CategorySlug *string
	BrandSlug    *string
	Size         *string
	Color        *string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	OnSale       *bool
	Featured     *bool
	Query        string
}

// ListProductsInput bundles filters, ordering, and pagination for the list endpoint.
type ListProductsInput struct {
	Filters    ProductListFilters
	SortBy     SortBy
	SortOrder  SortOrder
	Pagination pagination.Params
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name          string
	Description   string
	SKU           string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	CategoryID    uuid.UUID
	BrandID       uuid.UUID
	IsFeatured    bool
	IsOnSale      bool
	Images        []ImageInput
	Variants      []VariantInput
}

// ImageInput describes one gallery entry.
type ImageInput struct {
	URL       string
	IsMain    bool
	SortOrder int
}

// VariantInput describes one purchasable size/color combination.
type VariantInput struct {
	Size              *string
	Color             *string
	Price             decimal.Decimal
	StockQuantity     int
	LowStockThreshold *int
	SKU               string
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	OriginalPrice *decimal.Decimal
	CategoryID    *uuid.UUID
	BrandID       *uuid.UUID
	IsActive      *bool
	IsFeatured    *bool
	IsOnSale      *bool
}

// ProductDTO is the detailed product payload returned to clients.
type ProductDTO struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	SKU           string           `json:"sku"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Category      *RefDTO          `json:"category,omitempty"`
	Brand         *RefDTO          `json:"brand,omitempty"`
	IsActive      bool             `json:"is_active"`
	IsFeatured    bool             `json:"is_featured"`
	IsOnSale      bool             `json:"is_on_sale"`
	Images        []ImageDTO       `json:"images"`
	Variants      []VariantDTO     `json:"variants"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// RefDTO is a named reference to a category or brand.
type RefDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// ImageDTO is one gallery entry on a product payload.
type ImageDTO struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	IsMain    bool      `json:"is_main"`
	SortOrder int       `json:"sort_order"`
}

// VariantDTO exposes a variant with its live stock level.
type VariantDTO struct {
	ID            uuid.UUID       `json:"id"`
	Size          *string         `json:"size,omitempty"`
	Color         *string         `json:"color,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	SKU           string          `json:"sku"`
}

// ProductSummary is the condensed row used by list and search responses.
type ProductSummary struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	SKU           string           `json:"sku"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	IsFeatured    bool             `json:"is_featured"`
	IsOnSale      bool             `json:"is_on_sale"`
	MainImage     *string          `json:"main_image,omitempty"`
	CategoryName  string           `json:"category_name,omitempty"`
	BrandName     string           `json:"brand_name,omitempty"`
	TotalStock    int              `json:"total_stock"`
	CreatedAt     time.Time        `json:"created_at"`
}

// Suggestion is a type-ahead hit for the search box.
type Suggestion struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		SKU:           product.SKU,
		Price:         product.Price,
		OriginalPrice: product.OriginalPrice,
		IsActive:      product.IsActive,
		IsFeatured:    product.IsFeatured,
		IsOnSale:      product.IsOnSale,
		Images:        make([]ImageDTO, 0, len(product.Images)),
		Variants:      make([]VariantDTO, 0, len(product.Variants)),
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
	if product.Category != nil {
		dto.Category = &RefDTO{ID: product.Category.ID, Name: product.Category.Name, Slug: product.Category.Slug}
	}
	if product.Brand != nil {
		dto.Brand = &RefDTO{ID: product.Brand.ID, Name: product.Brand.Name, Slug: product.Brand.Slug}
	}
	for _, image := range product.Images {
		dto.Images = append(dto.Images, ImageDTO{
			ID:        image.ID,
			URL:       image.URL,
			IsMain:    image.IsMain,
			SortOrder: image.SortOrder,
		})
	}
	for _, variant := range product.Variants {
		dto.Variants = append(dto.Variants, VariantDTO{
			ID:            variant.ID,
			Size:          variant.Size,
			Color:         variant.Color,
			Price:         variant.Price,
			StockQuantity: variant.StockQuantity,
			SKU:           variant.SKU,
		})
	}
	return dto
}

// NewProductSummary condenses a product row for listings.
func NewProductSummary(product *models.Product) ProductSummary {
	summary := ProductSummary{
		ID:            product.ID,
		Name:          product.Name,
		SKU:           product.SKU,
		Price:         product.Price,
		OriginalPrice: product.OriginalPrice,
		IsFeatured:    product.IsFeatured,
		IsOnSale:      product.IsOnSale,
		CreatedAt:     product.CreatedAt,
	}
	if product.Category != nil {
		summary.CategoryName = product.Category.Name
	}
	if product.Brand != nil {
		summary.BrandName = product.Brand.Name
	}
	for _, image := range product.Images {
		if image.IsMain {
			url := image.URL
			summary.MainImage = &url
			break
		}
	}
	if summary.MainImage == nil && len(product.Images) > 0 {
		url := product.Images[0].URL
		summary.MainImage = &url
	}
	for _, variant := range product.Variants {
		summary.TotalStock += variant.StockQuantity
	}
	return summary
}
