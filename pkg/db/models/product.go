package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a catalog listing; stock is tracked per variant.
type Product struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string           `gorm:"column:name;size:200;not null"`
	Description   string           `gorm:"column:description;not null"`
	SKU           string           `gorm:"column:sku;uniqueIndex;not null"`
	Price         decimal.Decimal  `gorm:"column:price;type:numeric(18,2);not null"`
	OriginalPrice *decimal.Decimal `gorm:"column:original_price;type:numeric(18,2)"`
	CategoryID    uuid.UUID        `gorm:"column:category_id;type:uuid;not null"`
	BrandID       uuid.UUID        `gorm:"column:brand_id;type:uuid;not null"`
	IsActive      bool             `gorm:"column:is_active;not null;default:true"`
	IsFeatured    bool             `gorm:"column:is_featured;not null;default:false"`
	IsOnSale      bool             `gorm:"column:is_on_sale;not null;default:false"`
	Category      *Category        `gorm:"foreignKey:CategoryID"`
	Brand         *Brand           `gorm:"foreignKey:BrandID"`
	Images        []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Variants      []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductImage stores a gallery entry for a product.
type ProductImage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	URL       string    `gorm:"column:url;not null"`
	IsMain    bool      `gorm:"column:is_main;not null;default:false"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0"`
}
