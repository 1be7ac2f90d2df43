package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductVariant is the unit stock is tracked against: one purchasable
// size/color combination of a product. StockQuantity is mutated only through
// the inventory service so every change lands in the audit log.
type ProductVariant struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID         uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index"`
	Size              *string         `gorm:"column:size;size:50"`
	Color             *string         `gorm:"column:color;size:50"`
	Price             decimal.Decimal `gorm:"column:price;type:numeric(18,2);not null"`
	StockQuantity     int             `gorm:"column:stock_quantity;not null;default:0"`
	LowStockThreshold int             `gorm:"column:low_stock_threshold;not null;default:5"`
	SKU               string          `gorm:"column:sku;uniqueIndex;not null"`
	Product           *Product        `gorm:"foreignKey:ProductID"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
