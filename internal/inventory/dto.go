package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdjustStockInput carries a signed stock adjustment for one variant.
type AdjustStockInput struct {
	VariantID uuid.UUID
	Delta     int
	Reason    string
	Note      *string
}

// AdjustmentResult reports the stock state after a successful adjustment.
type AdjustmentResult struct {
	VariantID     uuid.UUID `json:"variant_id"`
	PreviousStock int       `json:"previous_stock"`
	NewStock      int       `json:"new_stock"`
}

// LowStockAlert is derived from current variant rows; it is never persisted
// by the alert endpoint itself.
type LowStockAlert struct {
	VariantID    uuid.UUID `json:"variant_id"`
	ProductName  string    `json:"product_name"`
	SKU          string    `json:"sku"`
	Size         *string   `json:"size,omitempty"`
	Color        *string   `json:"color,omitempty"`
	CurrentStock int       `json:"current_stock"`
	Threshold    int       `json:"threshold"`
	IsOutOfStock bool      `json:"is_out_of_stock"`
}

// StockSummary aggregates the variant set as of call time.
type StockSummary struct {
	TotalProducts       int             `json:"total_products"`
	TotalVariants       int             `json:"total_variants"`
	LowStockItems       int             `json:"low_stock_items"`
	OutOfStockItems     int             `json:"out_of_stock_items"`
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"`
	LastUpdated         time.Time       `json:"last_updated"`
}

// HistoryFilter bounds an inventory history query. Both bounds are inclusive.
type HistoryFilter struct {
	From *time.Time
	To   *time.Time
}
