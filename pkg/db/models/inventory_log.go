package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ziiziikids/ziizii-backend/pkg/enums"
)

// InventoryLog records an immutable stock mutation for a variant. Rows are
// append-only: written in the same transaction as the stock update and never
// modified or deleted afterwards.
type InventoryLog struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VariantID     uuid.UUID             `gorm:"column:variant_id;type:uuid;not null;index:idx_inventory_logs_variant_created"`
	ChangeType    enums.StockChangeType `gorm:"column:change_type;type:stock_change_type;not null"`
	Quantity      int                   `gorm:"column:quantity;not null"`
	PreviousStock int                   `gorm:"column:previous_stock;not null"`
	NewStock      int                   `gorm:"column:new_stock;not null"`
	Reason        string                `gorm:"column:reason;size:100;not null"`
	Note          *string               `gorm:"column:note"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime;index:idx_inventory_logs_variant_created"`
}
