package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ziiziikids/ziizii-backend/pkg/enums"
)

// Notification is an operator-facing alert row, written by the low stock
// dispatcher after an inventory change commits.
type Notification struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Type      enums.NotificationType `gorm:"column:type;type:notification_type;not null"`
	Title     string                 `gorm:"column:title;not null"`
	Message   string                 `gorm:"column:message;not null"`
	VariantID *uuid.UUID             `gorm:"column:variant_id;type:uuid;index"`
	ReadAt    *time.Time             `gorm:"column:read_at"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime;index"`
}
