package models

import (
	"time"

	"github.com/google/uuid"
)

// Brand is a catalog manufacturer/label.
type Brand struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;size:100;not null"`
	Slug      string    `gorm:"column:slug;uniqueIndex;not null"`
	Logo      string    `gorm:"column:logo"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
