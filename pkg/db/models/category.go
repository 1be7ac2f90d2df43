package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a catalog grouping; top-level categories have a nil ParentID.
type Category struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string     `gorm:"column:name;size:100;not null"`
	Slug        string     `gorm:"column:slug;uniqueIndex;not null"`
	Description string     `gorm:"column:description"`
	Image       string     `gorm:"column:image"`
	ParentID    *uuid.UUID `gorm:"column:parent_id;type:uuid"`
	IsActive    bool       `gorm:"column:is_active;not null;default:true"`
	Parent      *Category  `gorm:"foreignKey:ParentID"`
	Children    []Category `gorm:"foreignKey:ParentID"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
