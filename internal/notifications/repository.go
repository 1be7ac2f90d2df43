package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ziiziikids/ziizii-backend/pkg/db/models"
)

// Repository wires together notification persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a notification row.
func (r *Repository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// List returns notifications newest-first, optionally unread-only, capped at limit.
func (r *Repository) List(ctx context.Context, unreadOnly bool, limit int) ([]models.Notification, error) {
	qb := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if unreadOnly {
		qb = qb.Where("read_at IS NULL")
	}
	var rows []models.Notification
	err := qb.Find(&rows).Error
	return rows, err
}

// MarkRead stamps the notification as read. The false return means no such
// unread notification.
func (r *Repository) MarkRead(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND read_at IS NULL", id).
		Update("read_at", time.Now().UTC())
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
