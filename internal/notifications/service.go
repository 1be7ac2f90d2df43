package notifications

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ziiziikids/ziizii-backend/pkg/db/models"
	"github.com/ziiziikids/ziizii-backend/pkg/enums"
	pkgerrors "github.com/ziiziikids/ziizii-backend/pkg/errors"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Service exposes operator notification reads and acknowledgement.
type Service interface {
	Create(ctx context.Context, notificationType enums.NotificationType, title, message string, variantID *uuid.UUID) (*models.Notification, error)
	List(ctx context.Context, unreadOnly bool, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo *Repository
}

// NewService constructs a notifications service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, notificationType enums.NotificationType, title, message string, variantID *uuid.UUID) (*models.Notification, error) {
	if !notificationType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid notification type")
	}
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}

	notification := &models.Notification{
		ID:        uuid.New(),
		Type:      notificationType,
		Title:     title,
		Message:   message,
		VariantID: variantID,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert notification")
	}
	return notification, nil
}

func (s *service) List(ctx context.Context, unreadOnly bool, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	rows, err := s.repo.List(ctx, unreadOnly, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}
	return rows, nil
}

func (s *service) MarkRead(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "unread notification not found")
	}
	return nil
}
