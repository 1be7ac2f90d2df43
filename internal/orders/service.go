package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ziiziikids/ziizii-backend/internal/inventory"
	"github.com/ziiziikids/ziizii-backend/pkg/db/models"
	"github.com/ziiziikids/ziizii-backend/pkg/enums"
	pkgerrors "github.com/ziiziikids/ziizii-backend/pkg/errors"
	"github.com/ziiziikids/ziizii-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the order workflow.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderDTO, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	ListUserOrders(ctx context.Context, userID string) ([]OrderSummary, error)
	CancelOrder(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
}

type service struct {
	repo *Repository
	tx   txRunner
	logg *logger.Logger
}

// NewService builds the order service with its required dependencies.
func NewService(repo *Repository, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, logg: logg}, nil
}

// CreateOrder reserves stock for every line and persists the order in one
// transaction: a single short line fails the whole order and nothing is held.
func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order requires at least one item")
	}
	merged := map[uuid.UUID]int{}
	ordered := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		if item.VariantID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant id required")
		}
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		if _, seen := merged[item.VariantID]; !seen {
			ordered = append(ordered, item.VariantID)
		}
		merged[item.VariantID] += item.Quantity
	}

	orderID := uuid.New()
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		requests := make([]inventory.ReservationRequest, 0, len(ordered))
		for _, variantID := range ordered {
			requests = append(requests, inventory.ReservationRequest{
				VariantID: variantID,
				Quantity:  merged[variantID],
			})
		}

		results, err := inventory.Reserve(ctx, tx, requests)
		if err != nil {
			return err
		}
		var declined []map[string]any
		for _, res := range results {
			if !res.Reserved {
				declined = append(declined, map[string]any{
					"variant_id": res.VariantID.String(),
					"reason":     res.Reason,
				})
			}
		}
		if len(declined) > 0 {
			// rolls back every hold made so far
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, "order cannot be fulfilled").
				WithDetails(declined)
		}

		invRepo := inventory.NewRepository(tx)
		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(ordered))
		for _, variantID := range ordered {
			variant, err := invRepo.FindVariant(ctx, variantID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant for pricing")
			}
			qty := merged[variantID]
			items = append(items, models.OrderItem{
				ID:        uuid.New(),
				OrderID:   orderID,
				VariantID: variantID,
				Quantity:  qty,
				UnitPrice: variant.Price,
			})
			total = total.Add(variant.Price.Mul(decimal.NewFromInt(int64(qty))))
		}

		order := &models.Order{
			ID:          orderID,
			UserID:      strings.TrimSpace(input.UserID),
			Status:      enums.OrderStatusPending,
			TotalAmount: total,
			Items:       items,
		}
		if err := s.repo.WithTx(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithFields(ctx, map[string]any{"order_id": orderID.String(), "lines": len(ordered)})
	s.logg.Info(ctx, "order created")
	return s.GetOrder(ctx, orderID)
}

func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return NewOrderDTO(order), nil
}

func (s *service) ListUserOrders(ctx context.Context, userID string) ([]OrderSummary, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	summaries := make([]OrderSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, NewOrderSummary(&row))
	}
	return summaries, nil
}

// CancelOrder releases every held line back to stock and moves the order to
// cancelled. Only pending orders can be cancelled.
func (s *service) CancelOrder(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		moved, err := repo.TransitionStatus(ctx, order.ID, enums.OrderStatusPending, enums.OrderStatusCancelled)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		if !moved {
			return pkgerrors.New(pkgerrors.CodeConflict, "only pending orders can be cancelled")
		}

		requests := make([]inventory.ReservationRequest, 0, len(order.Items))
		for _, item := range order.Items {
			requests = append(requests, inventory.ReservationRequest{
				VariantID: item.VariantID,
				Quantity:  item.Quantity,
			})
		}
		return inventory.Release(ctx, tx, requests)
	})
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithField(ctx, "order_id", id.String())
	s.logg.Info(ctx, "order cancelled")
	return s.GetOrder(ctx, id)
}
