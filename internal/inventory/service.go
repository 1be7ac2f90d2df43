package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ziiziikids/ziizii-backend/pkg/db/models"
	"github.com/ziiziikids/ziizii-backend/pkg/enums"
	pkgerrors "github.com/ziiziikids/ziizii-backend/pkg/errors"
	"github.com/ziiziikids/ziizii-backend/pkg/logger"
	"github.com/ziiziikids/ziizii-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service owns every stock quantity mutation and the audit trail derived
// from them.
type Service interface {
	AdjustStock(ctx context.Context, input AdjustStockInput) (*AdjustmentResult, error)
	ReserveStock(ctx context.Context, variantID uuid.UUID, quantity int) error
	ReleaseStock(ctx context.Context, variantID uuid.UUID, quantity int) error
	LowStockAlerts(ctx context.Context) ([]LowStockAlert, error)
	StockSummary(ctx context.Context) (*StockSummary, error)
	History(ctx context.Context, variantID uuid.UUID, filter HistoryFilter) ([]models.InventoryLog, error)
}

type service struct {
	repo     *Repository
	tx       txRunner
	logg     *logger.Logger
	notifier Notifier
	metrics  *metrics.InventoryMetrics
}

// NewService builds the inventory service with its required dependencies.
// The notifier and metrics are optional.
func NewService(repo *Repository, tx txRunner, logg *logger.Logger, notifier Notifier, m *metrics.InventoryMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		logg:     logg,
		notifier: notifier,
		metrics:  m,
	}, nil
}

// AdjustStock applies a signed delta to a variant, clamping the result at
// zero, and appends exactly one audit row in the same transaction. The stock
// write is conditional on the previously observed value, so a concurrent
// adjustment to the same variant surfaces as a retryable conflict instead of
// a lost update.
func (s *service) AdjustStock(ctx context.Context, input AdjustStockInput) (*AdjustmentResult, error) {
	started := time.Now()
	defer func() { s.metrics.ObserveDuration("adjust_stock", time.Since(started)) }()

	if input.VariantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant id required")
	}
	if input.Delta == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delta must be non-zero")
	}
	if strings.TrimSpace(input.Reason) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reason required")
	}

	var (
		result  AdjustmentResult
		variant *models.ProductVariant
	)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		loaded, err := repo.FindVariant(ctx, input.VariantID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant")
		}

		previous := loaded.StockQuantity
		next := previous + input.Delta
		if next < 0 {
			next = 0
		}

		ok, err := repo.UpdateStockFrom(ctx, input.VariantID, previous, next)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update stock")
		}
		if !ok {
			s.metrics.IncConflict()
			return pkgerrors.New(pkgerrors.CodeConflict, "stock changed concurrently, retry the adjustment")
		}

		changeType := enums.StockChangeIncrement
		if input.Delta < 0 {
			changeType = enums.StockChangeDecrement
		}
		applied := next - previous
		if applied < 0 {
			applied = -applied
		}

		entry := &models.InventoryLog{
			ID:            uuid.New(),
			VariantID:     input.VariantID,
			ChangeType:    changeType,
			Quantity:      applied,
			PreviousStock: previous,
			NewStock:      next,
			Reason:        input.Reason,
			Note:          input.Note,
		}
		if err := repo.AppendLog(ctx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append inventory log")
		}

		loaded.StockQuantity = next
		variant = loaded
		result = AdjustmentResult{
			VariantID:     input.VariantID,
			PreviousStock: previous,
			NewStock:      next,
		}
		s.metrics.IncAdjustment(string(changeType), input.Reason)
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"variant_id": input.VariantID.String(),
		"reason":     input.Reason,
		"previous":   result.PreviousStock,
		"new":        result.NewStock,
	})
	s.logg.Info(ctx, "stock adjusted")

	s.maybeNotifyLowStock(ctx, variant)
	return &result, nil
}

// ReserveStock holds quantity units for an in-progress order. Unlike
// AdjustStock it never clamps: a short variant fails the call with no
// mutation and no log row.
func (s *service) ReserveStock(ctx context.Context, variantID uuid.UUID, quantity int) error {
	started := time.Now()
	defer func() { s.metrics.ObserveDuration("reserve_stock", time.Since(started)) }()

	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "reservation quantity must be positive")
	}

	var variant *models.ProductVariant
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		results, err := Reserve(ctx, tx, []ReservationRequest{{VariantID: variantID, Quantity: quantity}})
		if err != nil {
			return err
		}
		res := results[0]
		if !res.Reserved {
			if res.Reason == reasonVariantNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
			}
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock for reservation").
				WithDetails(map[string]any{"variant_id": variantID.String(), "requested": quantity})
		}

		loaded, err := NewRepository(tx).FindVariant(ctx, variantID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload variant")
		}
		variant = loaded
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.IncAdjustment(string(enums.StockChangeDecrement), ReasonReservation)
	s.maybeNotifyLowStock(ctx, variant)
	return nil
}

// ReleaseStock returns quantity units previously held by ReserveStock.
func (s *service) ReleaseStock(ctx context.Context, variantID uuid.UUID, quantity int) error {
	started := time.Now()
	defer func() { s.metrics.ObserveDuration("release_stock", time.Since(started)) }()

	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "release quantity must be positive")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return Release(ctx, tx, []ReservationRequest{{VariantID: variantID, Quantity: quantity}})
	})
	if err != nil {
		return err
	}

	s.metrics.IncAdjustment(string(enums.StockChangeIncrement), ReasonRelease)
	return nil
}

// LowStockAlerts returns variants at or below their threshold, lowest stock
// first: out-of-stock rows carry IsOutOfStock and sort ahead of merely low
// ones by virtue of the stock ordering.
func (s *service) LowStockAlerts(ctx context.Context) ([]LowStockAlert, error) {
	variants, err := s.repo.ListLowStockVariants(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list low stock variants")
	}

	alerts := make([]LowStockAlert, 0, len(variants))
	for _, variant := range variants {
		alerts = append(alerts, buildAlert(&variant))
	}
	return alerts, nil
}

// StockSummary aggregates all variants as of call time. The scan is a single
// read so concurrent adjustments can make the counters approximate; that is
// acceptable for a reporting endpoint.
func (s *service) StockSummary(ctx context.Context) (*StockSummary, error) {
	variants, err := s.repo.ListVariantsWithProduct(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list variants")
	}

	products := map[uuid.UUID]struct{}{}
	summary := StockSummary{
		TotalInventoryValue: decimal.Zero,
		LastUpdated:         time.Now().UTC(),
	}
	for _, variant := range variants {
		products[variant.ProductID] = struct{}{}
		summary.TotalVariants++
		switch {
		case variant.StockQuantity == 0:
			summary.OutOfStockItems++
		case variant.StockQuantity <= variant.LowStockThreshold:
			summary.LowStockItems++
		}
		value := variant.Price.Mul(decimal.NewFromInt(int64(variant.StockQuantity)))
		summary.TotalInventoryValue = summary.TotalInventoryValue.Add(value)
	}
	summary.TotalProducts = len(products)
	return &summary, nil
}

// History returns the audit trail for one variant, newest-first.
func (s *service) History(ctx context.Context, variantID uuid.UUID, filter HistoryFilter) ([]models.InventoryLog, error) {
	if variantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant id required")
	}
	rows, err := s.repo.History(ctx, variantID, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "query inventory history")
	}
	return rows, nil
}

// maybeNotifyLowStock fires the alert hook outside the transaction. The
// dispatch is detached from the request: notification failures are logged
// and never reach the caller.
func (s *service) maybeNotifyLowStock(ctx context.Context, variant *models.ProductVariant) {
	if s.notifier == nil || variant == nil {
		return
	}
	if variant.StockQuantity > variant.LowStockThreshold {
		return
	}

	alert := buildAlert(variant)
	logg := s.logg
	s.metrics.IncLowStockAlert(alertType(alert))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logg.Error(context.Background(), "low stock notification failed", fmt.Errorf("low stock notifier panic: %v", r))
			}
		}()
		notifyCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.notifier.NotifyLowStock(notifyCtx, alert); err != nil {
			logg.Error(notifyCtx, "low stock notification failed", err)
		}
	}()
}

func buildAlert(variant *models.ProductVariant) LowStockAlert {
	alert := LowStockAlert{
		VariantID:    variant.ID,
		SKU:          variant.SKU,
		Size:         variant.Size,
		Color:        variant.Color,
		CurrentStock: variant.StockQuantity,
		Threshold:    variant.LowStockThreshold,
		IsOutOfStock: variant.StockQuantity == 0,
	}
	if variant.Product != nil {
		alert.ProductName = variant.Product.Name
	}
	return alert
}

func alertType(alert LowStockAlert) string {
	if alert.IsOutOfStock {
		return string(enums.NotificationTypeOutOfStock)
	}
	return string(enums.NotificationTypeLowStock)
}
