package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ziiziikids/ziizii-backend/pkg/db/models"
	"github.com/ziiziikids/ziizii-backend/pkg/enums"
	pkgerrors "github.com/ziiziikids/ziizii-backend/pkg/errors"
)

const (
	// ReasonReservation marks log rows written when stock is held for an order.
	ReasonReservation = "reservation"
	// ReasonRelease marks log rows written when held stock is returned.
	ReasonRelease = "release"

	reasonVariantNotFound   = "variant not found"
	reasonInsufficientStock = "insufficient stock"
)

// ReservationRequest asks to hold qty units of one variant.
type ReservationRequest struct {
	VariantID uuid.UUID
	Quantity  int
}

// ReservationResult reports the outcome per request. Reason is set only when
// the reservation was declined.
type ReservationResult struct {
	VariantID uuid.UUID
	Reserved  bool
	Reason    string
	NewStock  int
}

// Reserve decrements stock for each request inside the caller's transaction
// and appends one audit row per successful hold. A declined request does not
// abort the batch; callers inspect the per-item results and decide whether to
// roll back.
func Reserve(ctx context.Context, tx *gorm.DB, requests []ReservationRequest) ([]ReservationResult, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction required for stock reservation")
	}
	for _, req := range requests {
		if req.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "reservation quantity must be positive")
		}
	}

	repo := NewRepository(tx)
	results := make([]ReservationResult, 0, len(requests))

	for _, req := range requests {
		ok, err := repo.DecrementStockIfAvailable(ctx, req.VariantID, req.Quantity)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
		}
		if !ok {
			reason := reasonInsufficientStock
			if _, ferr := repo.FindVariant(ctx, req.VariantID); ferr != nil {
				if ferr == gorm.ErrRecordNotFound {
					reason = reasonVariantNotFound
				} else {
					return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, ferr, "load variant")
				}
			}
			results = append(results, ReservationResult{
				VariantID: req.VariantID,
				Reason:    reason,
			})
			continue
		}

		variant, err := repo.FindVariant(ctx, req.VariantID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload variant after decrement")
		}

		entry := &models.InventoryLog{
			ID:            uuid.New(),
			VariantID:     req.VariantID,
			ChangeType:    enums.StockChangeDecrement,
			Quantity:      req.Quantity,
			PreviousStock: variant.StockQuantity + req.Quantity,
			NewStock:      variant.StockQuantity,
			Reason:        ReasonReservation,
		}
		if err := repo.AppendLog(ctx, entry); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append reservation log")
		}

		results = append(results, ReservationResult{
			VariantID: req.VariantID,
			Reserved:  true,
			NewStock:  variant.StockQuantity,
		})
	}

	return results, nil
}

// Release returns previously held units inside the caller's transaction,
// appending one audit row per request. Compensates a reservation whose order
// did not complete.
func Release(ctx context.Context, tx *gorm.DB, requests []ReservationRequest) error {
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for stock release")
	}
	for _, req := range requests {
		if req.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "release quantity must be positive")
		}
	}

	repo := NewRepository(tx)
	for _, req := range requests {
		ok, err := repo.IncrementStock(ctx, req.VariantID, req.Quantity)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment stock")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
		}

		variant, err := repo.FindVariant(ctx, req.VariantID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload variant after increment")
		}

		entry := &models.InventoryLog{
			ID:            uuid.New(),
			VariantID:     req.VariantID,
			ChangeType:    enums.StockChangeIncrement,
			Quantity:      req.Quantity,
			PreviousStock: variant.StockQuantity - req.Quantity,
			NewStock:      variant.StockQuantity,
			Reason:        ReasonRelease,
		}
		if err := repo.AppendLog(ctx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append release log")
		}
	}
	return nil
}
