package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ziiziikids/ziizii-backend/pkg/db/models"
)

// Repository wires together the variant and inventory log persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindVariant loads a variant without associations.
func (r *Repository) FindVariant(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.WithContext(ctx).First(&variant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

// UpdateStockFrom writes the new stock level only when the row still holds
// the previously observed value. The false return means a concurrent
// adjustment won the race.
func (r *Repository) UpdateStockFrom(ctx context.Context, id uuid.UUID, previous, next int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("id = ? AND stock_quantity = ?", id, previous).
		Updates(map[string]any{"stock_quantity": next, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DecrementStockIfAvailable atomically removes qty units when enough stock
// remains. The false return means the variant is missing or short.
func (r *Repository) DecrementStockIfAvailable(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("id = ? AND stock_quantity >= ?", id, qty).
		Updates(map[string]any{
			"stock_quantity": gorm.Expr("stock_quantity - ?", qty),
			"updated_at":     time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// IncrementStock atomically adds qty units back to the variant.
func (r *Repository) IncrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"stock_quantity": gorm.Expr("stock_quantity + ?", qty),
			"updated_at":     time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// AppendLog inserts a single audit row. Log rows are never updated or deleted.
func (r *Repository) AppendLog(ctx context.Context, entry *models.InventoryLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListVariantsWithProduct returns all variants with their product preloaded,
// in a stable order.
func (r *Repository) ListVariantsWithProduct(ctx context.Context) ([]models.ProductVariant, error) {
	var rows []models.ProductVariant
	err := r.db.WithContext(ctx).
		Preload("Product").
		Order("sku ASC").
		Find(&rows).
		Error
	return rows, err
}

// ListLowStockVariants returns variants at or below their own threshold,
// lowest stock first.
func (r *Repository) ListLowStockVariants(ctx context.Context) ([]models.ProductVariant, error) {
	var rows []models.ProductVariant
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("stock_quantity <= low_stock_threshold").
		Order("stock_quantity ASC").
		Order("sku ASC").
		Find(&rows).
		Error
	return rows, err
}

// History returns log rows for the variant newest-first, bounded by the
// optional inclusive date range.
func (r *Repository) History(ctx context.Context, variantID uuid.UUID, filter HistoryFilter) ([]models.InventoryLog, error) {
	qb := r.db.WithContext(ctx).
		Where("variant_id = ?", variantID)
	if filter.From != nil {
		qb = qb.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		qb = qb.Where("created_at <= ?", *filter.To)
	}

	var rows []models.InventoryLog
	err := qb.Order("created_at DESC").Order("id DESC").Find(&rows).Error
	return rows, err
}
