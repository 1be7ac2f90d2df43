package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ziiziikids/ziizii-backend/pkg/db/models"
)

// Repository wires together category and brand reads.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListRootCategories returns active top-level categories with their active
// children preloaded, name order.
func (r *Repository) ListRootCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("name ASC")
		}).
		Where("parent_id IS NULL AND is_active = ?", true).
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

// FindCategoryBySlug loads one active category with its active children.
func (r *Repository) FindCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("name ASC")
		}).
		First(&category, "slug = ? AND is_active = ?", slug, true).
		Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ListBrands returns all brands, name order.
func (r *Repository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var rows []models.Brand
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// CountActiveProductsByCategory returns active product counts per category id.
func (r *Repository) CountActiveProductsByCategory(ctx context.Context) (map[uuid.UUID]int64, error) {
	return r.countActiveProductsBy(ctx, "category_id")
}

// CountActiveProductsByBrand returns active product counts per brand id.
func (r *Repository) CountActiveProductsByBrand(ctx context.Context) (map[uuid.UUID]int64, error) {
	return r.countActiveProductsBy(ctx, "brand_id")
}

func (r *Repository) countActiveProductsBy(ctx context.Context, column string) (map[uuid.UUID]int64, error) {
	type countRow struct {
		Key   uuid.UUID
		Count int64
	}
	var rows []countRow
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select(column+" AS key, COUNT(*) AS count").
		Where("is_active = ?", true).
		Group(column).
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.Count
	}
	return counts, nil
}
