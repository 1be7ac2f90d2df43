package product

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ziiziikids/ziizii-backend/pkg/db/models"
	"github.com/ziiziikids/ziizii-backend/pkg/pagination"
)

// Repository wires together the catalog product persistence helpers.
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

// Create inserts the product with its nested images and variants.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// Save persists all fields of an existing product row. Associations are
// omitted: images and variants are written through their own paths.
func (r *Repository) Save(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error
}

// SoftDelete deactivates the product instead of removing the row, keeping
// order history and audit logs intact. The false return means no such product.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_active": false, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FindByID loads a product with category, brand, images, and variants.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Brand").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("sku ASC")
		}).
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns one page of active products matching the filters, plus the
// total match count.
func (r *Repository) List(ctx context.Context, input ListProductsInput) ([]models.Product, int64, error) {
	qb := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_active = ?", true)
	qb = r.applyFilters(qb, input.Filters)

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := pagination.Normalize(input.Pagination)
	var rows []models.Product
	err := qb.
		Preload("Category").
		Preload("Brand").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Variants").
		Order(orderClause(input.SortBy, input.SortOrder)).
		Offset(params.Offset()).
		Limit(params.PageSize).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Search returns active products whose name or description contains the
// query, name order, capped at limit.
func (r *Repository) Search(ctx context.Context, query string, limit int) ([]models.Product, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Brand").
		Preload("Images").
		Preload("Variants").
		Where("is_active = ?", true).
		Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern).
		Order("name ASC").
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}

// Suggestions returns matching product names for type-ahead, capped at limit.
func (r *Repository) Suggestions(ctx context.Context, query string, limit int) ([]Suggestion, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var rows []Suggestion
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("id", "name").
		Where("is_active = ?", true).
		Where("LOWER(name) LIKE ?", pattern).
		Order("name ASC").
		Limit(limit).
		Scan(&rows).
		Error
	return rows, err
}

func (r *Repository) applyFilters(qb *gorm.DB, filters ProductListFilters) *gorm.DB {
	if filters.CategorySlug != nil {
		qb = qb.Where("category_id IN (?)", r.db.
			Model(&models.Category{}).
			Select("id").
			Where("slug = ?", *filters.CategorySlug))
	}
	if filters.BrandSlug != nil {
		qb = qb.Where("brand_id IN (?)", r.db.
			Model(&models.Brand{}).
			Select("id").
			Where("slug = ?", *filters.BrandSlug))
	}
	if filters.Size != nil || filters.Color != nil {
		variantQuery := r.db.
			Model(&models.ProductVariant{}).
			Select("product_id").
			Where("stock_quantity > 0")
		if filters.Size != nil {
			variantQuery = variantQuery.Where("size = ?", *filters.Size)
		}
		if filters.Color != nil {
			variantQuery = variantQuery.Where("color = ?", *filters.Color)
		}
		qb = qb.Where("id IN (?)", variantQuery)
	}
	if filters.MinPrice != nil {
		qb = qb.Where("price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		qb = qb.Where("price <= ?", *filters.MaxPrice)
	}
	if filters.OnSale != nil {
		qb = qb.Where("is_on_sale = ?", *filters.OnSale)
	}
	if filters.Featured != nil {
		qb = qb.Where("is_featured = ?", *filters.Featured)
	}
	if search := strings.TrimSpace(filters.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}
	return qb
}

func orderClause(sortBy SortBy, order SortOrder) string {
	column := "created_at"
	switch sortBy {
	case SortByPrice:
		column = "price"
	case SortByName:
		column = "name"
	case SortByCreated:
		column = "created_at"
	}
	direction := "DESC"
	if order == SortAsc {
		direction = "ASC"
	}
	return column + " " + direction
}
