package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ziiziikids/ziizii-backend/pkg/db"
	"github.com/ziiziikids/ziizii-backend/pkg/db/models"
	pkgerrors "github.com/ziiziikids/ziizii-backend/pkg/errors"
	"github.com/ziiziikids/ziizii-backend/pkg/pagination"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 50
	suggestionLimit    = 10
)

// Service exposes catalog product management and read operations.
type Service interface {
	List(ctx context.Context, input ListProductsInput) (*pagination.Page[ProductSummary], error)
	GetByID(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, limit int) ([]ProductSummary, error)
	Suggest(ctx context.Context, query string) ([]Suggestion, error)
}

type service struct {
	repo             *Repository
	dbClient         *db.Client
	defaultThreshold int
}

// NewService constructs a product service instance. defaultThreshold seeds
// variants that do not declare their own low stock threshold.
func NewService(repo *Repository, dbClient *db.Client, defaultThreshold int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if defaultThreshold < 0 {
		defaultThreshold = 0
	}
	return &service{
		repo:             repo,
		dbClient:         dbClient,
		defaultThreshold: defaultThreshold,
	}, nil
}

func (s *service) List(ctx context.Context, input ListProductsInput) (*pagination.Page[ProductSummary], error) {
	if err := validateSort(input.SortBy, input.SortOrder); err != nil {
		return nil, err
	}
	if input.Filters.MinPrice != nil && input.Filters.MaxPrice != nil &&
		input.Filters.MinPrice.GreaterThan(*input.Filters.MaxPrice) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "min_price cannot exceed max_price")
	}

	rows, total, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	summaries := make([]ProductSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, NewProductSummary(&row))
	}
	page := pagination.NewPage(summaries, input.Pagination, total)
	return &page, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(product), nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		SKU:           strings.TrimSpace(input.SKU),
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		CategoryID:    input.CategoryID,
		BrandID:       input.BrandID,
		IsActive:      true,
		IsFeatured:    input.IsFeatured,
		IsOnSale:      input.IsOnSale,
	}
	for _, image := range input.Images {
		product.Images = append(product.Images, models.ProductImage{
			ID:        uuid.New(),
			ProductID: product.ID,
			URL:       image.URL,
			IsMain:    image.IsMain,
			SortOrder: image.SortOrder,
		})
	}
	for _, variant := range input.Variants {
		threshold := s.defaultThreshold
		if variant.LowStockThreshold != nil {
			threshold = *variant.LowStockThreshold
		}
		product.Variants = append(product.Variants, models.ProductVariant{
			ID:                uuid.New(),
			ProductID:         product.ID,
			Size:              variant.Size,
			Color:             variant.Color,
			Price:             variant.Price,
			StockQuantity:     variant.StockQuantity,
			LowStockThreshold: threshold,
			SKU:               strings.TrimSpace(variant.SKU),
		})
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, product); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "sku already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert product")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, product.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		product, err := repo.FindByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		if input.Name != nil {
			if strings.TrimSpace(*input.Name) == "" {
				return pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
			}
			product.Name = strings.TrimSpace(*input.Name)
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Price != nil {
			if input.Price.IsNegative() {
				return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
			}
			product.Price = *input.Price
		}
		if input.OriginalPrice != nil {
			product.OriginalPrice = input.OriginalPrice
		}
		if input.CategoryID != nil {
			product.CategoryID = *input.CategoryID
		}
		if input.BrandID != nil {
			product.BrandID = *input.BrandID
		}
		if input.IsActive != nil {
			product.IsActive = *input.IsActive
		}
		if input.IsFeatured != nil {
			product.IsFeatured = *input.IsFeatured
		}
		if input.IsOnSale != nil {
			product.IsOnSale = *input.IsOnSale
		}

		if err := repo.Save(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate product")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func (s *service) Search(ctx context.Context, query string, limit int) ([]ProductSummary, error) {
	if strings.TrimSpace(query) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query required")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	rows, err := s.repo.Search(ctx, query, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search products")
	}
	summaries := make([]ProductSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, NewProductSummary(&row))
	}
	return summaries, nil
}

func (s *service) Suggest(ctx context.Context, query string) ([]Suggestion, error) {
	if strings.TrimSpace(query) == "" {
		return []Suggestion{}, nil
	}
	rows, err := s.repo.Suggestions(ctx, query, suggestionLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load suggestions")
	}
	return rows, nil
}

func validateSort(sortBy SortBy, order SortOrder) error {
	switch sortBy {
	case "", SortByPrice, SortByName, SortByCreated:
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "sort_by must be price, name, or created")
	}
	switch order {
	case "", SortAsc, SortDesc:
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "sort_order must be asc or desc")
	}
	return nil
}

func validateCreate(input CreateProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if strings.TrimSpace(input.SKU) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "sku required")
	}
	if input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if input.CategoryID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	if input.BrandID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "brand id required")
	}
	seen := map[string]struct{}{}
	for _, variant := range input.Variants {
		sku := strings.TrimSpace(variant.SKU)
		if sku == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant sku required")
		}
		if _, dup := seen[sku]; dup {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("duplicate variant sku %q", sku))
		}
		seen[sku] = struct{}{}
		if variant.StockQuantity < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant stock cannot be negative")
		}
		if variant.Price.LessThan(decimal.Zero) {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant price cannot be negative")
		}
		if variant.LowStockThreshold != nil && *variant.LowStockThreshold < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "low stock threshold cannot be negative")
		}
	}
	return nil
}
