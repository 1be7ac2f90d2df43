package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ziiziikids/ziizii-backend/pkg/db/models"
	pkgerrors "github.com/ziiziikids/ziizii-backend/pkg/errors"
)

// Service exposes the storefront category and brand reads.
type Service interface {
	Categories(ctx context.Context) ([]CategoryDTO, error)
	CategoryBySlug(ctx context.Context, slug string) (*CategoryDTO, error)
	Brands(ctx context.Context) ([]BrandDTO, error)
}

type service struct {
	repo *Repository
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Categories(ctx context.Context) ([]CategoryDTO, error) {
	roots, err := s.repo.ListRootCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	counts, err := s.repo.CountActiveProductsByCategory(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count category products")
	}

	dtos := make([]CategoryDTO, 0, len(roots))
	for _, root := range roots {
		dtos = append(dtos, buildCategoryDTO(&root, counts))
	}
	return dtos, nil
}

func (s *service) CategoryBySlug(ctx context.Context, slug string) (*CategoryDTO, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug required")
	}
	category, err := s.repo.FindCategoryBySlug(ctx, slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	counts, err := s.repo.CountActiveProductsByCategory(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count category products")
	}
	dto := buildCategoryDTO(category, counts)
	return &dto, nil
}

func (s *service) Brands(ctx context.Context) ([]BrandDTO, error) {
	brands, err := s.repo.ListBrands(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list brands")
	}
	counts, err := s.repo.CountActiveProductsByBrand(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count brand products")
	}

	dtos := make([]BrandDTO, 0, len(brands))
	for _, brand := range brands {
		dtos = append(dtos, BrandDTO{
			ID:           brand.ID,
			Name:         brand.Name,
			Slug:         brand.Slug,
			Logo:         brand.Logo,
			ProductCount: counts[brand.ID],
		})
	}
	return dtos, nil
}

func buildCategoryDTO(category *models.Category, counts map[uuid.UUID]int64) CategoryDTO {
	dto := CategoryDTO{
		ID:           category.ID,
		Name:         category.Name,
		Slug:         category.Slug,
		Description:  category.Description,
		Image:        category.Image,
		ProductCount: counts[category.ID],
	}
	for _, child := range category.Children {
		dto.Children = append(dto.Children, buildCategoryDTO(&child, counts))
	}
	return dto
}
