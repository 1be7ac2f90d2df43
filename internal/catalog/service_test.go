package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ziiziikids/ziizii-backend/pkg/db/models"
	pkgerrors "github.com/ziiziikids/ziizii-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:catalog_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Category{}, &models.Brand{}, &models.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn))
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func seedTree(t *testing.T, conn *gorm.DB) (root, child, hidden *models.Category, brand *models.Brand) {
	t.Helper()
	root = &models.Category{ID: uuid.New(), Name: "Clothing", Slug: "clothing", IsActive: true}
	require.NoError(t, conn.Create(root).Error)

	child = &models.Category{ID: uuid.New(), Name: "Tops", Slug: "tops", ParentID: &root.ID, IsActive: true}
	require.NoError(t, conn.Create(child).Error)

	hidden = &models.Category{ID: uuid.New(), Name: "Archived", Slug: "archived", ParentID: &root.ID, IsActive: false}
	require.NoError(t, conn.Create(hidden).Error)

	brand = &models.Brand{ID: uuid.New(), Name: "ZiiZii", Slug: "ziizii"}
	require.NoError(t, conn.Create(brand).Error)

	for i, active := range []bool{true, true, false} {
		require.NoError(t, conn.Create(&models.Product{
			ID:         uuid.New(),
			Name:       "Product",
			SKU:        "sku-" + uuid.NewString(),
			Price:      decimal.NewFromInt(int64(10 + i)),
			CategoryID: child.ID,
			BrandID:    brand.ID,
			IsActive:   active,
		}).Error)
	}
	return root, child, hidden, brand
}

func TestCategoriesTreeWithCounts(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	_, child, _, _ := seedTree(t, conn)

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)

	root := categories[0]
	require.Equal(t, "clothing", root.Slug)
	require.Len(t, root.Children, 1, "inactive children are hidden")
	require.Equal(t, child.ID, root.Children[0].ID)
	require.EqualValues(t, 2, root.Children[0].ProductCount, "only active products are counted")
}

func TestCategoryBySlug(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	seedTree(t, conn)
	ctx := context.Background()

	dto, err := svc.CategoryBySlug(ctx, "tops")
	require.NoError(t, err)
	require.Equal(t, "Tops", dto.Name)
	require.EqualValues(t, 2, dto.ProductCount)

	_, err = svc.CategoryBySlug(ctx, "archived")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code(), "inactive categories read as missing")

	_, err = svc.CategoryBySlug(ctx, "")
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestBrandsWithCounts(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	_, _, _, brand := seedTree(t, conn)

	empty := &models.Brand{ID: uuid.New(), Name: "Acme Kids", Slug: "acme-kids"}
	require.NoError(t, conn.Create(empty).Error)

	brands, err := svc.Brands(context.Background())
	require.NoError(t, err)
	require.Len(t, brands, 2)
	require.Equal(t, "Acme Kids", brands[0].Name)
	require.EqualValues(t, 0, brands[0].ProductCount)
	require.Equal(t, brand.ID, brands[1].ID)
	require.EqualValues(t, 2, brands[1].ProductCount)
}
