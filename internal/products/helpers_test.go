package product

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ziiziikids/ziizii-backend/pkg/db"
	"github.com/ziiziikids/ziizii-backend/pkg/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:products_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductVariant{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn), db.FromConn(conn), 5)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func seedCategory(t *testing.T, conn *gorm.DB, name, slug string) *models.Category {
	t.Helper()
	category := &models.Category{ID: uuid.New(), Name: name, Slug: slug, IsActive: true}
	if err := conn.Create(category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return category
}

func seedBrand(t *testing.T, conn *gorm.DB, name, slug string) *models.Brand {
	t.Helper()
	brand := &models.Brand{ID: uuid.New(), Name: name, Slug: slug}
	if err := conn.Create(brand).Error; err != nil {
		t.Fatalf("seed brand: %v", err)
	}
	return brand
}

type seedProductOpts struct {
	name       string
	price      int64
	categoryID uuid.UUID
	brandID    uuid.UUID
	onSale     bool
	featured   bool
	active     bool
	size       string
	stock      int
}

func seedProduct(t *testing.T, conn *gorm.DB, opts seedProductOpts) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:          uuid.New(),
		Name:        opts.name,
		Description: opts.name + " for kids",
		SKU:         "sku-" + uuid.NewString(),
		Price:       decimal.NewFromInt(opts.price),
		CategoryID:  opts.categoryID,
		BrandID:     opts.brandID,
		IsActive:    opts.active,
		IsFeatured:  opts.featured,
		IsOnSale:    opts.onSale,
	}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	size := opts.size
	if size == "" {
		size = "3T"
	}
	variant := &models.ProductVariant{
		ID:                uuid.New(),
		ProductID:         product.ID,
		Size:              &size,
		Price:             product.Price,
		StockQuantity:     opts.stock,
		LowStockThreshold: 5,
		SKU:               "var-" + uuid.NewString(),
	}
	if err := conn.Create(variant).Error; err != nil {
		t.Fatalf("seed variant: %v", err)
	}
	return product
}
