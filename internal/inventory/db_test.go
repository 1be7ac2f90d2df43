package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ziiziikids/ziizii-backend/pkg/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:inventory_" + uuid.NewString() + "?mode=memory&cache=shared"
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
		&models.InventoryLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func seedVariant(t *testing.T, conn *gorm.DB, stock, threshold int) *models.ProductVariant {
	t.Helper()
	product := &models.Product{
		ID:       uuid.New(),
		Name:     "Rainbow Tee",
		SKU:      "prod-" + uuid.NewString(),
		Price:    decimal.NewFromInt(25),
		IsActive: true,
	}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	size := "4T"
	variant := &models.ProductVariant{
		ID:                uuid.New(),
		ProductID:         product.ID,
		Size:              &size,
		Price:             decimal.NewFromInt(25),
		StockQuantity:     stock,
		LowStockThreshold: threshold,
		SKU:               "var-" + uuid.NewString(),
	}
	if err := conn.Create(variant).Error; err != nil {
		t.Fatalf("seed variant: %v", err)
	}
	return variant
}

func countLogs(t *testing.T, conn *gorm.DB, variantID uuid.UUID) int64 {
	t.Helper()
	var count int64
	if err := conn.Model(&models.InventoryLog{}).Where("variant_id = ?", variantID).Count(&count).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	return count
}
