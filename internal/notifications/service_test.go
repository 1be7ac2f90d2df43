package notifications

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ziiziikids/ziizii-backend/internal/inventory"
	"github.com/ziiziikids/ziizii-backend/pkg/db/models"
	"github.com/ziiziikids/ziizii-backend/pkg/enums"
	pkgerrors "github.com/ziiziikids/ziizii-backend/pkg/errors"
	"github.com/ziiziikids/ziizii-backend/pkg/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:notifications_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Notification{}); err != nil {
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

func TestCreateAndListNotifications(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	variantID := uuid.New()
	for i := range 3 {
		created, err := svc.Create(ctx, enums.NotificationTypeLowStock,
			fmt.Sprintf("Low stock %d", i), "running out", &variantID)
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, created.ID)

		// distinct created_at so the ordering assertion is deterministic
		stamp := time.Now().UTC().Add(time.Duration(i) * time.Second)
		require.NoError(t, conn.Model(created).Update("created_at", stamp).Error)
	}

	rows, err := svc.List(ctx, false, 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Low stock 2", rows[0].Title)
	require.Equal(t, "Low stock 0", rows[2].Title)

	limited, err := svc.List(ctx, false, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
}

func TestCreateNotificationValidation(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	_, err := svc.Create(ctx, enums.NotificationType("bogus"), "Title", "msg", nil)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.Create(ctx, enums.NotificationTypeLowStock, "   ", "msg", nil)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestMarkReadFiltersFromUnreadList(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	first, err := svc.Create(ctx, enums.NotificationTypeLowStock, "First", "msg", nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, enums.NotificationTypeOutOfStock, "Second", "msg", nil)
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(ctx, first.ID))

	unread, err := svc.List(ctx, true, 0)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	require.Equal(t, "Second", unread[0].Title)

	err = svc.MarkRead(ctx, first.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	err = svc.MarkRead(ctx, uuid.New())
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

type capturePublisher struct {
	topics []string
	events []string
	err    error
}

func (p *capturePublisher) PublishJSON(_ context.Context, topic, eventType string, _ any) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.topics = append(p.topics, topic)
	p.events = append(p.events, eventType)
	return "msg-1", nil
}

func TestDispatcherPersistsAndPublishes(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	logg := logger.New(logger.Options{ServiceName: "notifications-test", Output: io.Discard})
	publisher := &capturePublisher{}

	dispatcher, err := NewLowStockDispatcher(svc, logg, publisher, "low-stock-events")
	require.NoError(t, err)

	alert := inventory.LowStockAlert{
		VariantID:    uuid.New(),
		ProductName:  "Rainbow Tee",
		SKU:          "var-123",
		CurrentStock: 2,
		Threshold:    5,
	}
	require.NoError(t, dispatcher.NotifyLowStock(context.Background(), alert))

	rows, err := svc.List(context.Background(), true, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, enums.NotificationTypeLowStock, rows[0].Type)
	require.Equal(t, "Low stock", rows[0].Title)
	require.NotNil(t, rows[0].VariantID)
	require.Equal(t, alert.VariantID, *rows[0].VariantID)
	require.Contains(t, rows[0].Message, "Rainbow Tee")
	require.Contains(t, rows[0].Message, "2 units")

	require.Equal(t, []string{"low-stock-events"}, publisher.topics)
	require.Equal(t, []string{string(enums.NotificationTypeLowStock)}, publisher.events)
}

func TestDispatcherOutOfStockAndPublishFailure(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	logg := logger.New(logger.Options{ServiceName: "notifications-test", Output: io.Discard})
	publisher := &capturePublisher{err: fmt.Errorf("broker down")}

	dispatcher, err := NewLowStockDispatcher(svc, logg, publisher, "low-stock-events")
	require.NoError(t, err)

	alert := inventory.LowStockAlert{
		VariantID:    uuid.New(),
		ProductName:  "Dino Hoodie",
		SKU:          "var-456",
		CurrentStock: 0,
		Threshold:    5,
		IsOutOfStock: true,
	}
	require.NoError(t, dispatcher.NotifyLowStock(context.Background(), alert))

	rows, err := svc.List(context.Background(), true, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, enums.NotificationTypeOutOfStock, rows[0].Type)
	require.Equal(t, "Out of stock", rows[0].Title)
}

func TestDispatcherWithoutPublisher(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	logg := logger.New(logger.Options{ServiceName: "notifications-test", Output: io.Discard})

	dispatcher, err := NewLowStockDispatcher(svc, logg, nil, "")
	require.NoError(t, err)

	alert := inventory.LowStockAlert{
		VariantID:    uuid.New(),
		ProductName:  "Star Socks",
		SKU:          "var-789",
		CurrentStock: 3,
		Threshold:    5,
	}
	require.NoError(t, dispatcher.NotifyLowStock(context.Background(), alert))

	rows, err := svc.List(context.Background(), true, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
