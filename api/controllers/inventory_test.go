package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ziiziikids/ziizii-backend/internal/inventory"
	pkgerrors "github.com/ziiziikids/ziizii-backend/pkg/errors"
	"github.com/ziiziikids/ziizii-backend/pkg/db/models"
	"github.com/ziiziikids/ziizii-backend/pkg/logger"
	"github.com/ziiziikids/ziizii-backend/pkg/types"
)

type testInventoryService struct {
	adjustFn  func(ctx context.Context, input inventory.AdjustStockInput) (*inventory.AdjustmentResult, error)
	reserveFn func(ctx context.Context, variantID uuid.UUID, quantity int) error
	historyFn func(ctx context.Context, variantID uuid.UUID, filter inventory.HistoryFilter) ([]models.InventoryLog, error)
}

func (s *testInventoryService) AdjustStock(ctx context.Context, input inventory.AdjustStockInput) (*inventory.AdjustmentResult, error) {
	if s.adjustFn != nil {
		return s.adjustFn(ctx, input)
	}
	return &inventory.AdjustmentResult{}, nil
}

func (s *testInventoryService) ReserveStock(ctx context.Context, variantID uuid.UUID, quantity int) error {
	if s.reserveFn != nil {
		return s.reserveFn(ctx, variantID, quantity)
	}
	return nil
}

func (s *testInventoryService) ReleaseStock(context.Context, uuid.UUID, int) error { return nil }

func (s *testInventoryService) LowStockAlerts(context.Context) ([]inventory.LowStockAlert, error) {
	return []inventory.LowStockAlert{}, nil
}

func (s *testInventoryService) StockSummary(context.Context) (*inventory.StockSummary, error) {
	return &inventory.StockSummary{}, nil
}

func (s *testInventoryService) History(ctx context.Context, variantID uuid.UUID, filter inventory.HistoryFilter) ([]models.InventoryLog, error) {
	if s.historyFn != nil {
		return s.historyFn(ctx, variantID, filter)
	}
	return nil, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestAdjustStockHandler(t *testing.T) {
	variantID := uuid.New()
	svc := &testInventoryService{
		adjustFn: func(_ context.Context, input inventory.AdjustStockInput) (*inventory.AdjustmentResult, error) {
			if input.VariantID != variantID {
				t.Fatalf("unexpected variant %s", input.VariantID)
			}
			if input.Delta != -3 || input.Reason != "damage audit" {
				t.Fatalf("unexpected input %+v", input)
			}
			return &inventory.AdjustmentResult{VariantID: input.VariantID, PreviousStock: 10, NewStock: 7}, nil
		},
	}

	body := `{"variant_id":"` + variantID.String() + `","delta":-3,"reason":"damage audit"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/adjust", strings.NewReader(body))
	resp := httptest.NewRecorder()
	AdjustStock(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data inventory.AdjustmentResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.NewStock != 7 {
		t.Fatalf("unexpected new stock %d", envelope.Data.NewStock)
	}
}

func TestAdjustStockHandlerRejectsBadBody(t *testing.T) {
	svc := &testInventoryService{
		adjustFn: func(context.Context, inventory.AdjustStockInput) (*inventory.AdjustmentResult, error) {
			t.Fatal("service must not be called on invalid payload")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/adjust", strings.NewReader(`{"variant_id":"nope","delta":1,"reason":"x"}`))
	resp := httptest.NewRecorder()
	AdjustStock(svc, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestReserveStockHandlerMapsInsufficientStock(t *testing.T) {
	variantID := uuid.New()
	svc := &testInventoryService{
		reserveFn: func(_ context.Context, id uuid.UUID, quantity int) error {
			return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock").
				WithDetails(map[string]any{"variant_id": id, "requested": quantity, "available": 1})
		},
	}

	body := `{"variant_id":"` + variantID.String() + `","quantity":5}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/reserve", strings.NewReader(body))
	resp := httptest.NewRecorder()
	ReserveStock(svc, testLogger())(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeInsufficientStock) {
		t.Fatalf("unexpected code %s", envelope.Error.Code)
	}
	if envelope.Error.Details == nil {
		t.Fatal("expected shortage details in payload")
	}
}

func TestStockHistoryHandlerParsesBounds(t *testing.T) {
	variantID := uuid.New()
	var gotFilter inventory.HistoryFilter
	svc := &testInventoryService{
		historyFn: func(_ context.Context, id uuid.UUID, filter inventory.HistoryFilter) ([]models.InventoryLog, error) {
			if id != variantID {
				t.Fatalf("unexpected variant %s", id)
			}
			gotFilter = filter
			return []models.InventoryLog{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory/history/"+variantID.String()+"?from=2026-01-01&to=2026-02-01", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("variantId", variantID.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	resp := httptest.NewRecorder()
	StockHistory(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if gotFilter.From == nil || gotFilter.To == nil {
		t.Fatalf("expected both bounds parsed, got %+v", gotFilter)
	}
	if gotFilter.From.Format("2006-01-02") != "2026-01-01" {
		t.Fatalf("unexpected from bound %v", gotFilter.From)
	}
}
