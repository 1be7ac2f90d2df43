package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ziiziikids/ziizii-backend/internal/orders"
	"github.com/ziiziikids/ziizii-backend/pkg/enums"
	pkgerrors "github.com/ziiziikids/ziizii-backend/pkg/errors"
	"github.com/ziiziikids/ziizii-backend/pkg/types"
)

type testOrdersService struct {
	createFn func(ctx context.Context, input orders.CreateOrderInput) (*orders.OrderDTO, error)
	cancelFn func(ctx context.Context, id uuid.UUID) (*orders.OrderDTO, error)
}

func (s *testOrdersService) CreateOrder(ctx context.Context, input orders.CreateOrderInput) (*orders.OrderDTO, error) {
	if s.createFn != nil {
		return s.createFn(ctx, input)
	}
	return &orders.OrderDTO{}, nil
}

func (s *testOrdersService) GetOrder(context.Context, uuid.UUID) (*orders.OrderDTO, error) {
	return &orders.OrderDTO{}, nil
}

func (s *testOrdersService) ListUserOrders(context.Context, string) ([]orders.OrderSummary, error) {
	return []orders.OrderSummary{}, nil
}

func (s *testOrdersService) CancelOrder(ctx context.Context, id uuid.UUID) (*orders.OrderDTO, error) {
	if s.cancelFn != nil {
		return s.cancelFn(ctx, id)
	}
	return &orders.OrderDTO{}, nil
}

func TestCreateOrderHandler(t *testing.T) {
	variantID := uuid.New()
	svc := &testOrdersService{
		createFn: func(_ context.Context, input orders.CreateOrderInput) (*orders.OrderDTO, error) {
			if input.UserID != "user-7" {
				t.Fatalf("unexpected user %s", input.UserID)
			}
			if len(input.Items) != 1 || input.Items[0].VariantID != variantID || input.Items[0].Quantity != 2 {
				t.Fatalf("unexpected items %+v", input.Items)
			}
			return &orders.OrderDTO{
				ID:          uuid.New(),
				UserID:      input.UserID,
				Status:      enums.OrderStatusPending,
				TotalAmount: decimal.NewFromInt(50),
			}, nil
		},
	}

	body := `{"user_id":"user-7","items":[{"variant_id":"` + variantID.String() + `","quantity":2}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	resp := httptest.NewRecorder()
	CreateOrder(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data orders.OrderDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Status != enums.OrderStatusPending {
		t.Fatalf("unexpected status %s", envelope.Data.Status)
	}
}

func TestCreateOrderHandlerRequiresItems(t *testing.T) {
	svc := &testOrdersService{
		createFn: func(context.Context, orders.CreateOrderInput) (*orders.OrderDTO, error) {
			t.Fatal("service must not be called on invalid payload")
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"user_id":"user-7","items":[]}`))
	resp := httptest.NewRecorder()
	CreateOrder(svc, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCancelOrderHandlerMapsConflict(t *testing.T) {
	orderID := uuid.New()
	svc := &testOrdersService{
		cancelFn: func(_ context.Context, id uuid.UUID) (*orders.OrderDTO, error) {
			if id != orderID {
				t.Fatalf("unexpected order %s", id)
			}
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "only pending orders can be cancelled")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/cancel", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("orderId", orderID.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	resp := httptest.NewRecorder()
	CancelOrder(svc, testLogger())(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
	var envelope types.ErrorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Message != "only pending orders can be cancelled" {
		t.Fatalf("unexpected message %s", envelope.Error.Message)
	}
}
