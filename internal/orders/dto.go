package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ziiziikids/ziizii-backend/pkg/db/models"
	"github.com/ziiziikids/ziizii-backend/pkg/enums"
)

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	VariantID uuid.UUID
	Quantity  int
}

// CreateOrderInput carries the payload to place an order.
type CreateOrderInput struct {
	UserID string
	Items  []OrderItemInput
}

// OrderDTO is the full order payload returned to clients.
type OrderDTO struct {
	ID          uuid.UUID         `json:"id"`
	UserID      string            `json:"user_id"`
	Status      enums.OrderStatus `json:"status"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Items       []OrderItemDTO    `json:"items"`
	CreatedAt   time.Time         `json:"created_at"`
}

// OrderItemDTO is one line with its price snapshot.
type OrderItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	VariantID   uuid.UUID       `json:"variant_id"`
	ProductName string          `json:"product_name,omitempty"`
	VariantSKU  string          `json:"variant_sku,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// OrderSummary is the condensed row used by order listings.
type OrderSummary struct {
	ID          uuid.UUID         `json:"id"`
	Status      enums.OrderStatus `json:"status"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	ItemCount   int               `json:"item_count"`
	CreatedAt   time.Time         `json:"created_at"`
}

// NewOrderDTO builds a DTO from the persisted model.
func NewOrderDTO(order *models.Order) *OrderDTO {
	dto := &OrderDTO{
		ID:          order.ID,
		UserID:      order.UserID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		Items:       make([]OrderItemDTO, 0, len(order.Items)),
		CreatedAt:   order.CreatedAt,
	}
	for _, item := range order.Items {
		line := OrderItemDTO{
			ID:        item.ID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
		if item.Variant != nil {
			line.VariantSKU = item.Variant.SKU
			if item.Variant.Product != nil {
				line.ProductName = item.Variant.Product.Name
			}
		}
		dto.Items = append(dto.Items, line)
	}
	return dto
}

// NewOrderSummary condenses an order row for listings.
func NewOrderSummary(order *models.Order) OrderSummary {
	return OrderSummary{
		ID:          order.ID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		CreatedAt:   order.CreatedAt,
	}
}
