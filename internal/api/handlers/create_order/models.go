package create_order

import (
	"time"

	createOrder "github.com/krtkm27/ZEats-OrderService/internal/usecase/create_order"
	"github.com/krtkm27/ZEats-OrderService/pkg/types"
)

// CreateOrderRequest HTTP request model
type CreateOrderRequest struct {
	OutletID            int64              `json:"outletId,omitempty"`
	Items               []OrderItemRequest `json:"items"`
	PaymentMethod       string             `json:"paymentMethod,omitempty"`
	PickupSlot          *string            `json:"pickupSlot,omitempty"` // "18:30"
	UseLoyaltyPoints    bool               `json:"useLoyaltyPoints,omitempty"`
	SpecialInstructions *string            `json:"specialInstructions,omitempty"`
}

// OrderItemRequest одна позиция заказа
type OrderItemRequest struct {
	MenuItemID int64 `json:"menuItemId"`
	Quantity   int   `json:"quantity"`
}

// OrderResponse HTTP response model
type OrderResponse struct {
	ID            int64               `json:"id"`
	OrderNumber   string              `json:"orderNumber"`
	UserID        int64               `json:"userId"`
	OutletID      int64               `json:"outletId"`
	Status        string              `json:"status"`
	Subtotal      float64             `json:"subtotal"`
	Discount      float64             `json:"discount"`
	Tax           float64             `json:"tax"`
	Total         float64             `json:"total"`
	PaymentMethod string              `json:"paymentMethod"`
	PickupSlot    *string             `json:"pickupSlot,omitempty"`
	PickupTime    *string             `json:"pickupTime,omitempty"`
	EstimatedTime *string             `json:"estimatedTime,omitempty"`
	Instructions  *string             `json:"specialInstructions,omitempty"`
	QRCode        string              `json:"qrCode"`
	Items         []OrderItemResponse `json:"items"`
	PointsEarned  int64               `json:"pointsEarned"`
	CreatedAt     string              `json:"createdAt"`
}

// OrderItemResponse одна позиция созданного заказа
type OrderItemResponse struct {
	MenuItemID int64   `json:"menuItemId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateOrderRequest) ToUseCaseRequest(userID int64) (*createOrder.Request, error) {
	var pickupSlot *types.TimeString
	if r.PickupSlot != nil && *r.PickupSlot != "" {
		slot, err := types.NewTimeStringFromString(*r.PickupSlot)
		if err != nil {
			return nil, err
		}
		pickupSlot = &slot
	}

	items := make([]createOrder.RequestItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = createOrder.RequestItem{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
		}
	}

	return &createOrder.Request{
		UserID:              userID,
		OutletID:            r.OutletID,
		Items:               items,
		PaymentMethod:       r.PaymentMethod,
		PickupSlot:          pickupSlot,
		UseLoyaltyPoints:    r.UseLoyaltyPoints,
		SpecialInstructions: r.SpecialInstructions,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createOrder.Response) *OrderResponse {
	items := make([]OrderItemResponse, len(resp.Items))
	for i, item := range resp.Items {
		items[i] = OrderItemResponse{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
		}
	}

	var pickupSlot *string
	if resp.PickupSlot != nil {
		s := resp.PickupSlot.String()
		pickupSlot = &s
	}

	var pickupTime *string
	if resp.PickupTime != nil {
		t := resp.PickupTime.Format(time.RFC3339)
		pickupTime = &t
	}

	return &OrderResponse{
		ID:            resp.ID,
		OrderNumber:   resp.OrderNumber,
		UserID:        resp.UserID,
		OutletID:      resp.OutletID,
		Status:        resp.Status,
		Subtotal:      resp.Subtotal,
		Discount:      resp.Discount,
		Tax:           resp.Tax,
		Total:         resp.Total,
		PaymentMethod: resp.PaymentMethod,
		PickupSlot:    pickupSlot,
		PickupTime:    pickupTime,
		EstimatedTime: resp.EstimatedTime,
		Instructions:  resp.Instructions,
		QRCode:        resp.QRCode,
		Items:         items,
		PointsEarned:  resp.PointsEarned,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
