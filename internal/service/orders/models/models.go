package models

import (
	"errors"
	"time"

	"github.com/krtkm27/ZEats-OrderService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid order status")
)

// Request модели

// GetUserOrdersRequest запрос на историю заказов пользователя
type GetUserOrdersRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
	Limit  int     `json:"limit,omitempty"`
	Offset int     `json:"offset,omitempty"`
}

// GetOutletOrdersRequest запрос на заказы заведения (лента кухни)
type GetOutletOrdersRequest struct {
	OutletID     int64      `json:"outletId"`
	Status       *string    `json:"status,omitempty"`
	CreatedSince *time.Time `json:"createdSince,omitempty"` // обычно начало текущего дня
	OnlyActive   bool       `json:"onlyActive,omitempty"`
	Limit        int        `json:"limit,omitempty"`
	Offset       int        `json:"offset,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetOutletOrdersRequest) ToDomainFilter() (domain.OutletOrdersFilter, error) {
	filter := domain.OutletOrdersFilter{
		OutletID:     r.OutletID,
		CreatedSince: r.CreatedSince,
		OnlyActive:   r.OnlyActive,
		Limit:        r.Limit,
		Offset:       r.Offset,
	}

	if r.Status != nil {
		status, err := ToDomainOrderStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// CancelOrderRequest запрос на отмену заказа покупателем
type CancelOrderRequest struct {
	UserID      int64   `json:"userId"`
	OrderNumber string  `json:"orderNumber"`
	Reason      *string `json:"reason,omitempty"`
}

// Response модели

// OrderResponse ответ с данными заказа
type OrderResponse struct {
	ID            int64   `json:"id"`
	OrderNumber   string  `json:"orderNumber"`
	UserID        int64   `json:"userId"`
	OutletID      int64   `json:"outletId"`
	Status        string  `json:"status"`
	Subtotal      float64 `json:"subtotal"`
	Discount      float64 `json:"discount"`
	Tax           float64 `json:"tax"`
	Total         float64 `json:"total"`
	PaymentMethod string  `json:"paymentMethod"`

	PickupSlot    *string `json:"pickupSlot,omitempty"`    // "14:30"
	PickupTime    *string `json:"pickupTime,omitempty"`    // ISO 8601
	EstimatedTime *string `json:"estimatedTime,omitempty"` // "18-23 mins"

	Instructions *string             `json:"instructions,omitempty"`
	QRCode       string              `json:"qrCode,omitempty"`
	Items        []OrderItemResponse `json:"items"`

	CompletedAt *string   `json:"completedAt,omitempty"` // ISO 8601
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OrderItemResponse одна позиция заказа
type OrderItemResponse struct {
	MenuItemID    int64   `json:"menuItemId"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	PrepTime      *int    `json:"prepTime,omitempty"`
	IsReadyToPick bool    `json:"isReadyToPick"`
}

// OrderListResponse ответ со списком заказов
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

// Методы конвертации

// FromDomainOrder конвертирует domain модель в DTO
func FromDomainOrder(o *domain.Order) *OrderResponse {
	if o == nil {
		return nil
	}

	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			MenuItemID:    item.MenuItemID,
			Name:          item.Name,
			Price:         item.Price,
			Quantity:      item.Quantity,
			PrepTime:      item.PrepTimeMinutes,
			IsReadyToPick: item.IsReadyToPick,
		}
	}

	resp := &OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		UserID:        o.UserID,
		OutletID:      o.OutletID,
		Status:        string(o.Status),
		Subtotal:      o.Subtotal,
		Discount:      o.Discount,
		Tax:           o.Tax,
		Total:         o.Total,
		PaymentMethod: o.PaymentMethod,
		EstimatedTime: o.EstimatedTime,
		Instructions:  o.Instructions,
		QRCode:        o.QRCode,
		Items:         items,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}

	if o.PickupSlot != nil {
		slot := o.PickupSlot.String()
		resp.PickupSlot = &slot
	}
	if o.PickupTime != nil {
		pickup := o.PickupTime.Format(time.RFC3339)
		resp.PickupTime = &pickup
	}
	if o.CompletedAt != nil {
		completed := o.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &completed
	}

	return resp
}

// FromDomainOrderList конвертирует список domain моделей в DTO
func FromDomainOrderList(orders []*domain.Order) *OrderListResponse {
	result := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		result = append(result, *FromDomainOrder(o))
	}
	return &OrderListResponse{Orders: result, Total: len(result)}
}

// ToDomainOrderStatus конвертирует строку в domain статус
func ToDomainOrderStatus(raw string) (domain.OrderStatus, error) {
	status, ok := domain.ParseOrderStatus(raw)
	if !ok {
		return "", ErrInvalidStatus
	}
	return status, nil
}
