package domain

import (
	"time"

	"github.com/krtkm27/ZEats-OrderService/pkg/types"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	StatusNew            OrderStatus = "new"
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// Order represents a pickup order in the system
type Order struct {
	ID          int64
	OrderNumber string
	UserID      int64
	OutletID    int64
	Status      OrderStatus

	Subtotal      float64
	Discount      float64
	Tax           float64
	Total         float64
	PaymentMethod string

	// PickupSlot слот, выбранный покупателем при оформлении ("HH:MM")
	// Не путать с PickupTime - расчетным временем готовности
	PickupSlot *types.TimeString

	// PickupTime расчетное абсолютное время готовности заказа
	// nil, пока заказ не подтвержден (при выключенном auto-confirm)
	PickupTime *time.Time

	// EstimatedTime человекочитаемая оценка ("18-23 mins", "~15 mins")
	EstimatedTime *string

	Instructions *string
	QRCode       string

	Items []OrderItem

	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrderItem represents a single line item of an order
// Prep fields are denormalized from the menu item at read time
type OrderItem struct {
	ID         int64
	MenuItemID int64
	Name       string
	Price      float64
	Quantity   int

	// PrepTimeMinutes время приготовления одной позиции, nil = не задано
	PrepTimeMinutes *int

	// IsReadyToPick позиция не требует приготовления (предупакована)
	IsReadyToPick bool
}

// IsActive returns true if the order occupies slot capacity
func (o *Order) IsActive() bool {
	for _, s := range ActiveStatuses {
		if o.Status == s {
			return true
		}
	}
	return false
}

// CanBeCancelled returns true if the order can still be cancelled
func (o *Order) CanBeCancelled() bool {
	for _, s := range CancellableStatuses {
		if o.Status == s {
			return true
		}
	}
	return false
}

// IsCompleted returns true for terminal states
func (o *Order) IsCompleted() bool {
	return o.Status == StatusDelivered || o.Status == StatusCancelled
}

// PrepProfiles returns the prep profile of each line item for estimation
func (o *Order) PrepProfiles() []PrepProfile {
	profiles := make([]PrepProfile, len(o.Items))
	for i, item := range o.Items {
		profiles[i] = PrepProfile{
			PrepTimeMinutes: item.PrepTimeMinutes,
			IsReadyToPick:   item.IsReadyToPick,
			Quantity:        item.Quantity,
		}
	}
	return profiles
}

// allowedTransitions допустимые переходы статусов заказа
var allowedTransitions = map[OrderStatus][]OrderStatus{
	StatusNew:            {StatusConfirmed, StatusPreparing, StatusCancelled},
	StatusPending:        {StatusConfirmed, StatusPreparing, StatusCancelled},
	StatusConfirmed:      {StatusPreparing, StatusReady, StatusCancelled},
	StatusPreparing:      {StatusReady, StatusCancelled},
	StatusReady:          {StatusOutForDelivery, StatusDelivered},
	StatusOutForDelivery: {StatusDelivered},
}

// CanTransition reports whether an order may move from its current status to next
func (o *Order) CanTransition(next OrderStatus) bool {
	for _, allowed := range allowedTransitions[o.Status] {
		if next == allowed {
			return true
		}
	}
	return false
}

// ParseOrderStatus validates a raw status string
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	switch OrderStatus(raw) {
	case StatusNew, StatusPending, StatusConfirmed, StatusPreparing,
		StatusReady, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return OrderStatus(raw), true
	}
	return "", false
}

// OutletOrdersFilter фильтр для получения заказов заведения
type OutletOrdersFilter struct {
	OutletID     int64
	Status       *OrderStatus
	CreatedSince *time.Time // начало периода (обычно начало текущего дня)
	OnlyActive   bool       // только заказы, занимающие слоты
	Limit        int
	Offset       int
}
