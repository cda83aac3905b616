package create_order

import (
	"time"

	"github.com/krtkm27/ZEats-OrderService/pkg/types"
)

// Request модель запроса на создание заказа
type Request struct {
	UserID int64 // ID покупателя

	// OutletID ID заведения; 0 - определяется по первой позиции заказа
	OutletID int64

	Items []RequestItem

	// PaymentMethod способ оплаты, пустая строка - дефолтный
	PaymentMethod string

	// PickupSlot выбранный слот самовывоза, nil - как можно скорее
	PickupSlot *types.TimeString

	// UseLoyaltyPoints списать баллы лояльности в счет скидки
	UseLoyaltyPoints bool

	// SpecialInstructions пожелания к заказу
	SpecialInstructions *string
}

// RequestItem одна позиция запроса
type RequestItem struct {
	MenuItemID int64
	Quantity   int
}

// Response модель ответа с созданным заказом
type Response struct {
	ID            int64
	OrderNumber   string
	UserID        int64
	OutletID      int64
	Status        string
	Subtotal      float64
	Discount      float64
	Tax           float64
	Total         float64
	PaymentMethod string
	PickupSlot    *types.TimeString
	PickupTime    *time.Time
	EstimatedTime *string
	Instructions  *string
	QRCode        string
	Items         []ResponseItem
	PointsEarned  int64
	CreatedAt     time.Time
}

// ResponseItem одна позиция созданного заказа
type ResponseItem struct {
	MenuItemID int64
	Name       string
	Price      float64
	Quantity   int
}
