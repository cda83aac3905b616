package update_order_status

import (
	"time"

	"github.com/krtkm27/ZEats-OrderService/internal/domain"
	"github.com/krtkm27/ZEats-OrderService/pkg/types"
)

// Request модель запроса на смену статуса заказа
type Request struct {
	Actor       domain.Actor
	OrderNumber string
	Status      string

	// EstimatedTime ручная оценка оператора ("25 mins"); число из строки
	// пересчитывает pickupTime напрямую, минуя модель оценки
	EstimatedTime *string
}

// Response модель ответа с обновленным заказом
type Response struct {
	OrderNumber   string
	Status        string
	PickupSlot    *types.TimeString
	PickupTime    *time.Time
	EstimatedTime *string
	CompletedAt   *time.Time
}
