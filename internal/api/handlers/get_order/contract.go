package get_order

import (
	"context"

	"github.com/krtkm27/ZEats-OrderService/internal/domain"
	"github.com/krtkm27/ZEats-OrderService/internal/service/orders/models"
)

type OrderService interface {
	GetByOrderNumber(ctx context.Context, orderNumber string, actor domain.Actor) (*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
