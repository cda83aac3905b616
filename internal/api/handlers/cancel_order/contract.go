package cancel_order

import (
	"context"

	"github.com/krtkm27/ZEats-OrderService/internal/service/orders/models"
)

type OrderService interface {
	Cancel(ctx context.Context, req *models.CancelOrderRequest) (*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
