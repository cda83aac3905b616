package get_outlet_orders

import (
	"context"

	"github.com/krtkm27/ZEats-OrderService/internal/domain"
	"github.com/krtkm27/ZEats-OrderService/internal/service/orders/models"
)

type OrderService interface {
	GetOutletOrders(ctx context.Context, req *models.GetOutletOrdersRequest, actor domain.Actor) (*models.OrderListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
