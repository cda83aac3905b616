package update_order_status

import (
	"context"

	updateOrderStatus "github.com/krtkm27/ZEats-OrderService/internal/usecase/update_order_status"
)

type UpdateOrderStatusUseCase interface {
	Execute(ctx context.Context, req *updateOrderStatus.Request) (*updateOrderStatus.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
