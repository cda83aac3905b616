package get_outlet_config

import (
	"context"

	"github.com/krtkm27/ZEats-OrderService/internal/domain"
	"github.com/krtkm27/ZEats-OrderService/internal/service/outletconfig/models"
)

type OutletConfigService interface {
	Get(ctx context.Context, outletID int64, actor domain.Actor) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
