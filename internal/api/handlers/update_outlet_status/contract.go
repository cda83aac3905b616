package update_outlet_status

import (
	"context"

	"github.com/krtkm27/ZEats-OrderService/internal/domain"
	"github.com/krtkm27/ZEats-OrderService/internal/service/outletconfig/models"
)

type OutletConfigService interface {
	SetLiveState(ctx context.Context, req *models.SetLiveStateRequest, actor domain.Actor) (*models.LiveStateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
