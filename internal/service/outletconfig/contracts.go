package outletconfig

import (
	"context"

	"github.com/krtkm27/ZEats-OrderService/internal/domain"
	outletRepo "github.com/krtkm27/ZEats-OrderService/internal/infra/storage/outlet"
)

// OutletRepository интерфейс репозитория заведений
type OutletRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Outlet, error)
	UpdateSettings(ctx context.Context, id int64, params outletRepo.UpdateSettingsParams) error
	UpdateLiveState(ctx context.Context, id int64, isOpen bool) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
