package orders

import (
	"context"
	"time"

	"github.com/krtkm27/ZEats-OrderService/internal/domain"
	"github.com/krtkm27/ZEats-OrderService/pkg/types"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error)
	GetByOutletWithFilter(ctx context.Context, filter domain.OutletOrdersFilter) ([]*domain.Order, error)
	Cancel(ctx context.Context, orderNumber string, completedAt time.Time) error
}

// OutletRepository интерфейс репозитория заведений
type OutletRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Outlet, error)
}

// SlotCounter атомарный счетчик занятости слотов
type SlotCounter interface {
	Release(ctx context.Context, outletID int64, serviceDate time.Time, slot types.TimeString) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
