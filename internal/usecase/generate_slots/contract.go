package generate_slots

import (
	"context"
	"time"

	"github.com/krtkm27/ZEats-OrderService/internal/domain"
)

// OutletRepository интерфейс репозитория заведений
type OutletRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Outlet, error)
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	// GetActiveByOutletSince получает активные заказы заведения, созданные после указанного момента
	GetActiveByOutletSince(ctx context.Context, outletID int64, since time.Time) ([]*domain.Order, error)
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
