package create_order

import (
	"context"
	"time"

	"github.com/krtkm27/ZEats-OrderService/internal/domain"
	"github.com/krtkm27/ZEats-OrderService/internal/infra/storage/menuitem"
	"github.com/krtkm27/ZEats-OrderService/internal/infra/storage/notification"
	"github.com/krtkm27/ZEats-OrderService/internal/infra/storage/user"
	"github.com/krtkm27/ZEats-OrderService/pkg/types"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

// OutletRepository интерфейс репозитория заведений
type OutletRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Outlet, error)
}

// MenuItemRepository интерфейс репозитория карточек меню
type MenuItemRepository interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*menuitem.MenuItem, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
	AdjustCoins(ctx context.Context, id int64, delta int64) error
}

// CartRepository интерфейс репозитория корзины
type CartRepository interface {
	ClearByUserID(ctx context.Context, userID int64) error
}

// NotificationRepository интерфейс репозитория ленты уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, n *notification.Notification) error
}

// SlotCounter атомарный счетчик занятости слотов
type SlotCounter interface {
	Reserve(ctx context.Context, outletID int64, serviceDate time.Time, slot types.TimeString, max int) error
	Release(ctx context.Context, outletID int64, serviceDate time.Time, slot types.TimeString) error
}

// PushSender интерфейс отправки push-уведомлений
type PushSender interface {
	SendPush(ctx context.Context, token, title, body string, data map[string]any) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
