package update_order_status

import (
	"context"
	"time"

	"github.com/krtkm27/ZEats-OrderService/internal/domain"
	"github.com/krtkm27/ZEats-OrderService/internal/infra/storage/notification"
	orderRepo "github.com/krtkm27/ZEats-OrderService/internal/infra/storage/order"
	"github.com/krtkm27/ZEats-OrderService/internal/infra/storage/user"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderNumber string, params orderRepo.UpdateStatusParams) error
}

// UserRepository интерфейс репозитория пользователей (push-токен получателя)
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

// NotificationRepository интерфейс репозитория ленты уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, n *notification.Notification) error
}

// PushSender интерфейс отправки push-уведомлений
type PushSender interface {
	SendPush(ctx context.Context, token, title, body string, data map[string]any) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
