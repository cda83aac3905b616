package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/krtkm27/ZEats-OrderService/pkg/dbmetrics"
	"github.com/krtkm27/ZEats-OrderService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов к БД
type DBExecutor = dbmetrics.DBExecutor

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("notification.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("notification.repository: failed to execute query")
)

// Notification уведомление в ленте пользователя
type Notification struct {
	UserID   int64
	Type     string
	Title    string
	Message  string
	TargetID string
}

// Repository репозиторий ленты уведомлений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет уведомление в ленту пользователя
func (r *Repository) Create(ctx context.Context, n *Notification) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notifications").
		Columns("user_id", "type", "title", "message", "target_id").
		Values(n.UserID, n.Type, n.Title, n.Message, n.TargetID).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
