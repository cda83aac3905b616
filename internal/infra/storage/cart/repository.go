package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/krtkm27/ZEats-OrderService/pkg/dbmetrics"
	"github.com/krtkm27/ZEats-OrderService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов к БД
type DBExecutor = dbmetrics.DBExecutor

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("cart.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("cart.repository: failed to execute query")
)

// Repository репозиторий корзин
// Потоку заказов от корзины нужно только одно: очистить ее после оформления
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория корзин
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ClearByUserID удаляет все позиции корзины пользователя
// Отсутствие корзины ошибкой не считается
func (r *Repository) ClearByUserID(ctx context.Context, userID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("cart_items").
		Where(squirrel.Expr("cart_id IN (SELECT id FROM carts WHERE user_id = ?)", userID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ClearByUserID - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ClearByUserID - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
