package menuitem

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/krtkm27/ZEats-OrderService/pkg/dbmetrics"
	"github.com/krtkm27/ZEats-OrderService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов к БД
type DBExecutor = dbmetrics.DBExecutor

// MenuItem срез карточки меню, нужный потоку оформления заказа:
// цена, доступность и prep-профиль
type MenuItem struct {
	ID              int64
	OutletID        int64
	Name            string
	Price           float64
	IsAvailable     bool
	IsReadyToPick   bool
	PrepTimeMinutes *int
}

// Repository read-only репозиторий карточек меню
// CRUD меню принадлежит другому сервису
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория меню
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByIDs получает карточки меню по списку ID
// Отсутствующие ID просто не попадают в результат - проверка полноты
// остается за вызывающим
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*MenuItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if len(ids) == 0 {
		return map[int64]*MenuItem{}, nil
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"outlet_id",
		"name",
		"price",
		"is_available",
		"is_ready_to_pick",
		"prep_time_minutes",
	).
		From("menu_items").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[int64]*MenuItem, len(ids))
	for rows.Next() {
		var item MenuItem
		var prepTime sql.NullInt64

		err := rows.Scan(
			&item.ID,
			&item.OutletID,
			&item.Name,
			&item.Price,
			&item.IsAvailable,
			&item.IsReadyToPick,
			&prepTime,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan item: %v", ErrScanRow, err)
		}

		if prepTime.Valid {
			v := int(prepTime.Int64)
			item.PrepTimeMinutes = &v
		}

		result[item.ID] = &item
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - iterate rows: %v", ErrScanRow, err)
	}

	return result, nil
}
