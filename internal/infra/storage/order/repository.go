package order

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/krtkm27/ZEats-OrderService/internal/domain"
	"github.com/krtkm27/ZEats-OrderService/pkg/dbmetrics"
	"github.com/krtkm27/ZEats-OrderService/pkg/psqlbuilder"
)

// orderColumns колонки таблицы orders в порядке сканирования
var orderColumns = []string{
	"id",
	"order_number",
	"user_id",
	"outlet_id",
	"status",
	"subtotal",
	"discount",
	"tax",
	"total",
	"payment_method",
	"pickup_slot",
	"pickup_time",
	"estimated_time",
	"instructions",
	"qr_code",
	"completed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с заказами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает заказ вместе с позициями
// Если в контексте передана активная транзакция, использует её - при создании
// заказа это обязательно: вставка заказа, позиций, списание корзины и баллов
// должны фиксироваться атомарно
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("orders").
		Columns(
			"order_number",
			"user_id",
			"outlet_id",
			"status",
			"subtotal",
			"discount",
			"tax",
			"total",
			"payment_method",
			"pickup_slot",
			"pickup_time",
			"estimated_time",
			"instructions",
			"qr_code",
		).
		Values(
			order.OrderNumber,
			order.UserID,
			order.OutletID,
			order.Status,
			order.Subtotal,
			order.Discount,
			order.Tax,
			order.Total,
			order.PaymentMethod,
			order.PickupSlot,
			order.PickupTime,
			order.EstimatedTime,
			order.Instructions,
			order.QRCode,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&order.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	order.CreatedAt = createdAt.Time
	order.UpdatedAt = updatedAt.Time

	for i := range order.Items {
		item := &order.Items[i]

		itemQuery, itemArgs, err := psqlbuilder.Insert("order_items").
			Columns("order_id", "menu_item_id", "name", "price", "quantity").
			Values(order.ID, item.MenuItemID, item.Name, item.Price, item.Quantity).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build item insert: %v", ErrBuildQuery, err)
		}

		if err := executor.QueryRowContext(ctx, itemQuery, itemArgs...).Scan(&item.ID); err != nil {
			return nil, fmt.Errorf("%w: Create - insert item: %v", ErrExecQuery, err)
		}
	}

	return order, nil
}

// GetByOrderNumber получает заказ по номеру вместе с позициями
// Позиции обогащаются prep-полями из меню (для пересчета оценки готовности)
func (r *Repository) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"order_number": orderNumber}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrderNumber - build select query: %v", ErrBuildQuery, err)
	}

	order, err := scanOrder(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrderNumber - scan order: %v", ErrScanRow, err)
	}

	items, err := r.loadItems(ctx, executor, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

// GetByUserID получает список заказов пользователя, свежие первыми
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}
	if limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(limit))
	}
	if offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	orders, err := r.queryOrders(ctx, executor, query, args, "GetByUserID")
	if err != nil {
		return nil, err
	}

	return r.attachItems(ctx, executor, orders)
}

// GetActiveByOutletSince получает активные заказы заведения, созданные после
// since. Без позиций - используется подсчетом занятости слотов, которому
// нужны только pickup_slot и статус
func (r *Repository) GetActiveByOutletSince(ctx context.Context, outletID int64, since time.Time) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"outlet_id": outletID}).
		Where(squirrel.GtOrEq{"created_at": since}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByOutletSince - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryOrders(ctx, executor, query, args, "GetActiveByOutletSince")
}

// GetByOutletWithFilter получает заказы заведения с фильтрацией (partner view)
func (r *Repository) GetByOutletWithFilter(ctx context.Context, filter domain.OutletOrdersFilter) ([]*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"outlet_id": filter.OutletID}).
		OrderBy("created_at DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.OnlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)})
	}
	if filter.CreatedSince != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"created_at": *filter.CreatedSince})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOutletWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	orders, err := r.queryOrders(ctx, executor, query, args, "GetByOutletWithFilter")
	if err != nil {
		return nil, err
	}

	return r.attachItems(ctx, executor, orders)
}

// UpdateStatusParams параметры обновления статуса заказа
// nil-поля не изменяются
type UpdateStatusParams struct {
	Status        domain.OrderStatus
	PickupTime    *time.Time
	EstimatedTime *string
	CompletedAt   *time.Time
}

// UpdateStatus обновляет статус заказа и связанные с ним поля оценки
func (r *Repository) UpdateStatus(ctx context.Context, orderNumber string, params UpdateStatusParams) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("orders").
		Set("status", params.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"order_number": orderNumber})

	if params.PickupTime != nil {
		updateBuilder = updateBuilder.Set("pickup_time", *params.PickupTime)
	}
	if params.EstimatedTime != nil {
		updateBuilder = updateBuilder.Set("estimated_time", *params.EstimatedTime)
	}
	if params.CompletedAt != nil {
		updateBuilder = updateBuilder.Set("completed_at", *params.CompletedAt)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// Cancel переводит заказ в статус cancelled
func (r *Repository) Cancel(ctx context.Context, orderNumber string, completedAt time.Time) error {
	return r.UpdateStatus(ctx, orderNumber, UpdateStatusParams{
		Status:      domain.StatusCancelled,
		CompletedAt: &completedAt,
	})
}

func (r *Repository) queryOrders(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) ([]*domain.Order, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan order: %v", ErrScanRow, op, err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrScanRow, op, err)
	}

	return orders, nil
}

// loadItems загружает позиции заказа, обогащенные prep-полями меню
func (r *Repository) loadItems(ctx context.Context, executor DBExecutor, orderID int64) ([]domain.OrderItem, error) {
	query, args, err := psqlbuilder.Select(
		"oi.id",
		"oi.menu_item_id",
		"oi.name",
		"oi.price",
		"oi.quantity",
		"mi.prep_time_minutes",
		"mi.is_ready_to_pick",
	).
		From("order_items oi").
		LeftJoin("menu_items mi ON mi.id = oi.menu_item_id").
		Where(squirrel.Eq{"oi.order_id": orderID}).
		OrderBy("oi.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		var prepTime sql.NullInt64
		var readyToPick sql.NullBool

		err := rows.Scan(
			&item.ID,
			&item.MenuItemID,
			&item.Name,
			&item.Price,
			&item.Quantity,
			&prepTime,
			&readyToPick,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: loadItems - scan item: %v", ErrScanRow, err)
		}

		if prepTime.Valid {
			v := int(prepTime.Int64)
			item.PrepTimeMinutes = &v
		}
		item.IsReadyToPick = readyToPick.Valid && readyToPick.Bool

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadItems - iterate rows: %v", ErrScanRow, err)
	}

	return items, nil
}

func (r *Repository) attachItems(ctx context.Context, executor DBExecutor, orders []*domain.Order) ([]*domain.Order, error) {
	for _, o := range orders {
		items, err := r.loadItems(ctx, executor, o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return orders, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var pickupTime, completedAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&order.ID,
		&order.OrderNumber,
		&order.UserID,
		&order.OutletID,
		&order.Status,
		&order.Subtotal,
		&order.Discount,
		&order.Tax,
		&order.Total,
		&order.PaymentMethod,
		&order.PickupSlot,
		&pickupTime,
		&order.EstimatedTime,
		&order.Instructions,
		&order.QRCode,
		&completedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if pickupTime.Valid {
		order.PickupTime = &pickupTime.Time
	}
	if completedAt.Valid {
		order.CompletedAt = &completedAt.Time
	}
	order.CreatedAt = createdAt.Time
	order.UpdatedAt = updatedAt.Time

	return &order, nil
}

func statusStrings(statuses []domain.OrderStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
