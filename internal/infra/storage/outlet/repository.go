package outlet

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/krtkm27/ZEats-OrderService/internal/domain"
	"github.com/krtkm27/ZEats-OrderService/pkg/dbmetrics"
	"github.com/krtkm27/ZEats-OrderService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов к БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с настройками заведений
// Недельное расписание хранится одной JSONB-колонкой, как его присылает
// и читает партнерский кабинет
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заведений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает конфигурацию заведения
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Outlet, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"is_manually_open",
		"auto_confirm",
		"time_zone",
		"schedule",
		"slot_interval_minutes",
		"max_orders_per_slot",
		"scheduled_orders_enabled",
		"created_at",
		"updated_at",
	).
		From("outlets").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var outlet domain.Outlet
	var schedule []byte
	var slotInterval, maxPerSlot sql.NullInt64
	var timeZone sql.NullString
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&outlet.ID,
		&outlet.Name,
		&outlet.IsManuallyOpen,
		&outlet.AutoConfirm,
		&timeZone,
		&schedule,
		&slotInterval,
		&maxPerSlot,
		&outlet.ScheduledOrdersEnabled,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOutletNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan outlet: %v", ErrScanRow, err)
	}

	if timeZone.Valid {
		outlet.TimeZone = timeZone.String
	}
	if slotInterval.Valid {
		v := int(slotInterval.Int64)
		outlet.SlotIntervalMinutes = &v
	}
	if maxPerSlot.Valid {
		v := int(maxPerSlot.Int64)
		outlet.MaxOrdersPerSlot = &v
	}

	if len(schedule) > 0 {
		if err := json.Unmarshal(schedule, &outlet.Schedule); err != nil {
			return nil, fmt.Errorf("%w: GetByID - decode schedule: %v", ErrInvalidSchedule, err)
		}
	}

	outlet.CreatedAt = createdAt.Time
	outlet.UpdatedAt = updatedAt.Time

	return &outlet, nil
}

// UpdateSettingsParams параметры обновления настроек заведения
// nil-поля не изменяются
type UpdateSettingsParams struct {
	Schedule               *domain.WeeklySchedule
	SlotIntervalMinutes    *int
	MaxOrdersPerSlot       *int
	ScheduledOrdersEnabled *bool
	AutoConfirm            *bool
	TimeZone               *string
}

// UpdateSettings обновляет настройки слотов и расписание заведения
func (r *Repository) UpdateSettings(ctx context.Context, id int64, params UpdateSettingsParams) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("outlets").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if params.Schedule != nil {
		payload, err := json.Marshal(params.Schedule)
		if err != nil {
			return fmt.Errorf("%w: UpdateSettings - encode schedule: %v", ErrInvalidSchedule, err)
		}
		updateBuilder = updateBuilder.Set("schedule", payload)
	}
	if params.SlotIntervalMinutes != nil {
		updateBuilder = updateBuilder.Set("slot_interval_minutes", *params.SlotIntervalMinutes)
	}
	if params.MaxOrdersPerSlot != nil {
		updateBuilder = updateBuilder.Set("max_orders_per_slot", *params.MaxOrdersPerSlot)
	}
	if params.ScheduledOrdersEnabled != nil {
		updateBuilder = updateBuilder.Set("scheduled_orders_enabled", *params.ScheduledOrdersEnabled)
	}
	if params.AutoConfirm != nil {
		updateBuilder = updateBuilder.Set("auto_confirm", *params.AutoConfirm)
	}
	if params.TimeZone != nil {
		updateBuilder = updateBuilder.Set("time_zone", *params.TimeZone)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSettings - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSettings - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSettings - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrOutletNotFound
	}

	return nil
}

// UpdateLiveState переключает мастер-переключатель открыто/закрыто
func (r *Repository) UpdateLiveState(ctx context.Context, id int64, isOpen bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("outlets").
		Set("is_manually_open", isOpen).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateLiveState - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateLiveState - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateLiveState - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrOutletNotFound
	}

	return nil
}
