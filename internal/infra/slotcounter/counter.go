package slotcounter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/krtkm27/ZEats-OrderService/pkg/types"
)

// keyTTLGrace сколько счетчик живет после конца операционного дня
// Запас покрывает ночные заведения, у которых день закрытия переходит за полночь
const keyTTLGrace = 26 * time.Hour

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Counter атомарный счетчик занятости слотов поверх Redis
// Ключ - (заведение, операционная дата, слот); бронирование места в слоте
// выполняется одним INCR с компенсирующим DECR при переполнении, что
// закрывает гонку "посчитали-решили-вставили" между конкурентными заказами
type Counter struct {
	client *redis.Client
	log    Logger
}

// New создает счетчик занятости слотов
func New(client *redis.Client, log Logger) *Counter {
	return &Counter{client: client, log: log}
}

func slotKey(outletID int64, serviceDate time.Time, slot types.TimeString) string {
	return fmt.Sprintf("slots:%d:%s:%s",
		outletID,
		serviceDate.Format("2006-01-02"),
		strings.ToLower(slot.String()),
	)
}

// Reserve занимает одно место в слоте
// Возвращает ErrSlotFull, если все max мест уже заняты, и ErrUnavailable
// при проблемах с Redis
func (c *Counter) Reserve(ctx context.Context, outletID int64, serviceDate time.Time, slot types.TimeString, max int) error {
	key := slotKey(outletID, serviceDate, slot)

	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("%w: incr %s: %v", ErrUnavailable, key, err)
	}

	// Первый резерв заводит ключ - ограничиваем его время жизни
	if count == 1 {
		endOfDay := time.Date(
			serviceDate.Year(), serviceDate.Month(), serviceDate.Day(),
			0, 0, 0, 0, serviceDate.Location(),
		).Add(keyTTLGrace)

		if err := c.client.ExpireAt(ctx, key, endOfDay).Err(); err != nil {
			c.log.Warn("slotcounter: failed to set TTL for %s: %v", key, err)
		}
	}

	if count > int64(max) {
		// Откатываем свой инкремент, место не досталось
		if err := c.client.Decr(ctx, key).Err(); err != nil {
			c.log.Warn("slotcounter: failed to roll back reservation for %s: %v", key, err)
		}
		return ErrSlotFull
	}

	return nil
}

// Release освобождает место в слоте (отмена заказа или откат создания)
// Счетчик не опускается ниже нуля
func (c *Counter) Release(ctx context.Context, outletID int64, serviceDate time.Time, slot types.TimeString) error {
	key := slotKey(outletID, serviceDate, slot)

	count, err := c.client.Decr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("%w: decr %s: %v", ErrUnavailable, key, err)
	}

	if count < 0 {
		if err := c.client.Incr(ctx, key).Err(); err != nil {
			c.log.Warn("slotcounter: failed to clamp counter for %s: %v", key, err)
		}
	}

	return nil
}
