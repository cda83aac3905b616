package slotcounter

import (
	"context"
	"time"

	"github.com/krtkm27/ZEats-OrderService/pkg/types"
)

// Noop счетчик-заглушка для работы без Redis
// Слоты не лимитируются, любая бронь проходит
type Noop struct{}

func (Noop) Reserve(ctx context.Context, outletID int64, serviceDate time.Time, slot types.TimeString, max int) error {
	return nil
}

func (Noop) Release(ctx context.Context, outletID int64, serviceDate time.Time, slot types.TimeString) error {
	return nil
}
