package slotcounter

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krtkm27/ZEats-OrderService/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Warn(format string, v ...interface{}) {}

func newTestCounter(t *testing.T) (*Counter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client, noopLogger{}), mr
}

func TestReserve_UpToCapacity(t *testing.T) {
	counter, _ := newTestCounter(t)
	ctx := context.Background()
	date := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	slot := types.TimeString("12:30")

	for i := 0; i < 3; i++ {
		require.NoError(t, counter.Reserve(ctx, 7, date, slot, 3))
	}

	err := counter.Reserve(ctx, 7, date, slot, 3)
	assert.ErrorIs(t, err, ErrSlotFull)
}

func TestReserve_RollsBackOnOverflow(t *testing.T) {
	counter, mr := newTestCounter(t)
	ctx := context.Background()
	date := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	slot := types.TimeString("12:30")

	require.NoError(t, counter.Reserve(ctx, 7, date, slot, 1))
	require.ErrorIs(t, counter.Reserve(ctx, 7, date, slot, 1), ErrSlotFull)

	// Переполнивший инкремент откатился, значение осталось на вместимости
	got, err := mr.Get("slots:7:2025-03-10:12:30")
	require.NoError(t, err)
	assert.Equal(t, "1", got)
}

func TestReserve_SlotsAreIndependent(t *testing.T) {
	counter, _ := newTestCounter(t)
	ctx := context.Background()
	date := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, counter.Reserve(ctx, 7, date, types.TimeString("12:30"), 1))
	require.NoError(t, counter.Reserve(ctx, 7, date, types.TimeString("13:00"), 1))
	require.NoError(t, counter.Reserve(ctx, 8, date, types.TimeString("12:30"), 1))
}

func TestReserve_SetsTTL(t *testing.T) {
	counter, mr := newTestCounter(t)
	ctx := context.Background()
	date := time.Date(2025, 3, 10, 18, 45, 0, 0, time.UTC)

	require.NoError(t, counter.Reserve(ctx, 7, date, types.TimeString("19:00"), 5))

	ttl := mr.TTL("slots:7:2025-03-10:19:00")
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, keyTTLGrace)
}

func TestRelease_FreesCapacity(t *testing.T) {
	counter, _ := newTestCounter(t)
	ctx := context.Background()
	date := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	slot := types.TimeString("12:30")

	require.NoError(t, counter.Reserve(ctx, 7, date, slot, 1))
	require.ErrorIs(t, counter.Reserve(ctx, 7, date, slot, 1), ErrSlotFull)

	require.NoError(t, counter.Release(ctx, 7, date, slot))
	assert.NoError(t, counter.Reserve(ctx, 7, date, slot, 1))
}

func TestRelease_DoesNotGoNegative(t *testing.T) {
	counter, mr := newTestCounter(t)
	ctx := context.Background()
	date := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	slot := types.TimeString("12:30")

	require.NoError(t, counter.Release(ctx, 7, date, slot))

	got, err := mr.Get("slots:7:2025-03-10:12:30")
	require.NoError(t, err)
	assert.Equal(t, "0", got)
}
