package generate_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krtkm27/ZEats-OrderService/internal/domain"
	outletRepo "github.com/krtkm27/ZEats-OrderService/internal/infra/storage/outlet"
	"github.com/krtkm27/ZEats-OrderService/pkg/ptr"
	"github.com/krtkm27/ZEats-OrderService/pkg/types"
)

type mockOutletRepo struct {
	outlet *domain.Outlet
	err    error
}

func (m *mockOutletRepo) GetByID(_ context.Context, _ int64) (*domain.Outlet, error) {
	return m.outlet, m.err
}

type mockOrderRepo struct {
	orders []*domain.Order
	err    error
	since  time.Time
}

func (m *mockOrderRepo) GetActiveByOutletSince(_ context.Context, _ int64, since time.Time) ([]*domain.Order, error) {
	m.since = since
	return m.orders, m.err
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(outlet *domain.Outlet, orders []*domain.Order, now time.Time) (*UseCase, *mockOrderRepo) {
	orderMock := &mockOrderRepo{orders: orders}
	uc := NewUseCase(&mockOutletRepo{outlet: outlet}, orderMock, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc, orderMock
}

func istMonday(hour, minute int) time.Time {
	loc, _ := time.LoadLocation("Asia/Kolkata")
	return time.Date(2025, 3, 10, hour, minute, 0, 0, loc)
}

func TestExecute_HappyPath(t *testing.T) {
	outlet := &domain.Outlet{
		ID:                  1,
		IsManuallyOpen:      true,
		Schedule:            allWeek(openDay("09:00", "22:00")),
		SlotIntervalMinutes: ptr.Ptr(30),
		MaxOrdersPerSlot:    ptr.Ptr(20),
	}

	slot := types.TimeString("14:30")
	orders := []*domain.Order{
		{Status: domain.StatusConfirmed, PickupSlot: &slot},
		{Status: domain.StatusPreparing, PickupSlot: &slot},
	}

	uc, orderMock := newTestUseCase(outlet, orders, istMonday(14, 7))

	resp, err := uc.Execute(context.Background(), &Request{OutletID: 1})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)

	first := resp.Slots[0]
	assert.Equal(t, types.TimeString("14:30"), first.Time)
	assert.True(t, first.Available)
	assert.Equal(t, 18, first.Remaining)
	assert.False(t, first.IsHighTraffic)

	// Занятость считается от начала сегодняшнего дня в зоне заведения
	assert.Equal(t, 0, orderMock.since.Hour())
	assert.Equal(t, 0, orderMock.since.Minute())
	assert.Equal(t, 10, orderMock.since.Day())
}

func TestExecute_FullSlot(t *testing.T) {
	outlet := &domain.Outlet{
		ID:               1,
		IsManuallyOpen:   true,
		Schedule:         allWeek(openDay("09:00", "22:00")),
		MaxOrdersPerSlot: ptr.Ptr(20),
	}

	slot := types.TimeString("15:00")
	orders := make([]*domain.Order, 0, 20)
	for i := 0; i < 20; i++ {
		orders = append(orders, &domain.Order{Status: domain.StatusNew, PickupSlot: &slot})
	}

	uc, _ := newTestUseCase(outlet, orders, istMonday(14, 0))

	resp, err := uc.Execute(context.Background(), &Request{OutletID: 1})
	require.NoError(t, err)

	var target *Slot
	for i := range resp.Slots {
		if resp.Slots[i].Time == "15:00" {
			target = &resp.Slots[i]
			break
		}
	}

	require.NotNil(t, target)
	assert.False(t, target.Available)
	assert.Equal(t, 0, target.Remaining)
	assert.True(t, target.IsHighTraffic)
}

func TestExecute_ManuallyClosedCustomerView(t *testing.T) {
	outlet := &domain.Outlet{
		ID:             1,
		IsManuallyOpen: false,
		Schedule:       allWeek(openDay("09:00", "22:00")),
	}

	uc, _ := newTestUseCase(outlet, nil, istMonday(12, 0))

	resp, err := uc.Execute(context.Background(), &Request{OutletID: 1, IncludePast: false})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ManuallyClosedOperatorView(t *testing.T) {
	// Оператор видит сетку по расписанию даже у выключенного заведения
	outlet := &domain.Outlet{
		ID:             1,
		IsManuallyOpen: false,
		Schedule:       allWeek(openDay("09:00", "22:00")),
	}

	uc, _ := newTestUseCase(outlet, nil, istMonday(12, 0))

	resp, err := uc.Execute(context.Background(), &Request{OutletID: 1, IncludePast: true})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].Time)
}

func TestExecute_OutletNotFound(t *testing.T) {
	orderMock := &mockOrderRepo{}
	uc := NewUseCase(&mockOutletRepo{err: outletRepo.ErrOutletNotFound}, orderMock, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{OutletID: 42})
	assert.ErrorIs(t, err, ErrOutletNotFound)
}

func TestExecute_InvalidOutletID(t *testing.T) {
	uc, _ := newTestUseCase(nil, nil, istMonday(12, 0))

	_, err := uc.Execute(context.Background(), &Request{OutletID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_OrderFetchFails(t *testing.T) {
	outlet := &domain.Outlet{
		ID:             1,
		IsManuallyOpen: true,
		Schedule:       allWeek(openDay("09:00", "22:00")),
	}

	orderMock := &mockOrderRepo{err: errors.New("db down")}
	uc := NewUseCase(&mockOutletRepo{outlet: outlet}, orderMock, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: istMonday(12, 0)}

	_, err := uc.Execute(context.Background(), &Request{OutletID: 1})
	assert.ErrorIs(t, err, ErrInternal)
}
