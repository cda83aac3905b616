package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krtkm27/ZEats-OrderService/internal/domain"
	orderRepo "github.com/krtkm27/ZEats-OrderService/internal/infra/storage/order"
	"github.com/krtkm27/ZEats-OrderService/internal/service/orders/models"
	"github.com/krtkm27/ZEats-OrderService/pkg/ptr"
	"github.com/krtkm27/ZEats-OrderService/pkg/types"
)

type mockOrderRepo struct {
	order       *domain.Order
	list        []*domain.Order
	cancelled   []string
	lastFilter  *domain.OutletOrdersFilter
	lastStatus  *domain.OrderStatus
	returnError error
}

func (m *mockOrderRepo) GetByOrderNumber(_ context.Context, _ string) (*domain.Order, error) {
	if m.returnError != nil {
		return nil, m.returnError
	}
	if m.order == nil {
		return nil, orderRepo.ErrOrderNotFound
	}
	cp := *m.order
	return &cp, nil
}

func (m *mockOrderRepo) GetByUserID(_ context.Context, _ int64, status *domain.OrderStatus, _, _ int) ([]*domain.Order, error) {
	m.lastStatus = status
	return m.list, nil
}

func (m *mockOrderRepo) GetByOutletWithFilter(_ context.Context, filter domain.OutletOrdersFilter) ([]*domain.Order, error) {
	m.lastFilter = &filter
	return m.list, nil
}

func (m *mockOrderRepo) Cancel(_ context.Context, orderNumber string, _ time.Time) error {
	m.cancelled = append(m.cancelled, orderNumber)
	return nil
}

type mockOutletRepo struct {
	outlet *domain.Outlet
}

func (m *mockOutletRepo) GetByID(_ context.Context, _ int64) (*domain.Outlet, error) {
	return m.outlet, nil
}

type mockSlotCounter struct {
	released int
}

func (m *mockSlotCounter) Release(_ context.Context, _ int64, _ time.Time, _ types.TimeString) error {
	m.released++
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testOrder() *domain.Order {
	return &domain.Order{
		ID:          1,
		OrderNumber: "ZOR-1-001",
		UserID:      7,
		OutletID:    5,
		Status:      domain.StatusPending,
		Total:       86.4,
		CreatedAt:   time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func newTestService(order *domain.Order) (*Service, *mockOrderRepo, *mockSlotCounter) {
	repo := &mockOrderRepo{order: order}
	counter := &mockSlotCounter{}
	svc := NewService(repo, &mockOutletRepo{outlet: &domain.Outlet{ID: 5}}, counter, nopLogger{})
	return svc, repo, counter
}

func TestGetByOrderNumber_Owner(t *testing.T) {
	svc, _, _ := newTestService(testOrder())

	resp, err := svc.GetByOrderNumber(context.Background(), "ZOR-1-001", domain.Actor{UserID: 7, Role: domain.RoleCustomer})
	require.NoError(t, err)
	assert.Equal(t, "ZOR-1-001", resp.OrderNumber)
}

func TestGetByOrderNumber_StrangerDenied(t *testing.T) {
	svc, _, _ := newTestService(testOrder())

	_, err := svc.GetByOrderNumber(context.Background(), "ZOR-1-001", domain.Actor{UserID: 8, Role: domain.RoleCustomer})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByOrderNumber_OutletStaff(t *testing.T) {
	svc, _, _ := newTestService(testOrder())

	actor := domain.Actor{UserID: 50, Role: domain.RolePartnerStaff, OutletID: ptr.Ptr(int64(5))}
	resp, err := svc.GetByOrderNumber(context.Background(), "ZOR-1-001", actor)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.OutletID)
}

func TestGetByOrderNumber_NotFound(t *testing.T) {
	svc, _, _ := newTestService(nil)

	_, err := svc.GetByOrderNumber(context.Background(), "ZOR-404", domain.Actor{UserID: 7})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetUserOrders_StatusFilter(t *testing.T) {
	svc, repo, _ := newTestService(nil)
	repo.list = []*domain.Order{testOrder()}

	resp, err := svc.GetUserOrders(context.Background(), &models.GetUserOrdersRequest{
		UserID: 7,
		Status: ptr.Ptr("pending"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	require.NotNil(t, repo.lastStatus)
	assert.Equal(t, domain.StatusPending, *repo.lastStatus)
}

func TestGetUserOrders_InvalidStatus(t *testing.T) {
	svc, _, _ := newTestService(nil)

	_, err := svc.GetUserOrders(context.Background(), &models.GetUserOrdersRequest{
		UserID: 7,
		Status: ptr.Ptr("teleported"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetOutletOrders_AccessControl(t *testing.T) {
	svc, _, _ := newTestService(nil)

	_, err := svc.GetOutletOrders(context.Background(), &models.GetOutletOrdersRequest{OutletID: 5},
		domain.Actor{UserID: 7, Role: domain.RoleCustomer})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetOutletOrders_FilterPassed(t *testing.T) {
	svc, repo, _ := newTestService(nil)

	since := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	_, err := svc.GetOutletOrders(context.Background(), &models.GetOutletOrdersRequest{
		OutletID:     5,
		CreatedSince: &since,
		OnlyActive:   true,
	}, domain.Actor{UserID: 99, Role: domain.RoleAdmin})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter)
	assert.Equal(t, int64(5), repo.lastFilter.OutletID)
	assert.True(t, repo.lastFilter.OnlyActive)
	assert.Equal(t, &since, repo.lastFilter.CreatedSince)
}

func TestCancel_Owner(t *testing.T) {
	order := testOrder()
	slot := types.TimeString("12:30")
	order.PickupSlot = &slot

	svc, repo, counter := newTestService(order)

	resp, err := svc.Cancel(context.Background(), &models.CancelOrderRequest{
		UserID:      7,
		OrderNumber: "ZOR-1-001",
	})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.NotNil(t, resp.CompletedAt)
	assert.Equal(t, []string{"ZOR-1-001"}, repo.cancelled)
	// Бронь слота возвращена
	assert.Equal(t, 1, counter.released)
}

func TestCancel_NoSlotNoRelease(t *testing.T) {
	svc, _, counter := newTestService(testOrder())

	_, err := svc.Cancel(context.Background(), &models.CancelOrderRequest{
		UserID:      7,
		OrderNumber: "ZOR-1-001",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, counter.released)
}

func TestCancel_Stranger(t *testing.T) {
	svc, _, _ := newTestService(testOrder())

	_, err := svc.Cancel(context.Background(), &models.CancelOrderRequest{
		UserID:      8,
		OrderNumber: "ZOR-1-001",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_TooLate(t *testing.T) {
	order := testOrder()
	order.Status = domain.StatusReady

	svc, _, _ := newTestService(order)

	_, err := svc.Cancel(context.Background(), &models.CancelOrderRequest{
		UserID:      7,
		OrderNumber: "ZOR-1-001",
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}
