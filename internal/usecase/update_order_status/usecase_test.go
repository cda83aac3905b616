package update_order_status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krtkm27/ZEats-OrderService/internal/domain"
	"github.com/krtkm27/ZEats-OrderService/internal/infra/storage/notification"
	orderRepo "github.com/krtkm27/ZEats-OrderService/internal/infra/storage/order"
	"github.com/krtkm27/ZEats-OrderService/internal/infra/storage/user"
	"github.com/krtkm27/ZEats-OrderService/pkg/ptr"
)

type mockOrderRepo struct {
	order  *domain.Order
	params *orderRepo.UpdateStatusParams
}

func (m *mockOrderRepo) GetByOrderNumber(_ context.Context, _ string) (*domain.Order, error) {
	if m.order == nil {
		return nil, orderRepo.ErrOrderNotFound
	}
	cp := *m.order
	return &cp, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, _ string, params orderRepo.UpdateStatusParams) error {
	m.params = &params
	return nil
}

type mockUserRepo struct {
	user *user.User
}

func (m *mockUserRepo) GetByID(_ context.Context, _ int64) (*user.User, error) {
	if m.user == nil {
		return nil, user.ErrUserNotFound
	}
	return m.user, nil
}

type mockNotificationRepo struct {
	created []*notification.Notification
}

func (m *mockNotificationRepo) Create(_ context.Context, n *notification.Notification) error {
	m.created = append(m.created, n)
	return nil
}

type mockPushSender struct {
	titles []string
}

func (m *mockPushSender) SendPush(_ context.Context, _, title, _ string, _ map[string]any) error {
	m.titles = append(m.titles, title)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

var testNow = time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

func adminActor() domain.Actor {
	return domain.Actor{UserID: 99, Role: domain.RoleAdmin}
}

func pendingOrder() *domain.Order {
	return &domain.Order{
		ID:          1,
		OrderNumber: "ZOR-1-001",
		UserID:      7,
		OutletID:    5,
		Status:      domain.StatusPending,
		Items: []domain.OrderItem{
			{MenuItemID: 1, Quantity: 1, PrepTimeMinutes: ptr.Ptr(20)},
		},
	}
}

func newTestUseCase(order *domain.Order, usr *user.User) (*UseCase, *mockOrderRepo, *mockNotificationRepo, *mockPushSender) {
	orders := &mockOrderRepo{order: order}
	notifications := &mockNotificationRepo{}
	push := &mockPushSender{}

	uc := NewUseCase(orders, &mockUserRepo{user: usr}, notifications, push, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}

	return uc, orders, notifications, push
}

func TestExecute_ConfirmStampsPickupTime(t *testing.T) {
	uc, orders, notifications, _ := newTestUseCase(pendingOrder(), &user.User{ID: 7})

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:       adminActor(),
		OrderNumber: "ZOR-1-001",
		Status:      "confirmed",
	})
	require.NoError(t, err)

	// Одна позиция prep=20: bottleneck 20, объема сверх нет, без буфера
	require.NotNil(t, resp.PickupTime)
	assert.Equal(t, testNow.Add(20*time.Minute), *resp.PickupTime)
	require.NotNil(t, resp.EstimatedTime)
	assert.Equal(t, "~20 mins", *resp.EstimatedTime)

	require.NotNil(t, orders.params)
	assert.Equal(t, domain.StatusConfirmed, orders.params.Status)

	require.Len(t, notifications.created, 1)
	assert.Equal(t, "Order Confirmed", notifications.created[0].Title)
}

func TestExecute_BottleneckFloorOnUpdate(t *testing.T) {
	// Позиция быстрее пола в 15 минут: оценка не опускается ниже пола
	order := pendingOrder()
	order.Items = []domain.OrderItem{{MenuItemID: 1, Quantity: 1, PrepTimeMinutes: ptr.Ptr(5)}}

	uc, _, _, _ := newTestUseCase(order, &user.User{ID: 7})

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:       adminActor(),
		OrderNumber: "ZOR-1-001",
		Status:      "preparing",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.PickupTime)
	assert.Equal(t, testNow.Add(15*time.Minute), *resp.PickupTime)
}

func TestExecute_AlreadyStampedKeepsPickupTime(t *testing.T) {
	earlier := testNow.Add(-5 * time.Minute)

	order := pendingOrder()
	order.Status = domain.StatusConfirmed
	order.PickupTime = &earlier

	uc, orders, _, _ := newTestUseCase(order, &user.User{ID: 7})

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:       adminActor(),
		OrderNumber: "ZOR-1-001",
		Status:      "preparing",
	})
	require.NoError(t, err)

	// Таймер уже идет - повторный вход в preparing его не трогает
	assert.Nil(t, orders.params.PickupTime)
	assert.Equal(t, earlier, *resp.PickupTime)
}

func TestExecute_ManualEstimateOverride(t *testing.T) {
	order := pendingOrder()
	order.Status = domain.StatusConfirmed
	order.PickupTime = ptr.Ptr(testNow.Add(10 * time.Minute))

	uc, orders, _, _ := newTestUseCase(order, &user.User{ID: 7})

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:         adminActor(),
		OrderNumber:   "ZOR-1-001",
		Status:        "preparing",
		EstimatedTime: ptr.Ptr("25 mins"),
	})
	require.NoError(t, err)

	// Ручная оценка: pickupTime = now + 25 минут, строка сохраняется как есть
	require.NotNil(t, orders.params.PickupTime)
	assert.Equal(t, testNow.Add(25*time.Minute), *orders.params.PickupTime)
	assert.Equal(t, "25 mins", *resp.EstimatedTime)
}

func TestExecute_DeliveredSetsCompletedAt(t *testing.T) {
	order := pendingOrder()
	order.Status = domain.StatusReady

	uc, _, _, _ := newTestUseCase(order, &user.User{ID: 7})

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:       adminActor(),
		OrderNumber: "ZOR-1-001",
		Status:      "delivered",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.CompletedAt)
	assert.Equal(t, testNow, *resp.CompletedAt)
}

func TestExecute_InvalidTransition(t *testing.T) {
	order := pendingOrder()
	order.Status = domain.StatusDelivered

	uc, _, _, _ := newTestUseCase(order, &user.User{ID: 7})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:       adminActor(),
		OrderNumber: "ZOR-1-001",
		Status:      "preparing",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_PartnerWrongOutlet(t *testing.T) {
	uc, _, _, _ := newTestUseCase(pendingOrder(), &user.User{ID: 7})

	actor := domain.Actor{UserID: 50, Role: domain.RolePartnerManager, OutletID: ptr.Ptr(int64(9))}

	_, err := uc.Execute(context.Background(), &Request{
		Actor:       actor,
		OrderNumber: "ZOR-1-001",
		Status:      "confirmed",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_PartnerOwnOutlet(t *testing.T) {
	uc, _, _, _ := newTestUseCase(pendingOrder(), &user.User{ID: 7})

	actor := domain.Actor{UserID: 50, Role: domain.RolePartnerStaff, OutletID: ptr.Ptr(int64(5))}

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:       actor,
		OrderNumber: "ZOR-1-001",
		Status:      "confirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestExecute_PushSent(t *testing.T) {
	uc, _, _, push := newTestUseCase(pendingOrder(), &user.User{ID: 7, PushToken: ptr.Ptr("ExponentPushToken[x]")})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:       adminActor(),
		OrderNumber: "ZOR-1-001",
		Status:      "ready",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ready for Pickup!"}, push.titles)
}

func TestExecute_UnknownStatus(t *testing.T) {
	uc, _, _, _ := newTestUseCase(pendingOrder(), &user.User{ID: 7})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:       adminActor(),
		OrderNumber: "ZOR-1-001",
		Status:      "exploded",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestExecute_OrderNotFound(t *testing.T) {
	uc, _, _, _ := newTestUseCase(nil, &user.User{ID: 7})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:       adminActor(),
		OrderNumber: "ZOR-404",
		Status:      "confirmed",
	})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
