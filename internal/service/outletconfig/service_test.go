package outletconfig

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krtkm27/ZEats-OrderService/internal/domain"
	outletRepo "github.com/krtkm27/ZEats-OrderService/internal/infra/storage/outlet"
	"github.com/krtkm27/ZEats-OrderService/internal/service/outletconfig/models"
	"github.com/krtkm27/ZEats-OrderService/pkg/ptr"
)

type mockOutletRepo struct {
	outlet     *domain.Outlet
	updated    *outletRepo.UpdateSettingsParams
	liveStates []bool
}

func (m *mockOutletRepo) GetByID(_ context.Context, _ int64) (*domain.Outlet, error) {
	if m.outlet == nil {
		return nil, outletRepo.ErrOutletNotFound
	}
	return m.outlet, nil
}

func (m *mockOutletRepo) UpdateSettings(_ context.Context, _ int64, params outletRepo.UpdateSettingsParams) error {
	if m.outlet == nil {
		return outletRepo.ErrOutletNotFound
	}
	m.updated = &params
	return nil
}

func (m *mockOutletRepo) UpdateLiveState(_ context.Context, _ int64, isOpen bool) error {
	if m.outlet == nil {
		return outletRepo.ErrOutletNotFound
	}
	m.liveStates = append(m.liveStates, isOpen)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func managerOf(outletID int64) domain.Actor {
	return domain.Actor{UserID: 50, Role: domain.RolePartnerManager, OutletID: ptr.Ptr(outletID)}
}

func newTestService(outlet *domain.Outlet) (*Service, *mockOutletRepo) {
	repo := &mockOutletRepo{outlet: outlet}
	return NewService(repo, nopLogger{}), repo
}

func TestGet_Defaults(t *testing.T) {
	svc, _ := newTestService(&domain.Outlet{ID: 5, Name: "South Canteen"})

	resp, err := svc.Get(context.Background(), 5, managerOf(5))
	require.NoError(t, err)

	// Незаданные параметры отдаются с дефолтами
	assert.Equal(t, 15, resp.SlotIntervalMinutes)
	assert.Equal(t, 20, resp.MaxOrdersPerSlot)
	assert.Equal(t, "Asia/Kolkata", resp.TimeZone)
}

func TestGet_AccessDenied(t *testing.T) {
	svc, _ := newTestService(&domain.Outlet{ID: 5})

	_, err := svc.Get(context.Background(), 5, domain.Actor{UserID: 7, Role: domain.RoleCustomer})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdate_Valid(t *testing.T) {
	svc, repo := newTestService(&domain.Outlet{ID: 5})

	resp, err := svc.Update(context.Background(), &models.UpdateConfigRequest{
		OutletID:            5,
		SlotIntervalMinutes: ptr.Ptr(30),
		MaxOrdersPerSlot:    ptr.Ptr(10),
		TimeZone:            ptr.Ptr("Asia/Kolkata"),
	}, managerOf(5))
	require.NoError(t, err)
	require.NotNil(t, resp)

	require.NotNil(t, repo.updated)
	assert.Equal(t, 30, *repo.updated.SlotIntervalMinutes)
	assert.Equal(t, 10, *repo.updated.MaxOrdersPerSlot)
}

func TestUpdate_Bounds(t *testing.T) {
	svc, _ := newTestService(&domain.Outlet{ID: 5})

	tests := []struct {
		name string
		req  *models.UpdateConfigRequest
	}{
		{"interval too small", &models.UpdateConfigRequest{OutletID: 5, SlotIntervalMinutes: ptr.Ptr(1)}},
		{"interval too large", &models.UpdateConfigRequest{OutletID: 5, SlotIntervalMinutes: ptr.Ptr(400)}},
		{"capacity zero", &models.UpdateConfigRequest{OutletID: 5, MaxOrdersPerSlot: ptr.Ptr(0)}},
		{"capacity too large", &models.UpdateConfigRequest{OutletID: 5, MaxOrdersPerSlot: ptr.Ptr(500)}},
		{"bad time zone", &models.UpdateConfigRequest{OutletID: 5, TimeZone: ptr.Ptr("Mars/Olympus")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), tt.req, managerOf(5))
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdate_BadScheduleTime(t *testing.T) {
	svc, _ := newTestService(&domain.Outlet{ID: 5})

	schedule := &domain.WeeklySchedule{
		Monday: domain.DaySchedule{IsOpen: true, OpenTime: ptr.Ptr("9am"), CloseTime: ptr.Ptr("22:00")},
	}

	_, err := svc.Update(context.Background(), &models.UpdateConfigRequest{
		OutletID: 5,
		Schedule: schedule,
	}, managerOf(5))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_StaffDenied(t *testing.T) {
	svc, _ := newTestService(&domain.Outlet{ID: 5})

	// Рядовой персонал не редактирует расписание
	staff := domain.Actor{UserID: 51, Role: domain.RolePartnerStaff, OutletID: ptr.Ptr(int64(5))}

	_, err := svc.Update(context.Background(), &models.UpdateConfigRequest{
		OutletID:            5,
		SlotIntervalMinutes: ptr.Ptr(30),
	}, staff)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSetLiveState_Staff(t *testing.T) {
	svc, repo := newTestService(&domain.Outlet{ID: 5})

	// Мастер-выключатель доступен и рядовому персоналу
	staff := domain.Actor{UserID: 51, Role: domain.RolePartnerStaff, OutletID: ptr.Ptr(int64(5))}

	resp, err := svc.SetLiveState(context.Background(), &models.SetLiveStateRequest{
		OutletID: 5,
		IsOpen:   false,
	}, staff)
	require.NoError(t, err)

	assert.False(t, resp.IsOpen)
	assert.Equal(t, []bool{false}, repo.liveStates)
}

func TestSetLiveState_WrongOutlet(t *testing.T) {
	svc, _ := newTestService(&domain.Outlet{ID: 5})

	staff := domain.Actor{UserID: 51, Role: domain.RolePartnerStaff, OutletID: ptr.Ptr(int64(9))}

	_, err := svc.SetLiveState(context.Background(), &models.SetLiveStateRequest{
		OutletID: 5,
		IsOpen:   true,
	}, staff)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSetLiveState_NotFound(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.SetLiveState(context.Background(), &models.SetLiveStateRequest{
		OutletID: 404,
		IsOpen:   true,
	}, domain.Actor{UserID: 99, Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, ErrOutletNotFound)
}
