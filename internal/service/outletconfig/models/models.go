package models

import (
	"github.com/krtkm27/ZEats-OrderService/internal/domain"
	outletRepo "github.com/krtkm27/ZEats-OrderService/internal/infra/storage/outlet"
)

// Request модели

// UpdateConfigRequest запрос на обновление настроек заведения
// nil-поля остаются без изменений
type UpdateConfigRequest struct {
	OutletID int64 `json:"-"`

	Schedule               *domain.WeeklySchedule `json:"schedule,omitempty"`
	SlotIntervalMinutes    *int                   `json:"slotInterval,omitempty"`
	MaxOrdersPerSlot       *int                   `json:"maxOrdersPerSlot,omitempty"`
	ScheduledOrdersEnabled *bool                  `json:"scheduledOrdersEnabled,omitempty"`
	AutoConfirm            *bool                  `json:"autoConfirm,omitempty"`
	TimeZone               *string                `json:"timeZone,omitempty"`
}

// ToRepoParams конвертирует request в параметры репозитория
func (r *UpdateConfigRequest) ToRepoParams() outletRepo.UpdateSettingsParams {
	return outletRepo.UpdateSettingsParams{
		Schedule:               r.Schedule,
		SlotIntervalMinutes:    r.SlotIntervalMinutes,
		MaxOrdersPerSlot:       r.MaxOrdersPerSlot,
		ScheduledOrdersEnabled: r.ScheduledOrdersEnabled,
		AutoConfirm:            r.AutoConfirm,
		TimeZone:               r.TimeZone,
	}
}

// SetLiveStateRequest запрос на переключение мастер-выключателя
type SetLiveStateRequest struct {
	OutletID int64 `json:"-"`
	IsOpen   bool  `json:"isOpen"`
}

// Response модели

// ConfigResponse ответ с настройками заведения
type ConfigResponse struct {
	OutletID int64  `json:"outletId"`
	Name     string `json:"name"`

	IsManuallyOpen         bool                  `json:"isOpen"`
	AutoConfirm            bool                  `json:"autoConfirm"`
	ScheduledOrdersEnabled bool                  `json:"scheduledOrdersEnabled"`
	TimeZone               string                `json:"timeZone"`
	Schedule               domain.WeeklySchedule `json:"schedule"`

	SlotIntervalMinutes int `json:"slotInterval"`
	MaxOrdersPerSlot    int `json:"maxOrdersPerSlot"`
}

// LiveStateResponse ответ переключения мастер-выключателя
type LiveStateResponse struct {
	OutletID int64 `json:"outletId"`
	IsOpen   bool  `json:"isOpen"`
}

// FromDomainOutlet конвертирует domain модель в DTO
// Интервал и вместимость отдаются уже с подставленными дефолтами
func FromDomainOutlet(o *domain.Outlet) *ConfigResponse {
	if o == nil {
		return nil
	}

	timeZone := o.TimeZone
	if timeZone == "" {
		timeZone = domain.DefaultTimeZone
	}

	return &ConfigResponse{
		OutletID:               o.ID,
		Name:                   o.Name,
		IsManuallyOpen:         o.IsManuallyOpen,
		AutoConfirm:            o.AutoConfirm,
		ScheduledOrdersEnabled: o.ScheduledOrdersEnabled,
		TimeZone:               timeZone,
		Schedule:               o.Schedule,
		SlotIntervalMinutes:    o.SlotInterval(),
		MaxOrdersPerSlot:       o.MaxPerSlot(),
	}
}
